package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicagenda/clinic-api/internal/model"
)

// ContextSession is the gin context key the auth middleware stores the
// validated session under.
const ContextSession = "session"

// SessionFromContext returns the authenticated session, or nil when the
// request did not pass the auth middleware.
func SessionFromContext(c *gin.Context) *model.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	session, ok := v.(*model.Session)
	if !ok {
		return nil
	}
	return session
}
