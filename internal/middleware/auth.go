package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/clinicagenda/clinic-api/internal/handler"
	"github.com/clinicagenda/clinic-api/internal/model"
	authService "github.com/clinicagenda/clinic-api/internal/service/auth"
)

const (
	sessionCacheTTL     = time.Minute
	sessionCacheCleanup = 5 * time.Minute
)

type AuthMiddleware struct {
	authService authService.AuthServicer
	// sessions memoizes token validation so repeated requests within the TTL
	// skip signature verification.
	sessions *gocache.Cache
}

func NewAuthMiddleware(authService authService.AuthServicer) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		sessions:    gocache.New(sessionCacheTTL, sessionCacheCleanup),
	}
}

// Authenticate verifies the bearer token and stores the session in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}
		token := parts[1]

		if cached, found := m.sessions.Get(token); found {
			c.Set(handler.ContextSession, cached.(*model.Session))
			c.Next()
			return
		}

		session, err := m.authService.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		m.sessions.Set(token, session, gocache.DefaultExpiration)
		c.Set(handler.ContextSession, session)
		c.Next()
	}
}

// RequireClinic rejects sessions without a clinic association before the
// request reaches clinic-scoped handlers. Clients treat the response as a
// redirect to the clinic-creation flow.
func (m *AuthMiddleware) RequireClinic() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := handler.SessionFromContext(c)
		if session == nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
			c.Abort()
			return
		}
		if session.ClinicID == nil {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("no clinic associated with session"))
			c.Abort()
			return
		}
		c.Next()
	}
}
