package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	requireServer(t)

	email := fmt.Sprintf("authflow+%d@clinic.test", time.Now().UnixNano())

	registerResp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"name":     "Auth Flow User",
		"email":    email,
		"password": "test-password-1",
	}, "")
	require.True(t, registerResp.IsSuccess(), "failed to register: %s", registerResp.Message)
	assert.NotEmpty(t, registerResp.GetString("access_token"))
	// A fresh user has no clinic claim
	assert.Nil(t, registerResp.GetMap("clinic"))

	loginResp := makeRequest("POST", "/auth/login", map[string]interface{}{
		"email":    email,
		"password": "test-password-1",
	}, "")
	require.True(t, loginResp.IsSuccess(), "failed to login: %s", loginResp.Message)
	assert.NotEmpty(t, loginResp.GetString("access_token"))

	badResp := makeRequest("POST", "/auth/login", map[string]interface{}{
		"email":    email,
		"password": "wrong-password",
	}, "")
	assert.False(t, badResp.IsSuccess())
	assert.Equal(t, http.StatusUnauthorized, badResp.StatusCode)
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	requireServer(t)

	resp := makeRequest("GET", "/doctors", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestClinicScopedRoutesNeedClinic(t *testing.T) {
	requireServer(t)

	email := fmt.Sprintf("noclinic+%d@clinic.test", time.Now().UnixNano())
	registerResp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"name":     "No Clinic User",
		"email":    email,
		"password": "test-password-1",
	}, "")
	require.True(t, registerResp.IsSuccess())

	token := registerResp.GetString("access_token")
	resp := makeRequest("GET", "/doctors", nil, token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
