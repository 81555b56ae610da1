package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientFlow(t *testing.T) {
	requireServer(t)

	name := uniqueName("Patient Flow")
	email := fmt.Sprintf("patient+%d@clinic.test", time.Now().UnixNano())

	createResp := makeRequest("POST", "/patients", map[string]interface{}{
		"name":         name,
		"email":        email,
		"phone_number": "+5511999990000",
		"sex":          "female",
	}, authToken)
	require.True(t, createResp.IsSuccess(), "failed to create patient: %s", createResp.Message)

	patientID := createResp.GetString("id")
	require.NotEmpty(t, patientID)

	getResp := makeRequest("GET", fmt.Sprintf("/patients/%s", patientID), nil, authToken)
	require.True(t, getResp.IsSuccess())
	assert.Equal(t, name, getResp.Data["name"])
	assert.Equal(t, "female", getResp.Data["sex"])

	newPhone := "+5511999991111"
	updateResp := makeRequest("PUT", fmt.Sprintf("/patients/%s", patientID), map[string]interface{}{
		"phone_number": newPhone,
	}, authToken)
	require.True(t, updateResp.IsSuccess(), "failed to update patient: %s", updateResp.Message)

	verifyResp := makeRequest("GET", fmt.Sprintf("/patients/%s", patientID), nil, authToken)
	require.True(t, verifyResp.IsSuccess())
	assert.Equal(t, newPhone, verifyResp.Data["phone_number"])

	listResp := makeRequest("GET", "/patients", nil, authToken)
	assert.True(t, listResp.IsSuccess())
}

func TestPatientValidation(t *testing.T) {
	requireServer(t)

	resp := makeRequest("POST", "/patients", map[string]interface{}{
		"name":         uniqueName("Bad Sex Value"),
		"email":        fmt.Sprintf("badsex+%d@clinic.test", time.Now().UnixNano()),
		"phone_number": "+5511999990000",
		"sex":          "other",
	}, authToken)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
