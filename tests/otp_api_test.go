package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/services"
)

func TestOTPLogin(t *testing.T) {
	srv := newTestServer(t)
	farmer, err := srv.fixtures.CreateTestSubscriber(context.Background(), "Ravi", "+919999999999", "Rice")
	require.NoError(t, err)
	srv.gateway.ApprovedCodes["+919999999999"] = "123456"

	t.Run("send", func(t *testing.T) {
		resp, body := srv.postJSON(t, "/auth/send-otp", dto.SendOTPRequest{Phone: "+919999999999"}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var sent dto.SendOTPResponse
		decodeData(t, body, &sent)
		assert.Equal(t, services.VerificationStatusPending, sent.Status)
	})

	t.Run("wrong code", func(t *testing.T) {
		resp, body := srv.postJSON(t, "/auth/verify-otp", dto.VerifyOTPRequest{Phone: "+919999999999", Code: "000000"}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_OTP", errorCode(t, body))
	})

	var accessToken string
	t.Run("verified farmer receives a token", func(t *testing.T) {
		resp, body := srv.postJSON(t, "/auth/verify-otp", dto.VerifyOTPRequest{Phone: "+919999999999", Code: "123456"}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var verified dto.VerifyOTPResponse
		decodeData(t, body, &verified)
		assert.True(t, verified.Verified)
		assert.Equal(t, farmer.SurveyNumber, verified.SurveyNumber)
		require.NotEmpty(t, verified.AccessToken)
		accessToken = verified.AccessToken

		// The issued token authenticates relay calls
		resp, _ = srv.get(t, "/relay/sessions/session_missing", verified.AccessToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		require.NotEmpty(t, accessToken)

		resp, body := srv.postJSON(t, "/auth/logout", nil, accessToken)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		resp, body = srv.get(t, "/relay/sessions/session_missing", accessToken)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "TOKEN_REVOKED", errorCode(t, body))

		resp, _ = srv.postJSON(t, "/auth/logout", nil, accessToken)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("logout requires a token", func(t *testing.T) {
		resp, _ := srv.postJSON(t, "/auth/logout", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing code", func(t *testing.T) {
		resp, body := srv.postJSON(t, "/auth/verify-otp", map[string]string{"phone": "+919999999999"}, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
	})
}

func TestOTPLogin_VerifyServiceMissing(t *testing.T) {
	srv := newTestServer(t)
	srv.gateway.NotReady = services.ErrGatewayUnavailable

	resp, body := srv.postJSON(t, "/auth/send-otp", dto.SendOTPRequest{Phone: "+919999999999"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "VERIFY_NOT_CONFIGURED", errorCode(t, body))
}
