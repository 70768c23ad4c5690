package callwatch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
)

func newFakeServer(t *testing.T, status int, body any, received *[]string) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Post(MissedCallPath, func(w http.ResponseWriter, req *http.Request) {
		var payload dto.MissedCallReportRequest
		if err := json.NewDecoder(req.Body).Decode(&payload); err == nil {
			*received = append(*received, payload.Phone)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestReporter_ReportMissedCall(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		var received []string
		srv := newFakeServer(t, http.StatusOK, dto.NotificationResult{
			Success:    true,
			Message:    "SMS sent successfully",
			MessageSID: "SM123",
			FarmerName: "Ravi",
		}, &received)

		result, err := NewReporter(srv.URL, 5*time.Second).ReportMissedCall(context.Background(), "+919999999999")
		require.NoError(t, err)
		assert.Equal(t, []string{"+919999999999"}, received)
		assert.True(t, result.Success)
		assert.Equal(t, "SM123", result.MessageSID)
		assert.Equal(t, "Ravi", result.FarmerName)
	})

	t.Run("rejected", func(t *testing.T) {
		var received []string
		srv := newFakeServer(t, http.StatusNotFound, dto.APIResponse{
			Success: false,
			Message: "Farmer not found",
			Error:   dto.ErrorDetail{Code: "FARMER_NOT_FOUND"},
		}, &received)

		_, err := NewReporter(srv.URL, 5*time.Second).ReportMissedCall(context.Background(), "+910000000000")
		require.ErrorIs(t, err, ErrReportRejected)
		assert.Contains(t, err.Error(), "Farmer not found")
		assert.Len(t, received, 1, "reports are not retried")
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewReporter(url, time.Second).ReportMissedCall(context.Background(), "+919999999999")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrReportRejected)
	})
}
