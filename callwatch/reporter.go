package callwatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/app/dto"
)

// MissedCallPath is the server endpoint that receives handset reports
const MissedCallPath = "/api/missed-call"

// ErrReportRejected is returned when the server answers with a non-2xx status
var ErrReportRejected = errors.New("missed call report rejected")

// MissedCallReporter delivers one missed-call report
type MissedCallReporter interface {
	ReportMissedCall(ctx context.Context, phone string) (*dto.NotificationResult, error)
}

// Reporter posts missed calls to the notification service
type Reporter struct {
	client *resty.Client
}

// NewReporter creates a reporter for the server at baseURL. Reports are not retried.
func NewReporter(baseURL string, timeout time.Duration) *Reporter {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Reporter{client: client}
}

// ReportMissedCall sends {"phone": phone} once
func (r *Reporter) ReportMissedCall(ctx context.Context, phone string) (*dto.NotificationResult, error) {
	var (
		result  dto.NotificationResult
		failure dto.APIResponse
	)

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(dto.MissedCallReportRequest{Phone: phone}).
		SetResult(&result).
		SetError(&failure).
		Post(MissedCallPath)
	if err != nil {
		return nil, fmt.Errorf("failed to report missed call: %w", err)
	}

	if resp.IsError() {
		message := failure.Message
		if message == "" {
			message = resp.Status()
		}
		return nil, fmt.Errorf("%w: %d %s", ErrReportRejected, resp.StatusCode(), message)
	}

	return &result, nil
}
