package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/novatech/interview-agent-go/internal/constants"
	"github.com/novatech/interview-agent-go/internal/domain"
	"github.com/novatech/interview-agent-go/pkg/errors"
	"go.uber.org/zap"
)

// Deliverer hands a composed report to the delivery transport. Fire and
// forget from the pipeline's perspective: failures are logged by the
// caller, never retried.
type Deliverer interface {
	Deliver(ctx context.Context, report *domain.Report) error
}

// ResendClient delivers report emails through the Resend HTTP API.
type ResendClient struct {
	httpClient *http.Client
	apiKey     string
	from       string
	baseURL    string
	logger     *zap.Logger
}

func NewResendClient(httpClient *http.Client, apiKey, from string, logger *zap.Logger) *ResendClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: constants.APIConfig.ResendTimeout}
	}
	return &ResendClient{
		httpClient: httpClient,
		apiKey:     apiKey,
		from:       from,
		baseURL:    constants.APIConfig.ResendBaseURL,
		logger:     logger,
	}
}

type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendEmailResponse struct {
	ID string `json:"id"`
}

// Deliver posts one email. A missing API key is a configuration-level
// service error, surfaced so the pipeline can log and move on.
func (c *ResendClient) Deliver(ctx context.Context, report *domain.Report) error {
	if c.apiKey == "" {
		return errors.NewServiceError("RESEND_API_KEY is not configured", "resend", "deliver", nil)
	}

	payload, err := json.Marshal(sendEmailRequest{
		From:    c.from,
		To:      []string{report.Recipient},
		Subject: report.Subject,
		HTML:    report.HTML,
	})
	if err != nil {
		return errors.NewServiceError("failed to encode email payload", "resend", "deliver", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return errors.NewServiceError("failed to build email request", "resend", "deliver", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewServiceError("email request failed", "resend", "deliver", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewServiceError(
			fmt.Sprintf("resend returned status %d: %s", resp.StatusCode, string(body)),
			"resend", "deliver", nil,
		)
	}

	var sent sendEmailResponse
	if err := json.Unmarshal(body, &sent); err == nil && sent.ID != "" {
		c.logger.Info("Report email delivered",
			zap.String("recipient", report.Recipient),
			zap.String("message_id", sent.ID),
		)
	} else {
		c.logger.Info("Report email delivered", zap.String("recipient", report.Recipient))
	}

	return nil
}
