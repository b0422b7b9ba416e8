package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/domain/submission"
	"github.com/whopu/challenge/pkg/infra/httpx"
	"github.com/whopu/challenge/pkg/infra/prometheus"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

//go:generate mockery --name=Forwarder --dir=. --output=./mocks --filename=forwarder_mock.go --case=underscore --with-expecter
type Forwarder interface {
	Forward(ctx context.Context, sub *submission.Submission) error
}

type forwarder struct {
	logger     *logrus.Logger
	client     httpx.Client
	breaker    httpx.CircuitBreaker
	webhookURL string
	now        func() time.Time
}

func NewForwarder(
	logger *logrus.Logger,
	client httpx.Client,
	breaker httpx.CircuitBreaker,
	webhookURL string,
) Forwarder {
	return &forwarder{
		logger:     logger,
		client:     client,
		breaker:    breaker,
		webhookURL: webhookURL,
		now:        time.Now,
	}
}

// Forward posts one row to the spreadsheet web app. The error is returned for
// the caller to count; it has already been logged together with a fallback
// copy of the row.
func (f *forwarder) Forward(ctx context.Context, sub *submission.Submission) error {
	if f.webhookURL == "" {
		f.logger.WithField("submissionId", sub.ID).Warn("spreadsheet webhook not configured, skipping forward")
		prometheus.SheetsForwardTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	payload := BuildPayload(sub, f.now())
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet payload: %w", err)
	}

	start := time.Now()
	err = f.breaker.Execute(func() error {
		return f.post(ctx, body)
	})
	prometheus.SheetsForwardLatency.Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		prometheus.SheetsForwardTotal.WithLabelValues("error").Inc()
		f.logger.WithFields(logrus.Fields{
			"submissionId": sub.ID,
			"breaker":      f.breaker.State(),
			"fallback":     payload,
		}).WithError(err).Error("failed to forward submission to spreadsheet")
		return err
	}

	prometheus.SheetsForwardTotal.WithLabelValues("ok").Inc()
	f.logger.WithFields(logrus.Fields{
		"submissionId": sub.ID,
		"day":          sub.Day,
	}).Debug("submission forwarded to spreadsheet")
	return nil
}

func (f *forwarder) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sheet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("sheet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheet webhook returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// BuildPayload flattens a submission into the row the spreadsheet script
// appends to the "Day N" tab.
func BuildPayload(sub *submission.Submission, now time.Time) map[string]interface{} {
	p := map[string]interface{}{
		"sheet":        "Day " + strconv.Itoa(sub.Day),
		"timestamp":    now.UTC().Format(timestampLayout),
		"submissionId": sub.ID,
		"dayNumber":    sub.Day,
		"username":     sub.Username,
		"email":        sub.Email,
		"notes":        sub.Notes,
		"status":       string(sub.Status),
	}

	d := sub.Details
	switch sub.Kind {
	case submission.KindWorksheet:
		p["reframes"] = FormatReframes(d.WorksheetRows)
		p["reframeCount"] = sub.ReframeCount()
		if d.WorksheetLink != "" {
			p["worksheetLink"] = d.WorksheetLink
		}
	case submission.KindMarketResearch:
		p["market"] = d.Market
		p["whyProfitable"] = d.WhyProfitable
		p["problem"] = d.Problem
		p["desiredOutcome"] = d.DesiredOutcome
		p["researchLink"] = d.ResearchLink
	case submission.KindDocLink:
		p["docLink"] = d.DocLink
	case submission.KindStoreLink:
		p["storeLink"] = d.StoreLink
	case submission.KindProfileLink:
		p["profileLink"] = d.ProfileLink
	}
	return p
}

// FormatReframes renders rows as `1. "can't" → "never easier"` lines.
func FormatReframes(rows []submission.WorksheetRow) string {
	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		lines = append(lines, fmt.Sprintf(`%d. "%s" → "%s"`, i+1, r.CantBecause, r.NeverEasierBecause))
	}
	return strings.Join(lines, "\n")
}
