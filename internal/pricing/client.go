package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/univcloud/campus-services/internal/models"
)

// Client looks up yearly tuition prices on the external degree service. Every
// call is bounded by the configured timeout; a timeout counts as a transient
// failure. The client never retries, backpressure comes from the breaker.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// NewClient constructs a pricing client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

type priceResponse struct {
	DegreeID int64        `json:"degree_id"`
	Amount   models.Money `json:"amount"`
}

// LookupPrice fetches the yearly tuition amount for a degree. The outcome is
// always one of Success, NotFound or TransientFailure; the amount is only
// meaningful on Success.
func (c *Client) LookupPrice(ctx context.Context, degreeID int64) (models.Money, Outcome) {
	url := fmt.Sprintf("%s/degrees/%d/price", c.baseURL, degreeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("pricing request build failed", zap.Error(err))
		return 0, OutcomeTransientFailure
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("pricing lookup failed", zap.Int64("degree_id", degreeID), zap.Error(err))
		return 0, OutcomeTransientFailure
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, OutcomeNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.logger.Warn("pricing lookup unexpected status",
			zap.Int64("degree_id", degreeID),
			zap.Int("status", resp.StatusCode),
		)
		return 0, OutcomeTransientFailure
	}

	var payload priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Warn("pricing lookup malformed payload", zap.Int64("degree_id", degreeID), zap.Error(err))
		return 0, OutcomeTransientFailure
	}
	if payload.Amount <= 0 {
		c.logger.Warn("pricing lookup non-positive amount", zap.Int64("degree_id", degreeID))
		return 0, OutcomeTransientFailure
	}

	return payload.Amount, OutcomeSuccess
}
