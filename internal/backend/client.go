package backend

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"patio-slots/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// yardDTO is the backend's yard record. Older deployments send the Portuguese "nome".
type yardDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Nome string `json:"nome"`
}

func (d yardDTO) toModel() models.Yard {
	name := d.Name
	if name == "" {
		name = d.Nome
	}
	return models.Yard{ID: strconv.FormatInt(d.ID, 10), Name: name}
}

// Client talks to the fleet backend: the yard catalog and unit administration. The bearer token is fixed at
// construction; build a new client when the session changes.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates a backend client rooted at baseURL (e.g. http://host:5263/api).
func NewClient(baseURL, token string, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// ListYards fetches every yard.
func (c *Client) ListYards(ctx context.Context) ([]models.Yard, error) {
	var dtos []yardDTO
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&dtos).
		Get("/yards")
	if err != nil {
		return nil, fmt.Errorf("failed to call yards API: %w", err)
	}
	if resp.IsError() {
		c.logger.Error("Yards API returned error",
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, fmt.Errorf("yards API error: status %d", resp.StatusCode())
	}

	yards := make([]models.Yard, 0, len(dtos))
	for _, d := range dtos {
		yards = append(yards, d.toModel())
	}

	c.logger.Debug("Fetched yards from backend", zap.Int("yard_count", len(yards)))
	return yards, nil
}
