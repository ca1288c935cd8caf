package timesvc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/sahyadri/classai/core"
	"github.com/sahyadri/classai/core/timetable"
)

// Client resolves the current day-of-week from worldtimeapi.org. Any
// failure degrades to the local clock; callers never see an error.
type Client struct {
	conf   *core.Config
	logger core.Logger
	http   *http.Client
}

var _ timetable.DayResolver = (*Client)(nil)

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return &Client{
		conf:   conf,
		logger: logger,
		http:   &http.Client{Timeout: conf.WorldTime.Timeout},
	}
}

func (c *Client) DayOfWeek(ctx context.Context) string {
	day, err := c.fetchDay(ctx)
	if err != nil {
		c.logger.Warn("world time lookup failed, falling back to local clock", err)
		return time.Now().Weekday().String()
	}
	return day
}

func (c *Client) fetchDay(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.conf.WorldTime.BaseURL+"/api/ip", nil)
	if err != nil {
		return "", errors.Wrap(err, "worldtime: building request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "worldtime: calling api")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("worldtime: api error (status %d)", resp.StatusCode)
	}

	var body struct {
		Datetime  string `json:"datetime"`
		DayOfWeek int    `json:"day_of_week"` // 0 = Sunday
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "worldtime: decoding response")
	}

	if t, err := time.Parse(time.RFC3339, body.Datetime); err == nil {
		return t.Weekday().String(), nil
	}
	if body.DayOfWeek >= 0 && body.DayOfWeek <= 6 {
		return time.Weekday(body.DayOfWeek).String(), nil
	}
	return "", errors.New("worldtime: unusable response")
}
