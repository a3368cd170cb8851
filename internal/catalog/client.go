package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pizza-text-bot/internal/logger"
	"pizza-text-bot/internal/order"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
)

type (
	// Client talks to the pizzeria order backend (catalog + order intake).
	Client struct {
		addr string

		cl *resty.Client
	}

	BackendError struct {
		Url     string
		Code    int
		Message string
	}
)

func New(addr string) *Client {
	return &Client{
		addr: addr,
		cl: resty.New().
			SetTimeout(10 * time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("Backend request failed for %s with code %d and message:\n%s", e.Url, e.Code, e.Message)
}

// Flavors fetches the full catalog, active or not.
func (c *Client) Flavors(ctx context.Context) ([]Flavor, error) {
	reqUrl := c.addr + "/flavors"

	logger.Debug("---> request GET", reqUrl)

	resp, err := c.cl.R().SetContext(ctx).Get(reqUrl)
	if err != nil {
		return nil, fmt.Errorf("resty.Client.Get: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &BackendError{
			Url:     reqUrl,
			Code:    resp.StatusCode(),
			Message: string(resp.Body()),
		}
	}

	var flavors []Flavor
	if err = json.Unmarshal(resp.Body(), &flavors); err != nil {
		return nil, fmt.Errorf("flavors unmarshal json: %w", err)
	}

	return flavors, nil
}

// ActiveFlavors returns only the items eligible for ordering and menu display.
func (c *Client) ActiveFlavors(ctx context.Context) ([]Flavor, error) {
	flavors, err := c.Flavors(ctx)
	if err != nil {
		return nil, err
	}

	return lo.Filter(flavors, func(f Flavor, _ int) bool {
		return f.IsActive
	}), nil
}

// CreateOrder submits a completed draft to the backend.
func (c *Client) CreateOrder(ctx context.Context, o order.Order) error {
	reqUrl := c.addr + "/orders"

	logger.Debug("---> request POST", reqUrl)

	resp, err := c.cl.R().SetContext(ctx).SetBody(o).Post(reqUrl)
	if err != nil {
		return fmt.Errorf("resty.Client.Post: %w", err)
	}
	if resp.IsError() {
		return &BackendError{
			Url:     reqUrl,
			Code:    resp.StatusCode(),
			Message: string(resp.Body()),
		}
	}

	return nil
}
