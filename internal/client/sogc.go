package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/fivetwenty-io/zefix/internal/http"
	"github.com/fivetwenty-io/zefix/pkg/zefix"
)

// SOGCClient implements zefix.SOGCClient.
type SOGCClient struct {
	httpClient *http.Client
}

// NewSOGCClient creates a new SOGC client.
func NewSOGCClient(httpClient *http.Client) *SOGCClient {
	return &SOGCClient{
		httpClient: httpClient,
	}
}

// ByDate implements zefix.SOGCClient.ByDate. Only the calendar date of date
// is used.
func (c *SOGCClient) ByDate(ctx context.Context, date time.Time) ([]zefix.SOGCEntry, error) {
	path := constants.APIPathPrefix + "/sogc/bydate/" + date.Format(constants.SOGCDateLayout)

	return c.list(ctx, path, "listing SOGC publications by date")
}

// Get implements zefix.SOGCClient.Get.
func (c *SOGCClient) Get(ctx context.Context, id int64) ([]zefix.SOGCEntry, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", zefix.ErrInvalidSOGCID, id)
	}

	path := constants.APIPathPrefix + "/sogc/" + strconv.FormatInt(id, 10)

	return c.list(ctx, path, "getting SOGC publication")
}

func (c *SOGCClient) list(ctx context.Context, path, action string) ([]zefix.SOGCEntry, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	var entries []zefix.SOGCEntry

	err = json.Unmarshal(resp.Body, &entries)
	if err != nil {
		return nil, fmt.Errorf("parsing SOGC response: %w", err)
	}

	return entries, nil
}
