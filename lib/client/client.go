// Package client is a small http client for the profilesd API, used by
// the CLI and by anything else that wants refreshes without linking
// the scraper stack.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"foundermatch-backend/services/profiles"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http *resty.Client
}

func New(baseUrl string) Client {
	c := resty.New()
	c.SetBaseURL(baseUrl)
	// refresh batches hold the connection open for minutes
	c.SetTimeout(time.Minute * 30)
	return Client{http: c}
}

func decode[T any](res *resty.Response, err error) (T, error) {
	var out T
	if err != nil {
		return out, err
	}
	if res.IsError() {
		return out, fmt.Errorf("%s: %s", res.Status(), res.String())
	}
	err = json.Unmarshal(res.Body(), &out)
	return out, err
}

func (c Client) Refresh(ctx context.Context, batchSize int, userId string) (profiles.RefreshReport, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("batchSize", strconv.Itoa(batchSize))
	if userId != "" {
		req.SetQueryParam("userId", userId)
	}
	return decode[profiles.RefreshReport](req.Get("/api/refresh"))
}

func (c Client) Status(ctx context.Context) (profiles.StatusReport, error) {
	return decode[profiles.StatusReport](
		c.http.R().SetContext(ctx).Get("/api/refresh/status"),
	)
}

type ProfilesQuery struct {
	Limit    int
	Page     int
	Name     string
	Location string
	Funding  string
}

func (c Client) Profiles(ctx context.Context, query ProfilesQuery) (profiles.ListResult, error) {
	req := c.http.R().SetContext(ctx)
	if query.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(query.Limit))
	}
	if query.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(query.Page))
	}
	if query.Name != "" {
		req.SetQueryParam("name", query.Name)
	}
	if query.Location != "" {
		req.SetQueryParam("location", query.Location)
	}
	if query.Funding != "" {
		req.SetQueryParam("funding", query.Funding)
	}
	return decode[profiles.ListResult](req.Get("/api/profiles"))
}
