package bragboard

import (
	"context"
	"net/http"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

// FetchDailyActivity retrieves the server-computed engagement series.
func (c *Client) FetchDailyActivity(ctx context.Context) ([]model.EngagementPoint, error) {
	const op = "fetch daily activity"
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/auth/analytics/daily-activity"})
	if err != nil {
		return nil, err
	}
	points, err := model.ParseEngagement(body)
	return points, parseErr(op, err)
}

// FetchLeaderboard retrieves the server-computed top contributors.
func (c *Client) FetchLeaderboard(ctx context.Context) ([]model.Contributor, error) {
	const op = "fetch leaderboard"
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/auth/leaderboard"})
	if err != nil {
		return nil, err
	}
	rows, err := model.ParseContributors(body)
	return rows, parseErr(op, err)
}

// FetchMostTagged retrieves the server-computed most tagged employee.
// ok is false when the server knows of nobody.
func (c *Client) FetchMostTagged(ctx context.Context) (top model.TagCount, ok bool, err error) {
	const op = "fetch most tagged"
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/auth/most-tagged"})
	if err != nil {
		return model.TagCount{}, false, err
	}
	top, ok, err = model.ParseTagCount(body)
	return top, ok, parseErr(op, err)
}
