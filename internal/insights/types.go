// Package insights derives engagement aggregates from a shoutout collection.
//
// This package enables bragboard to:
// - Rank top contributors and find the most tagged employee
// - Build the daily engagement series shown next to the feed
// - Filter the feed by date range, author and limit
//
// Every function is pure: the same input always yields the same output, and
// ties are broken by input order. Results are recomputed on demand and never
// stored next to the collection they came from.
package insights

import (
	"time"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

// Default sizes used by the dashboard.
const (
	DefaultTopK       = 3
	DefaultWindowDays = 7
)

// Options sizes a Summary.
type Options struct {
	TopK       int
	WindowDays int
}

// Summary bundles every aggregate for one collection.
type Summary struct {
	TotalShoutouts  int                     `json:"total_shoutouts"`
	TopContributors []model.Contributor     `json:"top_contributors"`
	MostTagged      *model.TagCount         `json:"most_tagged,omitempty"`
	DailyActivity   []model.EngagementPoint `json:"daily_activity"`
}

// FeedOptions configures a filtered view of the feed.
type FeedOptions struct {
	Limit   int
	Since   time.Time
	Until   time.Time
	Authors []string
}
