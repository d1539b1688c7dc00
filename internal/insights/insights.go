package insights

import (
	"sort"
	"time"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

// tally counts keys while remembering the order each key was first seen.
type tally struct {
	order  []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, seen := t.counts[key]; !seen {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// ranked returns keys by descending count; equal counts keep first-seen order.
func (t *tally) ranked() []string {
	keys := append([]string(nil), t.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return t.counts[keys[i]] > t.counts[keys[j]]
	})
	return keys
}

// TopContributors groups shoutouts by author label and returns at most k
// authors by descending post count.
func TopContributors(shoutouts []model.Shoutout, k int) []model.Contributor {
	if k <= 0 || len(shoutouts) == 0 {
		return []model.Contributor{}
	}
	authors := newTally()
	for _, s := range shoutouts {
		authors.add(s.AuthorLabel())
	}
	ranked := authors.ranked()
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	out := make([]model.Contributor, 0, len(ranked))
	for _, name := range ranked {
		out = append(out, model.Contributor{AuthorName: name, Count: authors.counts[name]})
	}
	return out
}

// MostTagged returns the name tagged most often. ok is false when nobody is tagged.
func MostTagged(shoutouts []model.Shoutout) (top model.TagCount, ok bool) {
	names := newTally()
	for _, s := range shoutouts {
		for _, name := range s.TaggedUserNames {
			names.add(name)
		}
	}
	if len(names.order) == 0 {
		return model.TagCount{}, false
	}
	// The first ranked key is the first-seen among the highest counts.
	best := names.ranked()[0]
	return model.TagCount{Name: best, Count: names.counts[best]}, true
}

// DailyActivity counts shoutouts per calendar day and returns the most recent
// windowDays days that have at least one shoutout, oldest first. Records
// without a usable timestamp are skipped.
func DailyActivity(shoutouts []model.Shoutout, windowDays int) []model.EngagementPoint {
	if windowDays <= 0 {
		return []model.EngagementPoint{}
	}
	days := newTally()
	for _, s := range shoutouts {
		if day, ok := s.Day(); ok {
			days.add(day)
		}
	}
	keys := append([]string(nil), days.order...)
	// YYYY-MM-DD sorts lexically in date order.
	sort.Strings(keys)
	if len(keys) > windowDays {
		keys = keys[len(keys)-windowDays:]
	}
	out := make([]model.EngagementPoint, 0, len(keys))
	for _, day := range keys {
		out = append(out, model.EngagementPoint{Date: day, Count: days.counts[day]})
	}
	return out
}

// FillGaps returns a dense series from the first to the last point, inserting
// zero-count days. Input must be ascending, as DailyActivity returns it.
func FillGaps(points []model.EngagementPoint) []model.EngagementPoint {
	if len(points) < 2 {
		return append([]model.EngagementPoint{}, points...)
	}
	byDay := make(map[string]int, len(points))
	for _, p := range points {
		byDay[p.Date] = p.Count
	}
	first, err := time.Parse(model.DateLayout, points[0].Date)
	if err != nil {
		return append([]model.EngagementPoint{}, points...)
	}
	last, err := time.Parse(model.DateLayout, points[len(points)-1].Date)
	if err != nil || last.Before(first) {
		return append([]model.EngagementPoint{}, points...)
	}
	var out []model.EngagementPoint
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(model.DateLayout)
		out = append(out, model.EngagementPoint{Date: key, Count: byDay[key]})
	}
	return out
}

// Summarize computes every aggregate for shoutouts.
func Summarize(shoutouts []model.Shoutout, opts Options) Summary {
	if opts.TopK <= 0 {
		opts.TopK = DefaultTopK
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = DefaultWindowDays
	}
	summary := Summary{
		TotalShoutouts:  len(shoutouts),
		TopContributors: TopContributors(shoutouts, opts.TopK),
		DailyActivity:   DailyActivity(shoutouts, opts.WindowDays),
	}
	if top, ok := MostTagged(shoutouts); ok {
		summary.MostTagged = &top
	}
	return summary
}
