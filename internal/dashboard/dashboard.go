// Package dashboard loads everything the home screen shows in one pass.
//
// Sections are fetched in parallel and fail independently: a failed section
// is recorded and the rest of the dashboard still renders. The leaderboard,
// most-tagged and daily activity sections fall back to recomputing from the
// loaded feed when the server cannot provide them.
package dashboard

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/insights"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

// Section names one part of the dashboard.
type Section string

const (
	SectionMe              Section = "me"
	SectionMetrics         Section = "metrics"
	SectionEmployeeOfMonth Section = "employee_of_month"
	SectionEmployees       Section = "employees"
	SectionFeed            Section = "feed"
	SectionLeaderboard     Section = "leaderboard"
	SectionMostTagged      Section = "most_tagged"
	SectionNotifications   Section = "notifications"
	SectionDailyActivity   Section = "daily_activity"
)

// Source is the API surface the dashboard reads. *bragboard.Client implements it.
type Source interface {
	FetchMe(ctx context.Context) (model.Employee, error)
	FetchMetrics(ctx context.Context) (model.Metrics, error)
	FetchEmployeeOfMonth(ctx context.Context) (model.EmployeeOfMonth, error)
	FetchEmployees(ctx context.Context) ([]model.Employee, error)
	FetchFeed(ctx context.Context) ([]model.Shoutout, error)
	FetchLeaderboard(ctx context.Context) ([]model.Contributor, error)
	FetchMostTagged(ctx context.Context) (model.TagCount, bool, error)
	FetchNotifications(ctx context.Context) ([]model.Notification, error)
	FetchDailyActivity(ctx context.Context) ([]model.EngagementPoint, error)
}

// Options tunes a load.
type Options struct {
	Insights insights.Options
	Logger   *zap.Logger
}

// Dashboard is one loaded home screen. Nil pointers mean the section is missing.
type Dashboard struct {
	Me              *model.Employee
	Metrics         *model.Metrics
	EmployeeOfMonth *model.EmployeeOfMonth
	Employees       []model.Employee
	Feed            []model.Shoutout
	Leaderboard     []model.Contributor
	MostTagged      *model.TagCount
	Notifications   []model.Notification
	DailyActivity   []model.EngagementPoint

	// Local marks sections recomputed from the feed.
	Local map[Section]bool
	// Errors holds the failure of every section that could not be filled.
	Errors map[Section]error
}

// Failed lists the sections that could not be filled, in name order.
func (d *Dashboard) Failed() []Section {
	out := make([]Section, 0, len(d.Errors))
	for s := range d.Errors {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Load fetches every section. The returned error is non-nil only when a
// section failed for lack of a valid session, since nothing else will load
// either until the user logs in again.
func Load(ctx context.Context, src Source, opts Options) (*Dashboard, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Dashboard{Local: map[Section]bool{}, Errors: map[Section]error{}}
	var mu sync.Mutex
	fail := func(s Section, err error) {
		mu.Lock()
		defer mu.Unlock()
		d.Errors[s] = err
		logger.Info("dashboard section failed", zap.String("section", string(s)), zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	run := func(s Section, fn func(context.Context) error) {
		g.Go(func() error {
			if err := fn(gctx); err != nil {
				fail(s, err)
			}
			return nil
		})
	}

	run(SectionMe, func(ctx context.Context) error {
		me, err := src.FetchMe(ctx)
		if err == nil {
			d.Me = &me
		}
		return err
	})
	run(SectionMetrics, func(ctx context.Context) error {
		m, err := src.FetchMetrics(ctx)
		if err == nil {
			d.Metrics = &m
		}
		return err
	})
	run(SectionEmployeeOfMonth, func(ctx context.Context) error {
		eom, err := src.FetchEmployeeOfMonth(ctx)
		if err == nil {
			d.EmployeeOfMonth = &eom
		}
		return err
	})
	run(SectionEmployees, func(ctx context.Context) error {
		var err error
		d.Employees, err = src.FetchEmployees(ctx)
		return err
	})
	run(SectionFeed, func(ctx context.Context) error {
		var err error
		d.Feed, err = src.FetchFeed(ctx)
		return err
	})
	run(SectionLeaderboard, func(ctx context.Context) error {
		var err error
		d.Leaderboard, err = src.FetchLeaderboard(ctx)
		return err
	})
	run(SectionMostTagged, func(ctx context.Context) error {
		top, ok, err := src.FetchMostTagged(ctx)
		if err == nil && ok {
			d.MostTagged = &top
		}
		return err
	})
	run(SectionNotifications, func(ctx context.Context) error {
		var err error
		d.Notifications, err = src.FetchNotifications(ctx)
		return err
	})
	run(SectionDailyActivity, func(ctx context.Context) error {
		var err error
		d.DailyActivity, err = src.FetchDailyActivity(ctx)
		return err
	})

	_ = g.Wait()

	d.fallBack(opts.Insights)

	for _, s := range d.Failed() {
		if errors.Is(d.Errors[s], apperr.ErrAuth) {
			return d, apperr.Wrap("load dashboard", d.Errors[s])
		}
	}
	return d, nil
}

// fallBack recomputes the derived sections the server did not provide.
func (d *Dashboard) fallBack(opts insights.Options) {
	if _, failed := d.Errors[SectionFeed]; failed {
		return
	}
	if opts.TopK <= 0 {
		opts.TopK = insights.DefaultTopK
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = insights.DefaultWindowDays
	}

	if _, failed := d.Errors[SectionLeaderboard]; failed {
		d.Leaderboard = insights.TopContributors(d.Feed, opts.TopK)
		d.recovered(SectionLeaderboard)
	}
	if _, failed := d.Errors[SectionMostTagged]; failed {
		if top, ok := insights.MostTagged(d.Feed); ok {
			d.MostTagged = &top
		}
		d.recovered(SectionMostTagged)
	}
	if _, failed := d.Errors[SectionDailyActivity]; failed {
		d.DailyActivity = insights.DailyActivity(d.Feed, opts.WindowDays)
		d.recovered(SectionDailyActivity)
	}
}

func (d *Dashboard) recovered(s Section) {
	delete(d.Errors, s)
	d.Local[s] = true
}
