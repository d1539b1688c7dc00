package display

import (
	"fmt"
	"strings"

	"github.com/gauthierbraillon/bragboard/internal/dashboard"
	"github.com/gauthierbraillon/bragboard/internal/insights"
	"github.com/gauthierbraillon/bragboard/internal/model"
	"github.com/gauthierbraillon/bragboard/internal/notify"
)

// barWidth is the widest activity bar.
const barWidth = 20

// FormatInsights formats the aggregates computed from the feed.
func (f *TerminalFormatter) FormatInsights(s insights.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total shoutouts: %d\n", s.TotalShoutouts)
	b.WriteString("\n" + f.FormatLeaderboard(s.TopContributors))
	b.WriteString("\n" + f.formatMostTagged(s.MostTagged))
	b.WriteString("\n" + f.FormatActivity(s.DailyActivity))
	return b.String()
}

// FormatLeaderboard formats the top contributors.
func (f *TerminalFormatter) FormatLeaderboard(rows []model.Contributor) string {
	if len(rows) == 0 {
		return "Top contributors: none yet\n"
	}
	var b strings.Builder
	b.WriteString("Top contributors:\n")
	for i, r := range rows {
		line := fmt.Sprintf("  %d. %s%s%s", i+1, r.AuthorName, separator, countOf(r.Count, "shoutout"))
		if r.Department != "" {
			line += " (" + r.Department + ")"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (f *TerminalFormatter) formatMostTagged(top *model.TagCount) string {
	if top == nil {
		return "Most tagged: nobody yet\n"
	}
	return fmt.Sprintf("Most tagged: %s (%s)\n", top.Name, countOf(top.Count, "tag"))
}

// FormatActivity formats the daily engagement series as a bar chart.
func (f *TerminalFormatter) FormatActivity(points []model.EngagementPoint) string {
	if len(points) == 0 {
		return "Daily activity: no activity\n"
	}
	peak := 0
	for _, p := range points {
		peak = max(peak, p.Count)
	}
	var b strings.Builder
	b.WriteString("Daily activity:\n")
	for _, p := range points {
		width := 0
		if peak > 0 {
			width = p.Count * barWidth / peak
		}
		if p.Count > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(&b, "  %s %s %d\n", p.Date, strings.Repeat("█", width), p.Count)
	}
	return b.String()
}

// FormatNotifications formats the notification panel. The bell shows only
// while something visible is unread.
func (f *TerminalFormatter) FormatNotifications(items []model.Notification, state notify.State) string {
	var b strings.Builder
	if state == notify.Unread && len(items) > 0 {
		fmt.Fprintf(&b, "🔔 %s\n", countOf(len(items), "notification"))
	} else {
		b.WriteString("Notifications\n")
	}
	if len(items) == 0 {
		b.WriteString("  No notifications.\n")
		return b.String()
	}
	for _, n := range items {
		fmt.Fprintf(&b, "  [%s] %s%s%s\n", n.ID, strings.TrimSpace(n.Message), separator, f.FormatTimestamp(n.CreatedAt))
	}
	return b.String()
}

// FormatEmployees formats the tag picker list.
func (f *TerminalFormatter) FormatEmployees(employees []model.Employee) string {
	if len(employees) == 0 {
		return "No employees found.\n"
	}
	var b strings.Builder
	for _, e := range employees {
		line := fmt.Sprintf("%s%s%s", e.ID, separator, e.Label())
		if e.Department != "" {
			line += separator + e.Department
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// FormatEmployeeOfMonth formats the current announcement.
func (f *TerminalFormatter) FormatEmployeeOfMonth(eom model.EmployeeOfMonth) string {
	line := "🏆 Employee of the month: " + eom.Name
	if eom.Department != "" {
		line += " (" + eom.Department + ")"
	}
	if eom.MonthYear != "" {
		line += separator + eom.MonthYear
	}
	return line + "\n"
}

// FormatDashboard formats every loaded section, noting missing ones.
func (f *TerminalFormatter) FormatDashboard(d *dashboard.Dashboard, feedLimit int) string {
	var b strings.Builder

	if d.Me != nil {
		fmt.Fprintf(&b, "Welcome, %s!\n", d.Me.Label())
	}
	if d.Metrics != nil {
		fmt.Fprintf(&b, "Given: %d%sReceived: %d%sComments: %d\n",
			d.Metrics.ShoutoutsGiven, separator, d.Metrics.ShoutoutsReceived, separator, d.Metrics.CommentsMade)
	}
	if d.EmployeeOfMonth != nil {
		b.WriteString(f.FormatEmployeeOfMonth(*d.EmployeeOfMonth))
	}

	b.WriteString("\n" + f.FormatLeaderboard(d.Leaderboard))
	b.WriteString("\n" + f.formatMostTagged(d.MostTagged))
	b.WriteString("\n" + f.FormatActivity(d.DailyActivity))

	if _, failed := d.Errors[dashboard.SectionNotifications]; !failed {
		fmt.Fprintf(&b, "\n%s\n", countOf(len(d.Notifications), "notification"))
	}

	if _, failed := d.Errors[dashboard.SectionFeed]; !failed {
		feed := d.Feed
		if feedLimit > 0 && len(feed) > feedLimit {
			feed = feed[:feedLimit]
		}
		b.WriteString("\n" + f.FormatFeed(feed))
	}

	if len(d.Local) > 0 {
		var local []string
		for _, s := range []dashboard.Section{dashboard.SectionLeaderboard, dashboard.SectionMostTagged, dashboard.SectionDailyActivity} {
			if d.Local[s] {
				local = append(local, string(s))
			}
		}
		fmt.Fprintf(&b, "\n(computed locally: %s)\n", strings.Join(local, ", "))
	}
	if failed := d.Failed(); len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, s := range failed {
			names = append(names, string(s))
		}
		fmt.Fprintf(&b, "(unavailable: %s)\n", strings.Join(names, ", "))
	}
	return b.String()
}
