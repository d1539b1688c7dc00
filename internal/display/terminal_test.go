package display

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gauthierbraillon/bragboard/internal/dashboard"
	"github.com/gauthierbraillon/bragboard/internal/insights"
	"github.com/gauthierbraillon/bragboard/internal/model"
	"github.com/gauthierbraillon/bragboard/internal/notify"
)

func TestAC300_TerminalFeed_ShowsMessage(t *testing.T) {
	s := model.Shoutout{ID: "7", AuthorName: "Asha", Message: "Thanks for the late-night fix!", CreatedAt: time.Now()}

	output := NewTerminalFormatter().FormatShoutout(s)

	if !strings.Contains(output, "Thanks for the late-night fix!") {
		t.Error("user should see the shoutout message in terminal output")
	}
	if !strings.Contains(output, "#7") {
		t.Error("user should see the shoutout id to act on it")
	}
}

func TestAC300_TerminalFeed_ShowsAuthorName(t *testing.T) {
	output := NewTerminalFormatter().FormatShoutout(model.Shoutout{AuthorName: "Asha", CreatedAt: time.Now()})

	if !strings.Contains(output, "Asha") {
		t.Error("user should see author name in terminal output")
	}
}

func TestAC300_TerminalFeed_MissingAuthorIsAnonymous(t *testing.T) {
	output := NewTerminalFormatter().FormatShoutout(model.Shoutout{Message: "hi", CreatedAt: time.Now()})

	if !strings.Contains(output, model.AnonymousAuthor) {
		t.Error("user should see Anonymous when the author is missing")
	}
}

func TestAC301_TerminalFeed_ShowsRelativeTimestamps(t *testing.T) {
	formatter := NewTerminalFormatter()
	testCases := []struct {
		name      string
		timestamp time.Time
		contains  string
	}{
		{"recent minutes", time.Now().Add(-30 * time.Minute), "min"},
		{"recent hours", time.Now().Add(-3 * time.Hour), "hour"},
		{"recent days", time.Now().Add(-48 * time.Hour), "day"},
		{"missing", time.Time{}, "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output := formatter.FormatTimestamp(tc.timestamp)
			if !strings.Contains(strings.ToLower(output), tc.contains) {
				t.Errorf("user should see relative time (%s) for %s content", tc.contains, tc.name)
			}
		})
	}
}

func TestAC302_TerminalFeed_ShowsTagsReactionsAndComments(t *testing.T) {
	s := model.Shoutout{
		AuthorName:      "Asha",
		TaggedUserNames: []string{"Ben", "Cy"},
		Reactions:       map[string]int{"🎉": 3, "👏": 1, "🤔": 0},
		CommentsCount:   2,
		CreatedAt:       time.Now(),
	}

	output := NewTerminalFormatter().FormatShoutout(s)

	for _, want := range []string{"@Ben", "@Cy", "🎉 3", "👏 1", "2 comments"} {
		if !strings.Contains(output, want) {
			t.Errorf("user should see %q in terminal output, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "🤔") {
		t.Error("user should not see reactions with zero count")
	}
}

func TestAC302_TerminalFeed_FallsBackToTaggedIDs(t *testing.T) {
	s := model.Shoutout{TaggedUserIDs: []model.ID{"5"}, CreatedAt: time.Now()}

	output := NewTerminalFormatter().FormatShoutout(s)

	if !strings.Contains(output, "@5") {
		t.Error("user should see tagged ids when names are missing")
	}
}

func TestAC302_TerminalFeed_MarksReportedShoutouts(t *testing.T) {
	output := NewTerminalFormatter().FormatShoutout(model.Shoutout{IsReported: true, CreatedAt: time.Now()})

	if !strings.Contains(output, "[reported]") {
		t.Error("user should see that a shoutout was reported")
	}
}

func TestAC303_TerminalFeed_TruncatesLongText(t *testing.T) {
	formatter := NewTerminalFormatter()
	longText := "This is a very long text that should be truncated because it exceeds the maximum length"

	truncated := formatter.TruncateText(longText, 20)

	if len(truncated) > 20 {
		t.Errorf("user should see truncated text (max 20 chars), got %d chars", len(truncated))
	}
	if !strings.HasSuffix(truncated, "...") {
		t.Error("user should see ellipsis indicating text was truncated")
	}
}

func TestAC303_TerminalFeed_TruncatesOnRuneBoundaries(t *testing.T) {
	truncated := NewTerminalFormatter().TruncateText("🎉🎉🎉🎉🎉🎉", 5)

	if truncated != "🎉🎉..." {
		t.Errorf("user should never see a split emoji, got %q", truncated)
	}
}

func TestAC303_TerminalFeed_PreservesShortText(t *testing.T) {
	output := NewTerminalFormatter().TruncateText("Short", 20)

	if output != "Short" {
		t.Errorf("user should see full text when under limit, got: %s", output)
	}
}

func TestAC304_TerminalFeed_ShowsMultipleItems(t *testing.T) {
	items := []model.Shoutout{
		{ID: "1", Message: "First shoutout", AuthorName: "Author A", CreatedAt: time.Now()},
		{ID: "2", Message: "Second shoutout", AuthorName: "Author B", CreatedAt: time.Now()},
	}

	output := NewTerminalFormatter().FormatFeed(items)

	if !strings.Contains(output, "First shoutout") {
		t.Error("user should see first shoutout in feed")
	}
	if !strings.Contains(output, "Second shoutout") {
		t.Error("user should see second shoutout in feed")
	}
}

func TestAC305_TerminalFeed_ShowsEmptyFeedMessage(t *testing.T) {
	output := NewTerminalFormatter().FormatFeed(nil)

	if !strings.Contains(strings.ToLower(output), "no") {
		t.Error("user should see message indicating no content available")
	}
}

func TestAC306_Comments_ShowsThread(t *testing.T) {
	comments := []model.Comment{
		{AuthorName: "Ben", Content: "Well deserved", CreatedAt: time.Now()},
		{Content: "+1", CreatedAt: time.Now()},
	}

	output := NewTerminalFormatter().FormatComments(comments)

	if !strings.Contains(output, "Ben") || !strings.Contains(output, "Well deserved") {
		t.Error("user should see comment author and content")
	}
	if !strings.Contains(output, model.AnonymousAuthor) {
		t.Error("user should see Anonymous for comments without author")
	}
	if !strings.Contains(NewTerminalFormatter().FormatComments(nil), "No comments") {
		t.Error("user should see an empty-thread message")
	}
}

func TestAC307_Insights_ShowsAggregates(t *testing.T) {
	summary := insights.Summary{
		TotalShoutouts:  4,
		TopContributors: []model.Contributor{{AuthorName: "Asha", Count: 3}, {AuthorName: "Ben", Count: 1}},
		MostTagged:      &model.TagCount{Name: "Cy", Count: 2},
		DailyActivity:   []model.EngagementPoint{{Date: "2025-03-01", Count: 1}, {Date: "2025-03-03", Count: 3}},
	}

	output := NewTerminalFormatter().FormatInsights(summary)

	for _, want := range []string{"Total shoutouts: 4", "1. Asha", "3 shoutouts", "2. Ben", "1 shoutout", "Cy (2 tags)", "2025-03-01", "2025-03-03"} {
		if !strings.Contains(output, want) {
			t.Errorf("user should see %q in insights, got:\n%s", want, output)
		}
	}
}

func TestAC307_Insights_EmptySummary(t *testing.T) {
	output := NewTerminalFormatter().FormatInsights(insights.Summary{})

	for _, want := range []string{"none yet", "nobody yet", "no activity"} {
		if !strings.Contains(output, want) {
			t.Errorf("user should see %q for an empty feed, got:\n%s", want, output)
		}
	}
}

func TestAC308_Notifications_ShowsBadgeWhenUnread(t *testing.T) {
	items := []model.Notification{{ID: "1", Message: "Town hall at 4pm", CreatedAt: time.Now()}}
	formatter := NewTerminalFormatter()

	unread := formatter.FormatNotifications(items, notify.Unread)
	quiet := formatter.FormatNotifications(items, notify.Quiescent)

	if !strings.Contains(unread, "🔔") {
		t.Error("user should see the bell when notifications are unread")
	}
	if strings.Contains(quiet, "🔔") {
		t.Error("user should not see the bell once acknowledged")
	}
	if !strings.Contains(quiet, "Town hall at 4pm") {
		t.Error("user should see notification messages")
	}
}

func TestAC309_Employees_ShowsIDsForTagging(t *testing.T) {
	output := NewTerminalFormatter().FormatEmployees([]model.Employee{{ID: "5", Name: "Ben", Department: "Ops"}, {ID: "6", Username: "cy"}})

	for _, want := range []string{"5 • Ben • Ops", "6 • cy"} {
		if !strings.Contains(output, want) {
			t.Errorf("user should see %q, got:\n%s", want, output)
		}
	}
}

func TestAC310_Dashboard_NotesLocalAndMissingSections(t *testing.T) {
	d := &dashboard.Dashboard{
		Me:              &model.Employee{Name: "Asha"},
		Metrics:         &model.Metrics{ShoutoutsGiven: 2, ShoutoutsReceived: 5},
		EmployeeOfMonth: &model.EmployeeOfMonth{Name: "Ben", MonthYear: "2025-03"},
		Feed: []model.Shoutout{
			{ID: "2", Message: "newest", CreatedAt: time.Now()},
			{ID: "1", Message: "older", CreatedAt: time.Now()},
		},
		Local:  map[dashboard.Section]bool{dashboard.SectionLeaderboard: true},
		Errors: map[dashboard.Section]error{dashboard.SectionNotifications: errors.New("down")},
	}

	output := NewTerminalFormatter().FormatDashboard(d, 1)

	for _, want := range []string{"Welcome, Asha!", "Received: 5", "Employee of the month: Ben", "newest", "computed locally: leaderboard", "unavailable: notifications"} {
		if !strings.Contains(output, want) {
			t.Errorf("user should see %q on the dashboard, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "older") {
		t.Error("user should see at most the requested number of shoutouts")
	}
}
