// Package display provides terminal output formatting for bragboard.
package display

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

const separator = " • "

// TerminalFormatter formats bragboard records for terminal display.
type TerminalFormatter struct {
	// now is the reference for relative timestamps.
	now func() time.Time
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{now: time.Now}
}

// FormatShoutout formats a single shoutout for display.
func (f *TerminalFormatter) FormatShoutout(s model.Shoutout) string {
	var lines []string

	// Header: #id Author • when
	header := fmt.Sprintf("#%s %s%s%s", s.ID, s.AuthorLabel(), separator, f.FormatTimestamp(s.CreatedAt))
	if s.IsReported {
		header += separator + "[reported]"
	}
	lines = append(lines, header)

	if msg := strings.TrimSpace(s.Message); msg != "" {
		for _, line := range strings.Split(msg, "\n") {
			lines = append(lines, "  "+line)
		}
	}

	if tags := f.formatTags(s); tags != "" {
		lines = append(lines, "  with "+tags)
	}

	if engagement := f.formatEngagement(s); engagement != "" {
		lines = append(lines, "  "+engagement)
	}

	if s.ImageURL != "" {
		lines = append(lines, "  image: "+s.ImageURL)
	}

	return strings.Join(lines, "\n") + "\n"
}

// formatTags renders mentions, preferring names over raw ids.
func (f *TerminalFormatter) formatTags(s model.Shoutout) string {
	var mentions []string
	for _, name := range s.TaggedUserNames {
		if name = strings.TrimSpace(name); name != "" {
			mentions = append(mentions, "@"+name)
		}
	}
	if len(mentions) == 0 {
		for _, id := range s.TaggedUserIDs {
			mentions = append(mentions, "@"+id.String())
		}
	}
	return strings.Join(mentions, ", ")
}

// formatEngagement formats reactions and comments into a single line.
func (f *TerminalFormatter) formatEngagement(s model.Shoutout) string {
	var parts []string

	emojis := make([]string, 0, len(s.Reactions))
	for emoji, n := range s.Reactions {
		if n > 0 {
			emojis = append(emojis, emoji)
		}
	}
	sort.Strings(emojis)
	for _, emoji := range emojis {
		parts = append(parts, fmt.Sprintf("%s %d", emoji, s.Reactions[emoji]))
	}

	if s.CommentsCount > 0 {
		parts = append(parts, countOf(s.CommentsCount, "comment"))
	}

	return strings.Join(parts, separator)
}

// FormatFeed formats multiple shoutouts for display.
func (f *TerminalFormatter) FormatFeed(shoutouts []model.Shoutout) string {
	if len(shoutouts) == 0 {
		return "No shoutouts to display.\n"
	}

	var formatted []string
	for _, s := range shoutouts {
		formatted = append(formatted, f.FormatShoutout(s))
	}

	return strings.Join(formatted, "\n---\n\n")
}

// FormatComments formats the comment thread of a shoutout.
func (f *TerminalFormatter) FormatComments(comments []model.Comment) string {
	if len(comments) == 0 {
		return "No comments yet.\n"
	}

	var b strings.Builder
	for _, c := range comments {
		author := strings.TrimSpace(c.AuthorName)
		if author == "" {
			author = model.AnonymousAuthor
		}
		fmt.Fprintf(&b, "%s%s%s\n  %s\n", author, separator, f.FormatTimestamp(c.CreatedAt), strings.TrimSpace(c.Content))
	}
	return b.String()
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}
	diff := f.now().Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	return countOf(n, unit) + " ago"
}

// countOf returns "1 unit" or "N units".
func countOf(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// TruncateText truncates text to maxLen runes, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
