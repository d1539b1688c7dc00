package insights

import (
	"strings"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

// Filter returns the shoutouts matching opts, in input order.
// Records without a timestamp are dropped only when a date bound is set.
func Filter(shoutouts []model.Shoutout, opts FeedOptions) []model.Shoutout {
	out := make([]model.Shoutout, 0, len(shoutouts))
	for _, s := range shoutouts {
		if !inRange(s, opts) || !byAuthor(s, opts.Authors) {
			continue
		}
		out = append(out, s)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}

func inRange(s model.Shoutout, opts FeedOptions) bool {
	if opts.Since.IsZero() && opts.Until.IsZero() {
		return true
	}
	if s.CreatedAt.IsZero() {
		return false
	}
	if !opts.Since.IsZero() && s.CreatedAt.Before(opts.Since) {
		return false
	}
	if !opts.Until.IsZero() && s.CreatedAt.After(opts.Until) {
		return false
	}
	return true
}

func byAuthor(s model.Shoutout, authors []string) bool {
	if len(authors) == 0 {
		return true
	}
	label := s.AuthorLabel()
	for _, a := range authors {
		if strings.EqualFold(strings.TrimSpace(a), label) {
			return true
		}
	}
	return false
}
