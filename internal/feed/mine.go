package feed

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

// Source names the lookup that answered a "my posts" request.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceAlternate Source = "alternate"
	SourceLocal     Source = "local"
)

// lookup is one way of finding the caller's posts.
type lookup struct {
	source Source
	find   func(ctx context.Context) ([]model.Shoutout, error)
}

// lookups returns the chain tried by LoadMyPosts, most accurate first.
// The local filter never fails.
func (s *Store) lookups() []lookup {
	return []lookup{
		{SourcePrimary, s.remote.FetchMyShoutouts},
		{SourceAlternate, s.remote.FetchMyShoutoutsAlt},
		{SourceLocal, func(context.Context) ([]model.Shoutout, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			return OwnedBy(s.shoutouts, s.identity), nil
		}},
	}
}

// LoadMyPosts refreshes the "my posts" view and reports which lookup
// answered. Remote failures fall through to the next lookup; matching the
// loaded feed against the caller's identity is the last resort.
func (s *Store) LoadMyPosts(ctx context.Context) ([]model.Shoutout, Source) {
	for _, l := range s.lookups() {
		posts, err := l.find(ctx)
		if err != nil {
			s.logger.Info("my posts lookup failed", zap.String("source", string(l.source)), zap.Error(err))
			continue
		}

		s.mu.Lock()
		s.myPosts = make([]model.Shoutout, 0, len(posts))
		for _, p := range posts {
			if s.reported[p.ID] {
				p.IsReported = true
			}
			s.myPosts = append(s.myPosts, p.Clone())
		}
		out := cloneAll(s.myPosts)
		s.mu.Unlock()
		return out, l.source
	}
	return []model.Shoutout{}, SourceLocal
}

// OwnedBy filters shoutouts authored by who: exact author id, then the same
// id compared as a normalized string, then the author name.
func OwnedBy(shoutouts []model.Shoutout, who model.Identity) []model.Shoutout {
	out := []model.Shoutout{}
	if !who.Known() {
		return out
	}
	name := strings.TrimSpace(who.Name)
	for _, s := range shoutouts {
		switch {
		case !who.ID.IsZero() && s.AuthorID == who.ID:
		case !who.ID.IsZero() && s.AuthorID.Coerced(who.ID):
		case name != "" && strings.TrimSpace(s.AuthorName) == name:
		default:
			continue
		}
		out = append(out, s.Clone())
	}
	return out
}
