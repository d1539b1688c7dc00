// Package feed owns the local view of the shoutout feed and keeps it in
// step with the server.
//
// Writes are never applied optimistically. Every mutation waits for the
// server's acknowledgment and, where other users may be changing the same
// values (reaction counts, comment counts, moderation status), re-reads the
// feed right after the write resolves.
package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/insights"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

// Option configures a Store.
type Option func(*Store)

// WithIdentity sets the caller's identity, used by the local "my posts" filter.
func WithIdentity(id model.Identity) Option {
	return func(s *Store) {
		s.identity = id
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the authoritative local copy of the feed. It is safe for
// concurrent use; remote calls run outside the lock.
type Store struct {
	remote   Remote
	logger   *zap.Logger
	comments singleflight.Group

	mu        sync.Mutex
	identity  model.Identity
	shoutouts []model.Shoutout // newest first
	myPosts   []model.Shoutout

	// Created locally and not yet seen in a fetched feed, newest first.
	pending []model.Shoutout
	// Fetches that came back without a pending id.
	misses map[model.ID]int
	// Reported ids stay reported whatever a later fetch says.
	reported map[model.ID]bool

	commentsByID map[model.ID][]model.Comment
	loaded       map[model.ID]bool
	open         map[model.ID]bool

	draft Draft

	issued  uint64 // last feed fetch sequence handed out
	applied uint64 // last feed fetch sequence applied
}

// NewStore creates an empty store backed by remote.
func NewStore(remote Remote, opts ...Option) *Store {
	s := &Store{
		remote:       remote,
		logger:       zap.NewNop(),
		reported:     make(map[model.ID]bool),
		misses:       make(map[model.ID]int),
		commentsByID: make(map[model.ID][]model.Comment),
		loaded:       make(map[model.ID]bool),
		open:         make(map[model.ID]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetIdentity replaces the caller's identity.
func (s *Store) SetIdentity(id model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
}

// Refresh fetches the feed and applies it. A response that arrives after a
// newer one has been applied is discarded.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	items, err := s.remote.FetchFeed(ctx)
	if err != nil {
		return apperr.Wrap("refresh feed", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		s.logger.Debug("discarding stale feed response", zap.Uint64("seq", seq), zap.Uint64("applied", s.applied))
		return nil
	}
	s.applied = seq
	s.shoutouts = s.merge(items)
	return nil
}

// refreshAfterWrite resynchronizes after an acknowledged write. The write
// already succeeded, so a failing refetch is only logged.
func (s *Store) refreshAfterWrite(ctx context.Context, op string) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("feed refresh after write failed", zap.String("op", op), zap.Error(err))
	}
}

// maxPendingMisses is how many fetches may omit a created post before it is
// assumed gone from the server.
const maxPendingMisses = 3

// merge builds the new feed from a fetched page. Caller holds s.mu.
func (s *Store) merge(fetched []model.Shoutout) []model.Shoutout {
	seen := make(map[model.ID]bool, len(fetched))
	out := make([]model.Shoutout, 0, len(fetched)+len(s.pending))

	visible := make(map[model.ID]bool, len(fetched))
	var newest time.Time
	for _, item := range fetched {
		if !item.ID.IsZero() {
			visible[item.ID] = true
		}
		if item.CreatedAt.After(newest) {
			newest = item.CreatedAt
		}
	}

	stillPending := s.pending[:0]
	for _, p := range s.pending {
		if visible[p.ID] {
			delete(s.misses, p.ID)
			continue
		}
		s.misses[p.ID]++
		// A page holding a newer post has caught up past p, so p was removed.
		if s.misses[p.ID] >= maxPendingMisses || (!p.CreatedAt.IsZero() && newest.After(p.CreatedAt)) {
			s.logger.Debug("dropping created shoutout missing from the feed", zap.String("id", p.ID.String()))
			delete(s.misses, p.ID)
			continue
		}
		stillPending = append(stillPending, p)
		seen[p.ID] = true
		out = append(out, s.reconcile(p.Clone()))
	}
	s.pending = stillPending

	for _, item := range fetched {
		if !item.ID.IsZero() {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
		}
		out = append(out, s.reconcile(item.Clone()))
	}
	return out
}

// reconcile applies local facts the server copy must not undo. Caller holds s.mu.
func (s *Store) reconcile(item model.Shoutout) model.Shoutout {
	if s.reported[item.ID] {
		item.IsReported = true
	} else if item.IsReported {
		s.reported[item.ID] = true
	}
	if n := len(s.commentsByID[item.ID]); item.CommentsCount < n {
		item.CommentsCount = n
	}
	return item
}

// update applies fn to every local copy of id. Caller holds s.mu.
func (s *Store) update(id model.ID, fn func(*model.Shoutout)) {
	for _, list := range [][]model.Shoutout{s.shoutouts, s.myPosts, s.pending} {
		for i := range list {
			if list[i].ID == id {
				fn(&list[i])
			}
		}
	}
}

// find returns the local copy of id from the feed or my posts. Caller holds s.mu.
func (s *Store) find(id model.ID) (model.Shoutout, bool) {
	for _, list := range [][]model.Shoutout{s.shoutouts, s.myPosts} {
		for _, item := range list {
			if item.ID == id {
				return item, true
			}
		}
	}
	return model.Shoutout{}, false
}

// forget removes every trace of id from local state. Caller holds s.mu.
func (s *Store) forget(id model.ID) {
	s.shoutouts = without(s.shoutouts, id)
	s.myPosts = without(s.myPosts, id)
	s.pending = without(s.pending, id)
	delete(s.misses, id)
	delete(s.commentsByID, id)
	delete(s.loaded, id)
	delete(s.open, id)
	delete(s.reported, id)
}

func without(list []model.Shoutout, id model.ID) []model.Shoutout {
	out := list[:0]
	for _, item := range list {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func cloneAll(list []model.Shoutout) []model.Shoutout {
	out := make([]model.Shoutout, 0, len(list))
	for _, item := range list {
		out = append(out, item.Clone())
	}
	return out
}

// Shoutouts returns a copy of the feed, newest first.
func (s *Store) Shoutouts() []model.Shoutout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.shoutouts)
}

// Shoutout returns a copy of one feed or my-posts entry.
func (s *Store) Shoutout(id model.ID) (model.Shoutout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.find(id)
	if !ok {
		return model.Shoutout{}, false
	}
	return item.Clone(), true
}

// MyPosts returns the last loaded "my posts" view.
func (s *Store) MyPosts() []model.Shoutout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.myPosts)
}

// Insights recomputes the aggregates from the current feed.
func (s *Store) Insights(opts insights.Options) insights.Summary {
	return insights.Summarize(s.Shoutouts(), opts)
}
