package feed

import (
	"context"
	"strings"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

// ToggleComments flips the comment panel of a post and reports whether it
// is now open. The first open loads the comments; concurrent first opens
// share one request and later opens use the cache. When loading fails the
// panel stays open and the next open retries.
func (s *Store) ToggleComments(ctx context.Context, id model.ID) (open bool, err error) {
	s.mu.Lock()
	open = !s.open[id]
	s.open[id] = open
	loaded := s.loaded[id]
	s.mu.Unlock()

	if !open || loaded {
		return open, nil
	}
	if err := s.loadComments(ctx, id); err != nil {
		return open, err
	}
	return open, nil
}

func (s *Store) loadComments(ctx context.Context, id model.ID) error {
	const op = "load comments"
	_, err, _ := s.comments.Do(id.String(), func() (any, error) {
		s.mu.Lock()
		done := s.loaded[id]
		s.mu.Unlock()
		if done {
			return nil, nil
		}

		comments, err := s.remote.FetchComments(ctx, id)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.loaded[id] {
			s.commentsByID[id] = mergeComments(comments, s.commentsByID[id])
			s.loaded[id] = true
			s.clampCommentsCount(id)
		}
		return nil, nil
	})
	if err != nil {
		return apperr.Wrap(op, err)
	}
	return nil
}

// SubmitComment posts a comment. Whitespace-only text is ignored and returns
// (nil, nil). On success the comment is appended to the cached list and the
// feed is re-read so the comment count matches the server.
func (s *Store) SubmitComment(ctx context.Context, id model.ID, text string) (*model.Comment, error) {
	const op = "submit comment"
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	created, err := s.remote.CreateComment(ctx, id, text)
	if err != nil {
		return nil, apperr.Wrap(op, err)
	}
	if created.ShoutoutID.IsZero() {
		created.ShoutoutID = id
	}
	if created.Content == "" {
		created.Content = text
	}

	s.mu.Lock()
	s.commentsByID[id] = append(s.commentsByID[id], created)
	s.clampCommentsCount(id)
	s.mu.Unlock()

	s.refreshAfterWrite(ctx, op)
	return &created, nil
}

// mergeComments returns fetched followed by the local comments it does not
// contain, such as one submitted while the fetch was in flight.
func mergeComments(fetched, local []model.Comment) []model.Comment {
	out := append([]model.Comment(nil), fetched...)
	have := make(map[model.ID]bool, len(fetched))
	for _, c := range fetched {
		have[c.ID] = true
	}
	for _, c := range local {
		if c.ID.IsZero() || have[c.ID] {
			continue
		}
		out = append(out, c)
	}
	return out
}

// clampCommentsCount keeps a post's count at least as large as its cached
// comments. Caller holds s.mu.
func (s *Store) clampCommentsCount(id model.ID) {
	n := len(s.commentsByID[id])
	s.update(id, func(item *model.Shoutout) {
		if item.CommentsCount < n {
			item.CommentsCount = n
		}
	})
}

// Comments returns the cached comments of a post and whether they were loaded
// from the server.
func (s *Store) Comments(id model.ID) (comments []model.Comment, loaded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Comment{}, s.commentsByID[id]...), s.loaded[id]
}

// CommentsOpen reports whether the comment panel of a post is open.
func (s *Store) CommentsOpen(id model.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[id]
}
