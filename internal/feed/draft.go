package feed

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

// Draft is the shoutout being composed.
type Draft struct {
	Message string
	Tags    []model.ID // insertion order, no duplicates
	Image   *model.Image
}

func (d Draft) clone() Draft {
	c := Draft{Message: d.Message, Tags: append([]model.ID(nil), d.Tags...)}
	if d.Image != nil {
		img := *d.Image
		img.Data = append([]byte(nil), d.Image.Data...)
		c.Image = &img
	}
	return c
}

// Draft returns a copy of the current draft.
func (s *Store) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.clone()
}

// SetDraftMessage replaces the draft text.
func (s *Store) SetDraftMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Message = message
}

// ToggleDraftTag adds id to the draft's tags, or removes it when already
// present. It reports whether id is tagged afterwards.
func (s *Store) ToggleDraftTag(id model.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tag := range s.draft.Tags {
		if tag == id {
			s.draft.Tags = append(s.draft.Tags[:i:i], s.draft.Tags[i+1:]...)
			return false
		}
	}
	s.draft.Tags = append(s.draft.Tags, id)
	return true
}

// SetDraftImage attaches img to the draft; nil clears it.
func (s *Store) SetDraftImage(img *model.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Image = img
}

// SubmitDraft posts the current draft.
func (s *Store) SubmitDraft(ctx context.Context) (model.Shoutout, error) {
	d := s.Draft()
	return s.CreatePost(ctx, d.Message, d.Tags, d.Image)
}

// CreatePost publishes a shoutout. The draft is cleared once the message
// passes validation, whether or not the server accepts the post. The created
// shoutout appears exactly once at the top of the feed, even before the
// server starts returning it.
func (s *Store) CreatePost(ctx context.Context, message string, taggedIDs []model.ID, image *model.Image) (model.Shoutout, error) {
	const op = "create post"
	text := strings.TrimSpace(message)
	if text == "" {
		return model.Shoutout{}, apperr.Validation(op, "message cannot be empty")
	}

	s.mu.Lock()
	s.draft = Draft{}
	identity := s.identity
	s.mu.Unlock()

	created, err := s.remote.CreateShoutout(ctx, model.NewShoutout{
		Message:       text,
		TaggedUserIDs: model.UniqueIDs(taggedIDs),
		Image:         image,
	})
	if err != nil {
		return model.Shoutout{}, apperr.Wrap(op, err)
	}

	if created.Message == "" {
		created.Message = text
	}
	if strings.TrimSpace(created.AuthorName) == "" {
		created.AuthorName = identity.Name
	}
	if created.AuthorID.IsZero() {
		created.AuthorID = identity.ID
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	if created.Reactions == nil {
		created.Reactions = map[string]int{}
	}

	if !created.ID.IsZero() {
		s.mu.Lock()
		s.pending = append([]model.Shoutout{created.Clone()}, without(s.pending, created.ID)...)
		s.shoutouts = append([]model.Shoutout{created.Clone()}, without(s.shoutouts, created.ID)...)
		s.mu.Unlock()
	} else {
		s.logger.Warn("created shoutout has no id, relying on refresh", zap.String("op", op))
	}

	s.refreshAfterWrite(ctx, op)
	return created.Clone(), nil
}
