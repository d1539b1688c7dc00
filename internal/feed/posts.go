package feed

import (
	"context"
	"errors"
	"strings"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

// EditPost replaces the message of one of the caller's posts and reloads
// "my posts". changed is false when the trimmed text equals the current
// message, in which case nothing is sent.
func (s *Store) EditPost(ctx context.Context, id model.ID, newMessage string) (changed bool, err error) {
	const op = "edit post"
	text := strings.TrimSpace(newMessage)
	if text == "" {
		return false, apperr.Validation(op, "message cannot be empty")
	}

	s.mu.Lock()
	current, known := s.find(id)
	s.mu.Unlock()
	if !known {
		// The feed is capped, so older posts are only reachable through "my posts".
		s.LoadMyPosts(ctx)
		s.mu.Lock()
		current, known = s.find(id)
		s.mu.Unlock()
	}
	if known && strings.TrimSpace(current.Message) == text {
		return false, nil
	}

	if err := s.remote.EditShoutout(ctx, id, text); err != nil {
		return false, apperr.Wrap(op, err)
	}

	s.mu.Lock()
	s.update(id, func(item *model.Shoutout) { item.Message = text })
	s.mu.Unlock()

	s.LoadMyPosts(ctx)
	return true, nil
}

// DeletePost removes a post once the server has acknowledged the delete.
// The caller must have confirmed the action.
func (s *Store) DeletePost(ctx context.Context, id model.ID, confirmed bool) error {
	const op = "delete post"
	if !confirmed {
		return apperr.Validation(op, "deleting a shoutout needs confirmation")
	}

	if err := s.remote.DeleteShoutout(ctx, id); err != nil {
		return apperr.Wrap(op, err)
	}

	s.mu.Lock()
	s.forget(id)
	s.mu.Unlock()
	return nil
}

// React adds an emoji reaction and re-reads the feed for the new counts.
func (s *Store) React(ctx context.Context, id model.ID, emoji string) error {
	const op = "react"
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return apperr.Validation(op, "pick an emoji")
	}

	if err := s.remote.React(ctx, id, emoji); err != nil {
		return apperr.Wrap(op, err)
	}

	s.refreshAfterWrite(ctx, op)
	return nil
}

// ReportPost flags a post for moderation. The caller must have confirmed the
// action. A post the server says is already reported fails with
// apperr.ErrConflict and stays marked as reported locally.
func (s *Store) ReportPost(ctx context.Context, id model.ID, confirmed bool) error {
	const op = "report post"
	if !confirmed {
		return apperr.Validation(op, "reporting a shoutout needs confirmation")
	}

	err := s.remote.ReportShoutout(ctx, id)
	if err != nil && !errors.Is(err, apperr.ErrConflict) {
		return apperr.Wrap(op, err)
	}

	s.mu.Lock()
	s.reported[id] = true
	s.update(id, func(item *model.Shoutout) { item.IsReported = true })
	s.mu.Unlock()

	if err != nil {
		return apperr.Wrap(op, err)
	}
	s.refreshAfterWrite(ctx, op)
	return nil
}
