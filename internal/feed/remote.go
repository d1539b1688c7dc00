package feed

import (
	"context"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

// Remote is the slice of the Bragboard API the store drives.
// *bragboard.Client implements it.
type Remote interface {
	FetchFeed(ctx context.Context) ([]model.Shoutout, error)
	CreateShoutout(ctx context.Context, post model.NewShoutout) (model.Shoutout, error)
	EditShoutout(ctx context.Context, id model.ID, message string) error
	DeleteShoutout(ctx context.Context, id model.ID) error
	React(ctx context.Context, id model.ID, emoji string) error
	ReportShoutout(ctx context.Context, id model.ID) error
	FetchComments(ctx context.Context, id model.ID) ([]model.Comment, error)
	CreateComment(ctx context.Context, id model.ID, content string) (model.Comment, error)
	FetchMyShoutouts(ctx context.Context) ([]model.Shoutout, error)
	FetchMyShoutoutsAlt(ctx context.Context) ([]model.Shoutout, error)
}
