package feed

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

// fakeRemote is an in-memory server. Its feed is what FetchFeed returns;
// tests adjust it to simulate other users and eventual consistency.
type fakeRemote struct {
	mu sync.Mutex

	feed     []model.Shoutout
	comments map[model.ID][]model.Comment
	mine     []model.Shoutout

	// hideCreated keeps created shoutouts out of the fetched feed.
	hideCreated bool
	nextID      int

	feedErr, createErr, editErr, deleteErr, reactErr, reportErr error
	commentsErr, commentErr, mineErr, mineAltErr               error

	// commentsGate, when set, blocks FetchComments until closed.
	commentsGate chan struct{}

	calls    map[string]int
	edits    []string
	reacts   []string
	lastPost model.NewShoutout
}

func newFakeRemote(feed ...model.Shoutout) *fakeRemote {
	return &fakeRemote{
		feed:     feed,
		comments: make(map[model.ID][]model.Comment),
		nextID:   100,
		calls:    make(map[string]int),
	}
}

func (f *fakeRemote) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRemote) record(name string) {
	f.calls[name]++
}

func (f *fakeRemote) FetchFeed(_ context.Context) ([]model.Shoutout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("feed")
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	return cloneAll(f.feed), nil
}

func (f *fakeRemote) CreateShoutout(_ context.Context, post model.NewShoutout) (model.Shoutout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create")
	f.lastPost = post
	if f.createErr != nil {
		return model.Shoutout{}, f.createErr
	}
	f.nextID++
	created := model.Shoutout{
		ID:            model.ID(strconv.Itoa(f.nextID)),
		AuthorName:    "Asha",
		Message:       post.Message,
		TaggedUserIDs: post.TaggedUserIDs,
		CreatedAt:     time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC),
		Reactions:     map[string]int{},
	}
	if !f.hideCreated {
		f.feed = append([]model.Shoutout{created}, f.feed...)
	}
	return created, nil
}

func (f *fakeRemote) EditShoutout(_ context.Context, id model.ID, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("edit")
	f.edits = append(f.edits, message)
	if f.editErr != nil {
		return f.editErr
	}
	for i := range f.feed {
		if f.feed[i].ID == id {
			f.feed[i].Message = message
			return nil
		}
	}
	return apperr.New(apperr.ErrNotFound, "edit shoutout", "not found")
}

func (f *fakeRemote) DeleteShoutout(_ context.Context, id model.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.feed = without(f.feed, id)
	return nil
}

func (f *fakeRemote) React(_ context.Context, id model.ID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("react")
	f.reacts = append(f.reacts, emoji)
	if f.reactErr != nil {
		return f.reactErr
	}
	for i := range f.feed {
		if f.feed[i].ID == id {
			if f.feed[i].Reactions == nil {
				f.feed[i].Reactions = map[string]int{}
			}
			f.feed[i].Reactions[emoji]++
		}
	}
	return nil
}

func (f *fakeRemote) ReportShoutout(_ context.Context, id model.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("report")
	return f.reportErr
}

func (f *fakeRemote) FetchComments(_ context.Context, id model.ID) ([]model.Comment, error) {
	f.mu.Lock()
	f.record("comments")
	gate := f.commentsGate
	err := f.commentsErr
	comments := append([]model.Comment(nil), f.comments[id]...)
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (f *fakeRemote) CreateComment(_ context.Context, id model.ID, content string) (model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("comment")
	if f.commentErr != nil {
		return model.Comment{}, f.commentErr
	}
	f.nextID++
	c := model.Comment{ID: model.ID(strconv.Itoa(f.nextID)), ShoutoutID: id, AuthorName: "Asha", Content: content}
	f.comments[id] = append(f.comments[id], c)
	for i := range f.feed {
		if f.feed[i].ID == id {
			f.feed[i].CommentsCount = len(f.comments[id])
		}
	}
	return c, nil
}

func (f *fakeRemote) FetchMyShoutouts(_ context.Context) ([]model.Shoutout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("mine")
	if f.mineErr != nil {
		return nil, f.mineErr
	}
	return cloneAll(f.mine), nil
}

func (f *fakeRemote) FetchMyShoutoutsAlt(_ context.Context) ([]model.Shoutout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("mine-alt")
	if f.mineAltErr != nil {
		return nil, f.mineAltErr
	}
	return cloneAll(f.mine), nil
}

func shout(id, author, message string) model.Shoutout {
	return model.Shoutout{ID: model.ID(id), AuthorName: author, Message: message, Reactions: map[string]int{}}
}

func ids(list []model.Shoutout) []model.ID {
	out := make([]model.ID, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID)
	}
	return out
}
