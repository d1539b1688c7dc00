package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

func TestLoadMyPosts_UsesPrimaryEndpoint(t *testing.T) {
	remote := newFakeRemote()
	remote.mine = []model.Shoutout{shout("7", "Asha", "mine")}
	store := NewStore(remote)

	posts, source := store.LoadMyPosts(context.Background())

	assert.Equal(t, SourcePrimary, source)
	assert.Equal(t, []model.ID{"7"}, ids(posts))
	assert.Zero(t, remote.count("mine-alt"))
}

func TestLoadMyPosts_FallsBackToAlternateEndpoint(t *testing.T) {
	remote := newFakeRemote()
	remote.mine = []model.Shoutout{shout("7", "Asha", "mine")}
	remote.mineErr = apperr.New(apperr.ErrNotFound, "fetch my shoutouts", "no such route")
	store := NewStore(remote)

	posts, source := store.LoadMyPosts(context.Background())

	assert.Equal(t, SourceAlternate, source)
	assert.Equal(t, []model.ID{"7"}, ids(posts))
}

func TestLoadMyPosts_FallsBackToLocalFilter(t *testing.T) {
	byID := shout("1", "Someone", "by id")
	byID.AuthorID = "42"
	byCoercedID := shout("2", "", "by coerced id")
	byCoercedID.AuthorID = "042"
	byName := shout("3", "Asha", "by name")
	other := shout("4", "Ben", "not mine")
	other.AuthorID = "9"

	remote := newFakeRemote(byID, byCoercedID, byName, other)
	remote.mineErr = apperr.New(apperr.ErrNetwork, "fetch my shoutouts", "down")
	remote.mineAltErr = apperr.New(apperr.ErrNetwork, "fetch my shoutouts", "down")
	store := loadedStore(t, remote, WithIdentity(model.Identity{ID: "42", Name: "Asha"}))

	posts, source := store.LoadMyPosts(context.Background())

	assert.Equal(t, SourceLocal, source)
	assert.Equal(t, []model.ID{"1", "2", "3"}, ids(posts))
	assert.Equal(t, []model.ID{"1", "2", "3"}, ids(store.MyPosts()))
}

func TestLoadMyPosts_UnknownIdentityFindsNothing(t *testing.T) {
	remote := newFakeRemote(shout("1", "Asha", "hi"))
	remote.mineErr = apperr.New(apperr.ErrNetwork, "fetch my shoutouts", "down")
	remote.mineAltErr = remote.mineErr
	store := loadedStore(t, remote)

	posts, source := store.LoadMyPosts(context.Background())

	assert.Equal(t, SourceLocal, source)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestOwnedBy_IgnoresBlankAuthors(t *testing.T) {
	posts := OwnedBy([]model.Shoutout{shout("1", "", "anon")}, model.Identity{ID: "5"})

	assert.Empty(t, posts)
}

// orderedRemote returns its queued feeds one per call and lets the test
// decide when each call returns.
type orderedRemote struct {
	*fakeRemote
	responses chan []model.Shoutout
	started   chan struct{}
	release   []chan struct{}
	calls     int
}

func (o *orderedRemote) FetchFeed(ctx context.Context) ([]model.Shoutout, error) {
	o.mu.Lock()
	i := o.calls
	o.calls++
	o.mu.Unlock()

	o.started <- struct{}{}
	<-o.release[i]
	return <-o.responses, nil
}

func TestRefresh_DiscardsStaleResponse(t *testing.T) {
	remote := &orderedRemote{
		fakeRemote: newFakeRemote(),
		responses:  make(chan []model.Shoutout, 2),
		started:    make(chan struct{}, 2),
		release:    []chan struct{}{make(chan struct{}), make(chan struct{})},
	}
	store := NewStore(remote)
	ctx := context.Background()

	older := make(chan error, 1)
	go func() { older <- store.Refresh(ctx) }()
	<-remote.started

	newer := make(chan error, 1)
	go func() { newer <- store.Refresh(ctx) }()
	<-remote.started

	// The newer request answers first.
	remote.responses <- []model.Shoutout{shout("2", "Asha", "new"), shout("1", "Ben", "old")}
	close(remote.release[1])
	require.NoError(t, <-newer)

	remote.responses <- []model.Shoutout{shout("1", "Ben", "old")}
	close(remote.release[0])
	require.NoError(t, <-older)

	assert.Equal(t, []model.ID{"2", "1"}, ids(store.Shoutouts()))
}
