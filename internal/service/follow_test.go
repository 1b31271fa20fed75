package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSelfFollowIsIdempotent(t *testing.T) {
	f := newFixture(t)
	u := f.insertUser(t, "a")
	assert.Empty(t, f.edges(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, f.graph.EnsureSelfFollow(context.Background(), u.ID))
	}
	assert.Equal(t, [][2]uint{{u.ID, u.ID}}, f.edges(t))
}

func TestFollowThenUnfollowRestoresEdges(t *testing.T) {
	f := newFixture(t)
	a := f.register(t, "a")
	f.register(t, "b")

	before := f.edges(t)

	target, err := f.graph.Follow(as(a), "b")
	require.NoError(t, err)
	assert.Equal(t, "b", target.Username)
	assert.Len(t, f.edges(t), len(before)+1)

	_, err = f.graph.Unfollow(as(a), "b")
	require.NoError(t, err)
	assert.Equal(t, before, f.edges(t))
}

func TestFollowErrors(t *testing.T) {
	f := newFixture(t)
	a := f.register(t, "a")
	f.register(t, "b")

	_, err := f.graph.Follow(as(a), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.graph.Follow(as(a), "b")
	require.NoError(t, err)
	_, err = f.graph.Follow(as(a), "b")
	assert.ErrorIs(t, err, ErrAlreadyFollowing)

	// The self edge exists from registration.
	_, err = f.graph.Follow(as(a), "a")
	assert.ErrorIs(t, err, ErrAlreadyFollowing)

	_, err = f.graph.Follow(context.Background(), "b")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestUnfollowErrors(t *testing.T) {
	f := newFixture(t)
	a := f.register(t, "a")
	f.register(t, "b")

	_, err := f.graph.Unfollow(as(a), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.graph.Unfollow(as(a), "b")
	assert.ErrorIs(t, err, ErrNotFollowing)

	_, err = f.graph.Unfollow(as(a), "a")
	assert.ErrorIs(t, err, ErrValidation)

	ok, err := f.graph.IsFollowing(context.Background(), a.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFollowIsDirected(t *testing.T) {
	f := newFixture(t)
	a := f.register(t, "a")
	b := f.register(t, "b")

	_, err := f.graph.Follow(as(a), "b")
	require.NoError(t, err)

	ab, err := f.graph.IsFollowing(context.Background(), a.ID, b.ID)
	require.NoError(t, err)
	ba, err := f.graph.IsFollowing(context.Background(), b.ID, a.ID)
	require.NoError(t, err)

	assert.True(t, ab)
	assert.False(t, ba)
}

func TestListFollowersAndFollowing(t *testing.T) {
	f := newFixture(t)
	a := f.register(t, "a")
	b := f.register(t, "b")
	c := f.register(t, "c")

	_, err := f.graph.Follow(as(b), "a")
	require.NoError(t, err)
	_, err = f.graph.Follow(as(c), "a")
	require.NoError(t, err)
	_, err = f.graph.Follow(as(a), "c")
	require.NoError(t, err)

	followers, err := f.graph.ListFollowers(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, usernames(followers))

	following, err := f.graph.ListFollowing(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, usernames(following))

	_, err = f.graph.ListFollowers(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.graph.ListFollowing(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	counts, err := f.graph.Counts(context.Background(), a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts.Followers)
	assert.EqualValues(t, 2, counts.Following)

	counts, err = f.graph.Counts(context.Background(), b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Followers)
	assert.EqualValues(t, 2, counts.Following)
}
