package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazos-social/lazos/models"
)

func TestFollowUnfollowMembership(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	svc := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))
	following, err := svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// Direction matters.
	reverse, err := svc.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))
	following, err = svc.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	svc := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))
	require.NoError(t, svc.Follow(alice.ID, bob.ID))

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	assert.Equal(t, int64(1), count, "following twice must leave a single edge")

	// Unfollowing an absent edge is a no-op as well.
	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))
	require.NoError(t, svc.Unfollow(alice.ID, bob.ID))
	db.Model(&models.Follow{}).Count(&count)
	assert.Zero(t, count)
}

func TestFollowerAndFollowingCounts(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	svc := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")
	carol := mustRegister(t, accounts, "carol")

	require.NoError(t, svc.Follow(alice.ID, bob.ID))
	require.NoError(t, svc.Follow(carol.ID, bob.ID))
	require.NoError(t, svc.Follow(bob.ID, alice.ID))

	followers, err := svc.FollowerCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := svc.FollowingCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)
}

func TestToggleFollow(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	svc := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")

	action, followers, err := svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionFollowed, action)
	assert.Equal(t, int64(1), followers)

	action, followers, err = svc.ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionUnfollowed, action)
	assert.Zero(t, followers)
}

func TestToggleFollowRejectsSelfFollow(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	svc := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")

	_, _, err := svc.ToggleFollow(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)

	var count int64
	db.Model(&models.Follow{}).Count(&count)
	assert.Zero(t, count)
}

func TestToggleFollowMissingTarget(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	svc := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")

	_, _, err := svc.ToggleFollow(alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
