package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeedOnlyOwnAndFollowedPosts(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	posts := NewPostService(db)
	follows := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")
	carol := mustRegister(t, accounts, "carol")

	_, err := posts.CreatePost(bob.ID, "from bob", "")
	require.NoError(t, err)
	_, err = posts.CreatePost(carol.ID, "from carol", "")
	require.NoError(t, err)

	require.NoError(t, follows.Follow(alice.ID, bob.ID))

	feed, err := posts.BuildFeed(alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "from bob", feed[0].Body)
	assert.Equal(t, "bob", feed[0].User.Username)
}

func TestBuildFeedIncludesViewerWithoutSelfFollow(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	posts := NewPostService(db)

	alice := mustRegister(t, accounts, "alice")

	_, err := posts.CreatePost(alice.ID, "my own post", "")
	require.NoError(t, err)

	feed, err := posts.BuildFeed(alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "my own post", feed[0].Body)
}

func TestBuildFeedNewestFirstAcrossAuthors(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	posts := NewPostService(db)
	follows := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")

	require.NoError(t, follows.Follow(alice.ID, bob.ID))

	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	insertPostAt(t, db, alice.ID, "mine early", base)
	insertPostAt(t, db, bob.ID, "theirs late", base.Add(2*time.Hour))
	insertPostAt(t, db, alice.ID, "mine middle", base.Add(time.Hour))

	feed, err := posts.BuildFeed(alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "theirs late", feed[0].Body)
	assert.Equal(t, "mine middle", feed[1].Body)
	assert.Equal(t, "mine early", feed[2].Body)

	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].CreatedAt.After(feed[i-1].CreatedAt),
			"feed timestamps must be non-increasing")
	}
}

func TestBuildFeedBreaksTimestampTiesByID(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	posts := NewPostService(db)

	alice := mustRegister(t, accounts, "alice")

	at := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	first := insertPostAt(t, db, alice.ID, "earlier id", at)
	second := insertPostAt(t, db, alice.ID, "later id", at)

	feed, err := posts.BuildFeed(alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, second.ID, feed[0].ID)
	assert.Equal(t, first.ID, feed[1].ID)
}

func TestBuildFeedCapped(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	posts := NewPostService(db)
	follows := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")
	require.NoError(t, follows.Follow(alice.ID, bob.ID))

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < feedLimit+10; i++ {
		insertPostAt(t, db, bob.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	feed, err := posts.BuildFeed(alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, feedLimit)

	// The window keeps the newest posts; the oldest ten fall off.
	assert.Equal(t, fmt.Sprintf("post %d", feedLimit+9), feed[0].Body)
	assert.Equal(t, fmt.Sprintf("post %d", 10), feed[len(feed)-1].Body)
}

func TestBuildFeedEmptyForNewAccount(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	posts := NewPostService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")

	_, err := posts.CreatePost(bob.ID, "unfollowed", "")
	require.NoError(t, err)

	feed, err := posts.BuildFeed(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestBuildFeedReflectsUnfollow(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	posts := NewPostService(db)
	follows := NewFollowService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")

	_, err := posts.CreatePost(bob.ID, "from bob", "")
	require.NoError(t, err)

	require.NoError(t, follows.Follow(alice.ID, bob.ID))
	feed, err := posts.BuildFeed(alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	require.NoError(t, follows.Unfollow(alice.ID, bob.ID))
	feed, err = posts.BuildFeed(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestBuildFeedCarriesCounts(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	posts := NewPostService(db)
	interactions := NewInteractionService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")

	post, err := posts.CreatePost(alice.ID, "counted", "")
	require.NoError(t, err)
	_, _, err = interactions.ToggleLike(bob.ID, post.ID)
	require.NoError(t, err)
	_, err = interactions.AddComment(bob.ID, post.ID, "nice")
	require.NoError(t, err)

	feed, err := posts.BuildFeed(alice.ID)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, int64(1), feed[0].LikeCount)
	assert.Equal(t, int64(1), feed[0].CommentCount)
}
