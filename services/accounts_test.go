package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazos-social/lazos/models"
	"github.com/lazos-social/lazos/utils"
)

func TestRegisterHashesPasswordAndAppliesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	user, err := svc.Register("alice", "alice@example.com", "Alice", "secret123")
	require.NoError(t, err)

	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "secret123"))
	assert.Equal(t, models.DefaultAvatarURL, user.AvatarURL)
	assert.Empty(t, user.Bio)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	mustRegister(t, svc, "alice")

	_, err := svc.Register("alice", "other@example.com", "Other", "secret123")
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count, "failed registration must not create a row")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	mustRegister(t, svc, "alice")

	_, err := svc.Register("bob", "alice@example.com", "Bob", "secret123")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	_, err := svc.Register("alice", "not-an-email", "Alice", "secret123")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestAuthenticateDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	mustRegister(t, svc, "alice")

	user, err := svc.Authenticate("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, wrongPass := svc.Authenticate("alice", "wrong-password")
	_, unknownUser := svc.Authenticate("nobody", "secret123")
	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	user := mustRegister(t, svc, "alice")

	bio := "hello there"
	updated, err := svc.UpdateProfile(user.ID, ProfileUpdate{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "hello there", updated.Bio)
	assert.Equal(t, "alice", updated.DisplayName, "absent fields stay unchanged")
	assert.Equal(t, models.DefaultAvatarURL, updated.AvatarURL)

	name := "Alice L."
	updated, err = svc.UpdateProfile(user.ID, ProfileUpdate{DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", updated.DisplayName)
	assert.Equal(t, "hello there", updated.Bio)
}

func TestUpdateProfileSanitizesBio(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	user := mustRegister(t, svc, "alice")

	bio := `hi <script>alert(1)</script><b>there</b>`
	updated, err := svc.UpdateProfile(user.ID, ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.NotContains(t, updated.Bio, "<script>")
	assert.Contains(t, updated.Bio, "<b>there</b>")
}

func TestDeleteAccountCascades(t *testing.T) {
	db := newTestDB(t)
	accounts := NewAccountService(db)
	follows := NewFollowService(db)
	posts := NewPostService(db)
	interactions := NewInteractionService(db)

	alice := mustRegister(t, accounts, "alice")
	bob := mustRegister(t, accounts, "bob")

	alicePost, err := posts.CreatePost(alice.ID, "from alice", "")
	require.NoError(t, err)
	bobPost, err := posts.CreatePost(bob.ID, "from bob", "")
	require.NoError(t, err)

	// Interactions in both directions plus follow edges both ways.
	_, _, err = interactions.ToggleLike(alice.ID, bobPost.ID)
	require.NoError(t, err)
	_, _, err = interactions.ToggleLike(bob.ID, alicePost.ID)
	require.NoError(t, err)
	_, err = interactions.AddComment(alice.ID, bobPost.ID, "nice")
	require.NoError(t, err)
	_, err = interactions.AddComment(bob.ID, alicePost.ID, "thanks")
	require.NoError(t, err)
	require.NoError(t, follows.Follow(alice.ID, bob.ID))
	require.NoError(t, follows.Follow(bob.ID, alice.ID))

	require.NoError(t, accounts.DeleteAccount(alice.ID))

	_, err = accounts.GetByID(alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var n int64
	db.Model(&models.Post{}).Where("user_id = ?", alice.ID).Count(&n)
	assert.Zero(t, n, "alice's posts must be removed")
	db.Model(&models.Comment{}).Where("user_id = ?", alice.ID).Count(&n)
	assert.Zero(t, n, "alice's comments must be removed")
	db.Model(&models.Like{}).Where("user_id = ?", alice.ID).Count(&n)
	assert.Zero(t, n, "alice's likes must be removed")
	db.Model(&models.Comment{}).Where("post_id = ?", alicePost.ID).Count(&n)
	assert.Zero(t, n, "comments on alice's posts must be removed")
	db.Model(&models.Like{}).Where("post_id = ?", alicePost.ID).Count(&n)
	assert.Zero(t, n, "likes on alice's posts must be removed")
	db.Model(&models.Follow{}).Where("follower_id = ? OR followed_id = ?", alice.ID, alice.ID).Count(&n)
	assert.Zero(t, n, "follow edges in either direction must be removed")

	// Bob's own content survives.
	_, err = posts.GetPost(bobPost.ID)
	assert.NoError(t, err)
}

func TestSearchMatchesUsernameAndDisplayName(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccountService(db)

	_, err := svc.Register("alice", "alice@example.com", "Alice Liddell", "secret123")
	require.NoError(t, err)
	_, err = svc.Register("bob", "bob@example.com", "Bob Gray", "secret123")
	require.NoError(t, err)
	_, err = svc.Register("carol", "carol@example.com", "Someone Else", "secret123")
	require.NoError(t, err)

	users, err := svc.Search("lid")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)

	users, err = svc.Search("bob")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)

	users, err = svc.Search("")
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
