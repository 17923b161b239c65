// Package services implements the application core: credential store, follow
// graph, post store, interaction store, and feed assembly. Operations return
// plain data and sentinel errors; HTTP concerns live in controllers.
package services

import "errors"

var (
	// ErrDuplicateUsername is returned when registering a username that is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail is returned when registering an email that is taken.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrInvalidEmail is returned when an email address is not well formed.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrEmptyBody is returned for blank post or comment bodies.
	ErrEmptyBody = errors.New("body cannot be empty")
	// ErrBodyTooLong is returned when a body exceeds its length policy.
	ErrBodyTooLong = errors.New("body exceeds maximum length")
	// ErrNotFound is returned when a referenced account or post is absent.
	ErrNotFound = errors.New("not found")
	// ErrSelfFollow rejects a follow request where follower == followed.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrForbidden is returned when acting on content owned by someone else.
	ErrForbidden = errors.New("not the owner")
)
