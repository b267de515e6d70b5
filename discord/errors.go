package discord

import "errors"

// ErrEmptyToken indicates that no token was provided and no session was injected via WithSession.
var ErrEmptyToken = errors.New("token must be set or a session must be provided via WithSession")

// ErrNoAuthor indicates that the given interaction has no invoking user.
var ErrNoAuthor = errors.New("interaction has no user")

// ErrNotInteraction indicates that the given event is not an application command interaction.
var ErrNotInteraction = errors.New("event is not an application command interaction")
