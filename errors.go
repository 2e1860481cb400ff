package tmpchat

import "errors"

var (
	// ErrFrameTooShort is returned when a raw message is shorter than the fixed header.
	ErrFrameTooShort = errors.New("tmpchat: frame shorter than header")
	// ErrFrameMalformed is returned when a literal marker is missing from its expected offset.
	ErrFrameMalformed = errors.New("tmpchat: frame markers not where expected")
	// ErrUnknownKind is returned when the trimmed KIND field isn't valid for the stated origin.
	// Parse also returns it for a frame carrying a name on a kind that allows none.
	ErrUnknownKind = errors.New("tmpchat: unknown frame kind for origin")
	// ErrNameRequired is returned when a kind that requires a name is built or
	// parsed without one. Build also returns it when a name is given for a kind
	// that allows none.
	ErrNameRequired = errors.New("tmpchat: name required for this frame kind")
	// ErrNameTooLong is returned when a name exceeds 20 bytes after trimming.
	ErrNameTooLong = errors.New("tmpchat: name longer than 20 bytes")
	// ErrBodyRequired is returned when a kind that requires a body is built without one.
	ErrBodyRequired = errors.New("tmpchat: body required for this frame kind")

	// ErrServerClosed is returned by Server.Serve after a call to Server.Close.
	ErrServerClosed = errors.New("tmpchat: server closed")
	// ErrInvalidConfig is returned when functional options produce an invalid configuration.
	ErrInvalidConfig = errors.New("tmpchat: invalid configuration")
)
