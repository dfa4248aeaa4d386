package droid

import "errors"

var (
	// ErrUnexpectedEOF is returned when a read runs past the end of the buffer.
	ErrUnexpectedEOF = errors.New("droid: unexpected end of replay data")

	// ErrUnsupportedVersion is returned for replay format versions with no known layout.
	ErrUnsupportedVersion = errors.New("droid: unsupported replay version")

	// ErrMalformedMovement is returned for movement samples that cannot be decoded.
	ErrMalformedMovement = errors.New("droid: malformed cursor movement")

	// ErrHeader is returned when the replay header could not be deserialized.
	ErrHeader = errors.New("droid: unable to parse replay header")
)
