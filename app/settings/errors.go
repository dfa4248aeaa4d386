package settings

import "errors"

var (
	ErrLoadSettings    = errors.New("settings: load failed")
	ErrInvalidSettings = errors.New("settings: invalid value")
)
