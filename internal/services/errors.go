package services

import "errors"

var (
	// ErrConflict means a day transition lost the compare-and-swap to a
	// concurrent trigger. The caller re-reads instead of retrying the write.
	ErrConflict = errors.New("day state changed concurrently")

	ErrGameLost     = errors.New("game lost")
	ErrGameComplete = errors.New("game complete")

	ErrNicknameLength = errors.New("nickname must be 2-30 characters")
	ErrNicknameTaken  = errors.New("nickname already taken")
	ErrNicknameSet    = errors.New("nickname already set")
)
