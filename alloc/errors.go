package alloc

import "errors"

var (
	// ErrNoSpace indicates that no tier could service the request: the
	// size is negative, or it is within the OS threshold and the arena has
	// no free block large enough (after a full pool, for class sizes).
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrOSUnavailable indicates that the OS page facade could not reserve
	// backing memory.
	ErrOSUnavailable = errors.New("alloc: os reservation unavailable")

	// ErrBadConfig indicates an invalid allocator configuration.
	ErrBadConfig = errors.New("alloc: bad config")
)
