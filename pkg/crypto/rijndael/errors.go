package rijndael

import "errors"

var (
	// ErrMissingKey is returned when neither a key nor an expanded key is supplied.
	ErrMissingKey = errors.New("rijndael: no key or expanded key supplied")

	// ErrKeySize is returned for keys that are not 16, 24 or 32 bytes long.
	ErrKeySize = errors.New("rijndael: unsupported key length")

	// ErrScheduleSize is returned for expanded keys that are not 176, 208 or
	// 240 bytes long. The round count cannot be derived from such a schedule.
	ErrScheduleSize = errors.New("rijndael: unrecognized expanded key length")

	// ErrBlockSize is returned when a block is not exactly BlockSize bytes.
	ErrBlockSize = errors.New("rijndael: block must be 16 bytes")
)
