package user

import "errors"

// ErrNotFound is returned by every store implementation when no user matches
// the lookup key.
var ErrNotFound = errors.New("user not found")
