// Package sentinel holds the errors storage backends return for missing data.
package sentinel

import "errors"

// ErrNotFound is returned, possibly wrapped, when an option or dismissal
// record does not exist.
var ErrNotFound = errors.New("not found")
