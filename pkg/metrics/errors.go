package metrics

import "errors"

// ErrNoTextfile is returned by WriteTextfile when no path is given.
var ErrNoTextfile = errors.New("metrics textfile path is empty")
