package walkers

import "errors"

// errEmptyResult indicates a parallel walker's worker pool drained
// without ever finalizing the root directory, which should only be
// reachable if every worker goroutine failed to run at all.
var errEmptyResult = errors.New("INTERNAL ERROR: walker finished without producing a result")
