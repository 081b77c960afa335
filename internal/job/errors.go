package job

import "errors"

// ErrStageSourcesFailed reports that fetching or copying a recipe's
// source into the build container failed.
var ErrStageSourcesFailed = errors.New("stage sources failed")
