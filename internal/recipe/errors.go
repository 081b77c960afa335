package recipe

import "errors"

// ErrInvalid wraps a precondition violation raised while loading a recipe.
// It is produced only by [Load]; the core build pipeline treats any
// [Recipe] it receives as already validated.
var ErrInvalid = errors.New("recipe invalid")
