package models

import "errors"

// ErrValidation marks an invalid mutation of a survey entity: a choice that
// does not belong to its element, an empty text answer, a simplified choice
// outside the allowed range, or a mismatched element/sub-answer pairing.
var ErrValidation = errors.New("validation failed")
