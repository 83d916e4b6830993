package optimizer

import "errors"

var (
	// ErrInvalidRange is returned for a missing virtue or a range with low > high.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnknownIngredient is returned for an ingredient index outside the catalog.
	ErrUnknownIngredient = errors.New("unknown ingredient")
	// ErrNotFound is returned by name lookups that match no ingredient.
	ErrNotFound = errors.New("ingredient not found")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid config")
)
