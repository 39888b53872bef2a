package domain

// Repo is the capability every platform repository variant exposes to
// the rest of the engine. Variants are immutable once constructed and
// recompute their rating on every call; a repository whose counters
// cannot be coerced surfaces ErrNumericConversion from Rating, Data
// and Render alike.
type Repo interface {
	// Name returns the repository name, empty when the platform did
	// not deliver one.
	Name() string
	// Rating computes the platform-specific quality score.
	Rating() (float64, error)
	// Data returns the serializable representation of the repository.
	Data() (any, error)
	// Render returns the fixed-width display line for the repository.
	Render() (string, error)
}
