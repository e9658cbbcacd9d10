package tokens

// Backend is a single storage slot for the serialized credential bundle.
// Implementations must return common.ErrNotFound from Get when no value is
// stored, and treat Delete of a missing value as success.
type Backend interface {
	Get() (string, error)
	Set(value string) error
	Delete() error
}
