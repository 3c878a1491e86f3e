package back

// Error is the closed set of caller-visible failures of the catalog.
// Anything else returned by Back is an infrastructure error.
type Error string

const (
	// ErrInvalidIdentifier means the ID string is malformed.
	ErrInvalidIdentifier Error = "invalid player ID"
	// ErrNotFound means the ID is well-formed but no player has it.
	ErrNotFound Error = "player not found"
	// ErrRecordRejected means a created or updated player breaks a field
	// rule. Which one is not disclosed.
	ErrRecordRejected Error = "player rejected"
)

func (e Error) Error() string {
	return string(e)
}
