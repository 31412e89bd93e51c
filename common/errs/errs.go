package errs

// ErrorKind identifies a kind of internal error.
// fully support for errors.Is and errors.As.
type ErrorKind string

const (
	// NotFound is returned when a requested item is not found.
	NotFound        = ErrorKind("Not Found")
	InvalidArgument = ErrorKind("Invalid Argument")
	InternalError   = ErrorKind("Internal Error")
	Unsupported     = ErrorKind("Unsupported")

	// Unauthorized is returned when the caller lacks the required privilege.
	Unauthorized = ErrorKind("Unauthorized")

	// AlreadyInitialized guards the one-time initialization step.
	AlreadyInitialized = ErrorKind("Already Initialized")

	// NoActiveDrop is returned when no tier is currently sellable.
	NoActiveDrop = ErrorKind("No Active Drop")

	// InsufficientPayment is returned when a mint payment is below the
	// active tier's price.
	InsufficientPayment = ErrorKind("Insufficient Payment")

	// InvalidTransition is returned when a schedule edit violates the
	// lead-time or ordering rules.
	InvalidTransition = ErrorKind("Invalid Transition")

	// NotStalled is returned when stalled-drop remediation preconditions
	// are unmet.
	NotStalled = ErrorKind("Not Stalled")

	// InvalidRate is returned when a royalty rate exceeds the ceiling.
	InvalidRate = ErrorKind("Invalid Rate")

	// InsufficientFunds is returned when a withdrawal exceeds the treasury
	// balance.
	InsufficientFunds = ErrorKind("Insufficient Funds")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
