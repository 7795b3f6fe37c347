package gateway

import "fmt"

// UnsupportedDialectError is returned when a descriptor names a dialect the
// gateway does not recognize.
type UnsupportedDialectError struct {
	Dialect   string
	Available []string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unsupported dialect %q (supported: %v)", e.Dialect, e.Available)
}

// NotFoundError is returned when a request names an unknown database id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("database %q not found", e.ID)
}

// NotConnectedError is returned when a database id is known but its
// connection attempt failed at initialization. Reason carries the original
// connect error message.
type NotConnectedError struct {
	ID     string
	Reason string
}

func (e *NotConnectedError) Error() string {
	return fmt.Sprintf("database %q is not connected: %s", e.ID, e.Reason)
}

// QueryFailedError wraps a driver-level failure during statement execution.
// The original error message is preserved for the caller.
type QueryFailedError struct {
	ID  string
	Err error
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("query against %q failed: %v", e.ID, e.Err)
}

func (e *QueryFailedError) Unwrap() error {
	return e.Err
}

// BadRequestError is returned when a mutation is missing required fields or
// references columns that do not exist in the target table.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string {
	return e.Reason
}
