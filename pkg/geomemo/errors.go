package geomemo

import "fmt"

type GeomemoError struct {
	Message string
}

func (errorValue GeomemoError) Error() string {
	return errorValue.Message
}

// SubmissionError reports a rejected or unconfirmed submission. The failed
// transaction is not retried internally; resubmitting creates a new
// transaction rather than replaying this one.
type SubmissionError struct {
	GeomemoError
	Signature string
}

func NewSubmissionError(signature string, format string, args ...any) error {
	return SubmissionError{
		GeomemoError: GeomemoError{Message: fmt.Sprintf(format, args...)},
		Signature:    signature,
	}
}

type InvalidSignatureError struct {
	GeomemoError
	Signature string
}

func NewInvalidSignatureError(signature string) error {
	return InvalidSignatureError{
		GeomemoError: GeomemoError{Message: fmt.Sprintf("invalid transaction signature: %s", signature)},
		Signature:    signature,
	}
}
