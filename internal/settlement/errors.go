package settlement

import (
	"errors"
	"fmt"
)

// RejectKind names one of the closed set of reasons a purchase message is
// rejected.
type RejectKind string

const (
	// MalformedMessage means the message has fewer than the required lines.
	MalformedMessage RejectKind = "malformed_message"
	// UnknownCategory means the #purpose line names no configured expense
	// category and neither reserved purpose.
	UnknownCategory RejectKind = "unknown_category"
	// UnrecognizedAmount means the last line is not a signed number
	// followed by a currency token.
	UnrecognizedAmount RejectKind = "unrecognized_amount"
	// UnknownCurrency means the currency token could not be canonicalized.
	UnknownCurrency RejectKind = "unknown_currency"
)

// ValidationError rejects a purchase message. It is always returned to the
// submitter; it never crashes the engine.
type ValidationError struct {
	Kind   RejectKind
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// AsValidation unwraps err into a ValidationError, if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
