package services

import (
	"context"
	"errors"
)

// IsTimeout reports whether err was caused by the request's time budget running out.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsCanceled reports whether err was caused by the caller going away.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
