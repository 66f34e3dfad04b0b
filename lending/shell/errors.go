package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-lending/lending/core"
)

// IsBusinessError is true for rejections by a business rule, as opposed to infrastructure failures.
func IsBusinessError(err error) bool {
	var businessErr *core.BusinessError

	return errors.As(err, &businessErr)
}

// BusinessReason returns the reason of a business error, "" for other errors.
func BusinessReason(err error) string {
	var businessErr *core.BusinessError
	if errors.As(err, &businessErr) {
		return businessErr.Reason
	}

	return ""
}
