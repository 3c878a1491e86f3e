package util

import (
	"strings"

	"github.com/pkg/errors"
)

// ConcatErrors joins every non-nil error into a single one, nil if there is
// nothing to report.
func ConcatErrors(errs ...error) error {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}

	if len(msgs) == 0 {
		return nil
	}

	return errors.New(strings.Join(msgs, "; "))
}
