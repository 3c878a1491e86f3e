package back

import (
	"roster/internal/metrics"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Back is the player catalog. It holds no state of its own, everything goes
// through the Store.
type Back struct {
	store Store
	log   logrus.FieldLogger
}

func New(store Store) *Back {
	return &Back{
		store: store,
		log:   logrus.WithField("package", "internal/back"),
	}
}

// observe records the outcome and latency of an operation, call it deferred
// with a pointer to the named error result.
func (b *Back) observe(operation string, start time.Time, err *error) {
	metrics.PlayerOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.PlayerOperationsTotal.WithLabelValues(operation, outcome(*err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidIdentifier):
		return "invalid_identifier"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrRecordRejected):
		return "rejected"
	default:
		return "error"
	}
}
