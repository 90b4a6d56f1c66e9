package tracker

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDFunc allocates a fresh unique identifier.
type IDFunc func() string

// Clock reports the current local time.
type Clock func() time.Time

// NewUUID is the default IDFunc. Random IDs stay unique when many instances
// are generated in the same instant.
func NewUUID() string {
	return uuid.New().String()
}

// SequentialIDs returns an IDFunc yielding prefix1, prefix2, ... It is
// deterministic and intended for tests and fixtures.
func SequentialIDs(prefix string) IDFunc {
	var n atomic.Int64
	return func() string {
		return prefix + strconv.FormatInt(n.Add(1), 10)
	}
}
