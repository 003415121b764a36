package output

import (
	"github.com/oklog/ulid/v2"
)

// NewRunID returns a lexically sortable identifier for a run.
func NewRunID() string {
	return ulid.Make().String()
}
