// Package audit re-checks persisted listings against their source URLs and
// deactivates the ones whose posting has been removed upstream.
//
// Classification is fail-open: only an unambiguous removal marker may
// deactivate a listing. Timeouts, transport errors and non-200 responses
// are treated as still-available — uncertainty never destroys state.
package audit

import (
	"strings"
)

// Status is the outcome of one availability check.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusRemoved   Status = "REMOVED"
	StatusAmbiguous Status = "AMBIGUOUS"
)

// RemovedMarker is the phrase the provider renders on a 200 page once a
// posting has been taken down.
const RemovedMarker = "The following job is no longer available"

// Classify maps a single check's raw outcome to a Status.
//
// A listing's active flag has exactly one transition, active → inactive,
// and only StatusRemoved triggers it. Nothing resurrects a listing.
func Classify(statusCode int, body string, err error) Status {
	if err != nil {
		return StatusAmbiguous
	}
	if statusCode != 200 {
		return StatusAmbiguous
	}
	if strings.Contains(body, RemovedMarker) {
		return StatusRemoved
	}
	return StatusAvailable
}
