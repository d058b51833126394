package cluster

import (
	"time"

	"github.com/Veraticus/resetwatch/internal/model"
)

// Status is how a vendor should be presented.
type Status int

const (
	// StatusNormal has council left and a reset still ahead.
	StatusNormal Status = iota
	// StatusExhausted has no council left.
	StatusExhausted
	// StatusResetPending has passed its next reset without being marked reset.
	StatusResetPending
)

func (s Status) String() string {
	switch s {
	case StatusExhausted:
		return "exhausted"
	case StatusResetPending:
		return "reset pending"
	default:
		return "normal"
	}
}

// Classify returns the vendor's display status at now. An exhausted vendor
// stays exhausted even once its reset is due.
func Classify(v *model.Vendor, now time.Time) Status {
	if v.CouncilLeft == 0 {
		return StatusExhausted
	}
	if !v.NextReset().After(now) {
		return StatusResetPending
	}
	return StatusNormal
}
