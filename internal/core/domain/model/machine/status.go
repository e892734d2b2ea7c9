package machine

import (
	"fmt"

	"mes/internal/pkg/errs"
)

// Status represents the operational state of a machine on the shop floor.
//
// State transitions:
//
//	Available ──> Running ──> Busy ──> Available
//	    │                                 ▲
//	    └──────> Maintenance ─────────────┘
//
//	Error is a direct override reachable from any state.
//
// Running means a machine holds a fresh order claim; Busy means the claimed
// order is actively processing. Maintenance and Error machines must not hold
// a claim and cannot accept new ones.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Available means the machine is idle and can be claimed by an order.
	Available

	// Busy means the machine's claimed order has moved to processing.
	Busy

	// Running means the machine has just been claimed by a new order.
	Running

	// Maintenance means the machine is undergoing maintenance and is not
	// claimable.
	Maintenance

	// Error means the machine is faulted and is not claimable.
	Error
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "Unknown",
		Available:   "Available",
		Busy:        "Busy",
		Running:     "Running",
		Maintenance: "Maintenance",
		Error:       "Error",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Available:   "Available",
		Busy:        "Busy",
		Running:     "Running",
		Maintenance: "Maintenance",
		Error:       "Error",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It implements the
// fmt.Stringer interface and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsClaimable reports whether a machine in this status may accept a new
// order claim. Only Available machines are claimable; Maintenance and Error
// machines are explicitly unavailable to order creation.
func (s Status) IsClaimable() bool {
	return s == Available
}

// ValidateCanHaveOrder validates the consistency between machine status and
// an open order claim.
//
// Business rules:
//   - Running and Busy machines must hold a current order
//   - Available, Maintenance, and Error machines must not
//
// Parameters:
//   - claimed: whether the machine has a current order
func (s Status) ValidateCanHaveOrder(claimed bool) error {
	if claimed && s != Running && s != Busy {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to hold an order claim", s.String()),
		)
	}

	if !claimed && (s == Running || s == Busy) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status without an order claim", s.String()),
		)
	}

	return nil
}
