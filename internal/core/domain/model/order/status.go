package order

import (
	"fmt"

	"mes/internal/pkg/errs"
)

// Status represents the lifecycle state of a production order.
//
// State transitions:
//
//	Pending ──> Processing ──> Completed
//
// The status moves strictly forward; no regression transition exists.
// Requesting the current status again is a no-op, not an error.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order.
	Pending

	// Processing indicates the claimed machine is actively working
	// the order.
	Processing

	// Completed indicates the order is finished and materials were
	// deducted. This is a final state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Processing: "Processing",
		Completed:  "Completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Processing: "Processing",
		Completed:  "Completed",
	}
}

// StatusFromString resolves a status by its human-readable name.
// Returns an error for unknown names; matching is case-sensitive.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status name", name),
	)
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Processing, Completed.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether the status admits no further transitions.
func (s Status) IsFinal() bool {
	return s == Completed
}

// TransitionTo computes the status after a transition request.
//
// Rules:
//   - the target must be a valid status
//   - target == current is a no-op: the current status is returned with
//     changed == false and no error
//   - backward movement is rejected with a state conflict
//
// Returns the resulting status, whether the status actually changed, and
// an error when the transition is not allowed.
func (s Status) TransitionTo(target Status) (Status, bool, error) {
	if err := target.Validate(); err != nil {
		return 0, false, err
	}

	if target == s {
		return s, false, nil
	}

	if target < s {
		return 0, false, errs.NewStateConflictErrorWithCause(
			"status",
			fmt.Errorf("cannot move back from %s to %s", s.String(), target.String()),
		)
	}

	return target, true, nil
}
