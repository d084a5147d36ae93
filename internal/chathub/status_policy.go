package chathub

import (
	"errors"
	"fmt"

	"emergencyrelay/backend/internal/models"

	"github.com/samber/lo"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// StatusPolicy validates a report status change.
type StatusPolicy interface {
	Check(from, to models.ReportStatus) error
}

// AnyTransition accepts every change, including unknown statuses.
type AnyTransition struct{}

func (AnyTransition) Check(_, _ models.ReportStatus) error { return nil }

// StrictTransitions enforces pending -> current -> approved, with rejected
// reachable only from pending. Approved and rejected are final.
type StrictTransitions struct{}

var strictTable = map[models.ReportStatus][]models.ReportStatus{
	models.StatusPending: {models.StatusCurrent, models.StatusRejected},
	models.StatusCurrent: {models.StatusApproved},
}

func (StrictTransitions) Check(from, to models.ReportStatus) error {
	if !to.Valid() || !lo.Contains(strictTable[from], to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
