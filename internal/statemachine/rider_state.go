package statemachine

import (
	"errors"
	"strings"

	"github.com/swiftparcel/swiftparcel-backend/internal/models"
)

// Transition defines a valid rider status change
type Transition struct {
	From string
	To   string
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	{From: models.RiderStatusPending, To: models.RiderStatusApproved},
	{From: models.RiderStatusPending, To: models.RiderStatusRejected},
}

var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next statuses from a given status
func ValidTransitionsFrom(status string) []string {
	var nexts []string
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks if a rider may move from one status to another
func CanTransition(from, to string) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return errors.New(
		"invalid transition: " + from + " -> " + to +
			". Valid transitions from " + from + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status string) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal status)"
	}
	return strings.Join(nexts, ", ")
}
