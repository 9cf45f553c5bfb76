// file: internals/features/questionnaire/notifications/service/dispatcher.go
package service

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Reminder reasons passed to Remind.
const (
	ReasonDeadlineNear = "deadline_near"
	ReasonNotStarted   = "not_started"
	ReasonInProgress   = "in_progress"
)

// Dispatcher is the consumed notification interface. Delivery semantics
// (email, chat, digests) are owned by the collaborator behind it; the
// engine only signals state transitions and reminder ticks.
type Dispatcher interface {
	Invite(ctx context.Context, assignmentID uuid.UUID) error
	Remind(ctx context.Context, assignmentID uuid.UUID, reason string) error
	AnnounceCompletion(ctx context.Context, assignmentID uuid.UUID) error
	ReportTeamProgress(ctx context.Context, managerID, campaignID uuid.UUID) error
}

// LogDispatcher is the default wiring: it records the hook invocations
// and drops them. Used until a delivery backend is attached.
type LogDispatcher struct{}

var _ Dispatcher = (*LogDispatcher)(nil)

func (LogDispatcher) Invite(_ context.Context, assignmentID uuid.UUID) error {
	log.Printf("[NOTIFY] invite assignment=%s", assignmentID)
	return nil
}

func (LogDispatcher) Remind(_ context.Context, assignmentID uuid.UUID, reason string) error {
	log.Printf("[NOTIFY] remind assignment=%s reason=%s", assignmentID, reason)
	return nil
}

func (LogDispatcher) AnnounceCompletion(_ context.Context, assignmentID uuid.UUID) error {
	log.Printf("[NOTIFY] completed assignment=%s", assignmentID)
	return nil
}

func (LogDispatcher) ReportTeamProgress(_ context.Context, managerID, campaignID uuid.UUID) error {
	log.Printf("[NOTIFY] team progress manager=%s campaign=%s", managerID, campaignID)
	return nil
}
