// file: internals/features/questionnaire/assignments/controller/submit_policy.go
package controller

import (
	"github.com/google/uuid"

	model "moobee_backend/internals/features/questionnaire/assignments/model"
	scoring "moobee_backend/internals/features/questionnaire/scoring/service"
)

type submitDecision int

const (
	submitProceed submitDecision = iota
	submitReturnStored
	submitRejectClosed
	submitRejectCompleted
	submitNewAttempt
)

// resolveSubmit decides what a submit means against the LATEST attempt
// for (campaign, employee). storedHash is the response hash of that
// attempt's Result, empty when none exists.
func resolveSubmit(status string, attempt, maxAttempts int, storedHash, payloadHash string) submitDecision {
	switch status {
	case model.StatusExpired, model.StatusSkipped:
		return submitRejectClosed
	case model.StatusCompleted:
		if storedHash != "" && storedHash == payloadHash {
			return submitReturnStored
		}
		if attempt >= maxAttempts {
			return submitRejectCompleted
		}
		return submitNewAttempt
	default:
		return submitProceed
	}
}

// missingRequired lists the required snapshot questions absent from the
// answered set, in snapshot order.
func missingRequired(questions []scoring.SnapshotQuestion, answered map[uuid.UUID]bool) []uuid.UUID {
	var missing []uuid.UUID
	for _, q := range questions {
		if q.Required && !answered[q.QuestionID] {
			missing = append(missing, q.QuestionID)
		}
	}
	return missing
}
