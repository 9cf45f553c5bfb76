// file: internals/features/questionnaire/assignments/controller/submit_policy_test.go
package controller

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "moobee_backend/internals/features/questionnaire/assignments/model"
	scoring "moobee_backend/internals/features/questionnaire/scoring/service"
)

func TestResolveSubmit(t *testing.T) {
	cases := []struct {
		name        string
		status      string
		attempt     int
		maxAttempts int
		storedHash  string
		payloadHash string
		want        submitDecision
	}{
		{"fresh assignment", model.StatusAssigned, 1, 2, "", "h1", submitProceed},
		{"resumed assignment", model.StatusInProgress, 1, 2, "", "h1", submitProceed},
		{"expired", model.StatusExpired, 1, 2, "", "h1", submitRejectClosed},
		{"skipped", model.StatusSkipped, 1, 2, "", "h1", submitRejectClosed},
		{"identical resubmit", model.StatusCompleted, 1, 2, "h1", "h1", submitReturnStored},
		{"new payload opens retake", model.StatusCompleted, 1, 2, "h1", "h2", submitNewAttempt},
		{"single attempt exhausted", model.StatusCompleted, 1, 1, "h1", "h2", submitRejectCompleted},
		// submitting the same attempt-2 payload again must replay the
		// stored result, never open (or collide on) attempt 3
		{"identical resubmit on last attempt", model.StatusCompleted, 2, 2, "h2", "h2", submitReturnStored},
		{"last attempt used up", model.StatusCompleted, 2, 2, "h2", "h3", submitRejectCompleted},
		{"third attempt reachable", model.StatusCompleted, 2, 3, "h2", "h3", submitNewAttempt},
		{"completed without stored result", model.StatusCompleted, 1, 2, "", "h1", submitNewAttempt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveSubmit(tc.status, tc.attempt, tc.maxAttempts, tc.storedHash, tc.payloadHash)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMissingRequired(t *testing.T) {
	q1, q2, q3 := uuid.New(), uuid.New(), uuid.New()
	questions := []scoring.SnapshotQuestion{
		{QuestionID: q1, Required: true},
		{QuestionID: q2, Required: false},
		{QuestionID: q3, Required: true},
	}

	t.Run("unanswered required listed in order", func(t *testing.T) {
		missing := missingRequired(questions, map[uuid.UUID]bool{q2: true})
		require.Len(t, missing, 2)
		assert.Equal(t, []uuid.UUID{q1, q3}, missing)
	})

	t.Run("optional gaps ignored", func(t *testing.T) {
		missing := missingRequired(questions, map[uuid.UUID]bool{q1: true, q3: true})
		assert.Empty(t, missing)
	})

	t.Run("all answered", func(t *testing.T) {
		missing := missingRequired(questions, map[uuid.UUID]bool{q1: true, q2: true, q3: true})
		assert.Empty(t, missing)
	})
}
