// file: internals/features/questionnaire/campaigns/controller/campaign_controller_test.go
package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvisoryWarnings(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	none := advisoryWarnings(50, start, start.Add(14*24*time.Hour))
	assert.Empty(t, none)

	cohort := advisoryWarnings(500, start, start.Add(14*24*time.Hour))
	assert.Len(t, cohort, 1)

	window := advisoryWarnings(50, start, start.Add(48*time.Hour))
	assert.Len(t, window, 1)

	both := advisoryWarnings(500, start, start.Add(48*time.Hour))
	assert.Len(t, both, 2)
}
