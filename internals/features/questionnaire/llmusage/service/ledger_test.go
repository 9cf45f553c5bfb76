// file: internals/features/questionnaire/llmusage/service/ledger_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCostKnownModel(t *testing.T) {
	cost, unpriced := EstimateCost("gemini-1.5-flash", 1000, 1000)
	assert.False(t, unpriced)
	assert.InDelta(t, 0.000075+0.0003, cost, 1e-9)
}

func TestEstimateCostScalesLinearly(t *testing.T) {
	one, _ := EstimateCost("gpt-4o-mini", 500, 200)
	double, _ := EstimateCost("gpt-4o-mini", 1000, 400)
	assert.InDelta(t, one*2, double, 1e-9)
}

func TestEstimateCostUnknownModelFlagged(t *testing.T) {
	cost, unpriced := EstimateCost("llama-household-edition", 5000, 5000)
	assert.True(t, unpriced)
	assert.Zero(t, cost)
}

func TestEstimateCostZeroTokens(t *testing.T) {
	cost, unpriced := EstimateCost("gpt-4o", 0, 0)
	assert.False(t, unpriced)
	assert.Zero(t, cost)
}
