// file: internals/features/questionnaire/insights/service/insights_test.go
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scoring "moobee_backend/internals/features/questionnaire/scoring/service"
)

func skillReport(skills map[string]float64) *scoring.Report {
	r := &scoring.Report{
		Family:     "assessment",
		SoftSkills: map[string]scoring.SoftSkillScore{},
	}
	for code, raw := range skills {
		r.SoftSkills[code] = scoring.SoftSkillScore{Raw: raw, Level: scoring.LevelOf(raw)}
	}
	return r
}

// Scenario from the role-fit pipeline: Teamwork meets its target,
// Communication misses it by 10.
func TestGenerateStrengthAndImprovement(t *testing.T) {
	report := skillReport(map[string]float64{
		"COMMUNICATION": 70,
		"TEAMWORK":      75,
	})
	policy := []scoring.RoleSkillPolicy{
		{SkillCode: "COMMUNICATION", Priority: 1, TargetScore: 80},
		{SkillCode: "TEAMWORK", Priority: 3, TargetScore: 70},
	}

	ins := Generate(report, policy)

	require.Len(t, ins.Strengths, 1)
	assert.Equal(t, "TEAMWORK", ins.Strengths[0].Code)
	assert.Equal(t, 75.0, ins.Strengths[0].Score)

	require.Len(t, ins.Improvements, 1)
	assert.Equal(t, "COMMUNICATION", ins.Improvements[0].Code)
	assert.Equal(t, 10.0, ins.Improvements[0].Gap)

	require.Len(t, ins.Recommendations, 1)
	assert.Equal(t, "COMMUNICATION", ins.Recommendations[0].Code)
}

// Improvements order by priority first, then by gap size.
func TestGenerateImprovementOrdering(t *testing.T) {
	report := skillReport(map[string]float64{
		"COMMUNICATION": 40, // priority 2, gap 40
		"LEADERSHIP":    60, // priority 1, gap 20
		"TEAMWORK":      30, // priority 2, gap 50
		"MOTIVATION":    20, // priority 3, gap 60
	})
	policy := []scoring.RoleSkillPolicy{
		{SkillCode: "COMMUNICATION", Priority: 2, TargetScore: 80},
		{SkillCode: "LEADERSHIP", Priority: 1, TargetScore: 80},
		{SkillCode: "TEAMWORK", Priority: 2, TargetScore: 80},
		{SkillCode: "MOTIVATION", Priority: 3, TargetScore: 80},
	}

	ins := Generate(report, policy)

	require.Len(t, ins.Improvements, 3, "capped at three")
	assert.Equal(t, "LEADERSHIP", ins.Improvements[0].Code)
	assert.Equal(t, "TEAMWORK", ins.Improvements[1].Code, "same priority, larger gap first")
	assert.Equal(t, "COMMUNICATION", ins.Improvements[2].Code)
}

// Without a role policy, category aggregates become the targets with
// the default goal of 70.
func TestGenerateFromCategories(t *testing.T) {
	report := &scoring.Report{
		Family:    "engagement",
		Sentiment: scoring.SentimentNeutral,
		Categories: map[string]scoring.CategoryScore{
			"MOTIVATION": {Average: 85, Level: scoring.LevelOf(85)},
			"GROWTH":     {Average: 55, Level: scoring.LevelOf(55)},
		},
	}

	ins := Generate(report, nil)

	require.Len(t, ins.Strengths, 1)
	assert.Equal(t, "MOTIVATION", ins.Strengths[0].Code)
	require.Len(t, ins.Improvements, 1)
	assert.Equal(t, "GROWTH", ins.Improvements[0].Code)
	assert.Equal(t, 15.0, ins.Improvements[0].Gap)
	assert.Equal(t, scoring.SentimentNeutral, ins.Sentiment)
}

func TestGenerateDeterministicOnTies(t *testing.T) {
	report := skillReport(map[string]float64{
		"AUTONOMY":  80,
		"BELONGING": 80,
	})

	first := Generate(report, nil)
	second := Generate(report, nil)
	assert.Equal(t, first, second)
	require.Len(t, first.Strengths, 2)
	assert.Equal(t, "AUTONOMY", first.Strengths[0].Code, "ties break on code")
}

func TestRecommendCatalog(t *testing.T) {
	big := Recommend("COMMUNICATION", 30)
	assert.Equal(t, RecTraining, big.Type, "large gap picks the heavier entry")

	small := Recommend("COMMUNICATION", 10)
	assert.Equal(t, RecReading, small.Type, "small gap picks the lighter entry")

	fallback := Recommend("QUANTUM_JUGGLING", 25)
	assert.Equal(t, RecDevelopmentPlan, fallback.Type)
	assert.Equal(t, "QUANTUM_JUGGLING", fallback.Code)
}
