// file: internals/features/questionnaire/scoring/service/scoring_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
)

func likertQ(category string, weight float64, reversed bool) SnapshotQuestion {
	return SnapshotQuestion{
		QuestionID: uuid.New(),
		Kind:       AnswerKindLikert,
		Category:   category,
		ScaleMin:   1,
		ScaleMax:   5,
		Weight:     weight,
		Reversed:   reversed,
	}
}

func likertAnswer(q SnapshotQuestion, v float64) Answer {
	return Answer{QuestionID: q.QuestionID, Kind: q.Kind, Value: &v}
}

// Gallup-style engagement: 12 likert 1-5 questions spread over four
// areas through explicit weight mappings, all answered 4.
func TestScoreEngagementEqualAnswers(t *testing.T) {
	areas := []string{"MOTIVATION", "LEADERSHIP", "GROWTH", "RECOGNITION"}

	snap := WeightSnapshot{
		TemplateID:   uuid.New(),
		TemplateKind: templateModel.KindGallupQ12,
	}
	var answers []Answer
	for i := 0; i < 12; i++ {
		q := likertQ("GENERAL", 1, false)
		snap.Questions = append(snap.Questions, q)
		snap.Weights = append(snap.Weights, SnapshotWeight{
			QuestionID: q.QuestionID,
			TargetKind: "area",
			TargetCode: areas[i%len(areas)],
			Value:      1.0,
		})
		answers = append(answers, likertAnswer(q, 4))
	}

	report, err := Score(Input{Snapshot: snap, Answers: answers, PercentileFloor: 10})
	require.NoError(t, err)

	assert.Equal(t, 75.0, report.Overall)
	assert.Equal(t, SentimentPositive, report.Sentiment)
	assert.Nil(t, report.Percentile, "fresh template has no population")
	require.Len(t, report.Categories, len(areas))
	for _, area := range areas {
		assert.Equal(t, 75.0, report.Categories[area].Average, area)
		assert.Equal(t, 3, report.Categories[area].Count, area)
	}
}

// Big Five: two likert questions per dimension, no explicit mappings,
// answers chosen so every dimension lands on a distinct average.
func TestScoreBigFiveDimensions(t *testing.T) {
	dims := []string{"OPENNESS", "CONSCIENTIOUSNESS", "EXTRAVERSION", "AGREEABLENESS", "NEUROTICISM"}
	values := []float64{5, 5, 3, 3, 4, 4, 2, 2, 1, 1}

	snap := WeightSnapshot{
		TemplateID:   uuid.New(),
		TemplateKind: templateModel.KindBigFive,
	}
	var answers []Answer
	for i, v := range values {
		q := likertQ(dims[i/2], 1, false)
		snap.Questions = append(snap.Questions, q)
		answers = append(answers, likertAnswer(q, v))
	}

	report, err := Score(Input{Snapshot: snap, Answers: answers, PercentileFloor: 10})
	require.NoError(t, err)

	want := map[string]float64{
		"OPENNESS":          100.0,
		"CONSCIENTIOUSNESS": 50.0,
		"EXTRAVERSION":      75.0,
		"AGREEABLENESS":     25.0,
		"NEUROTICISM":       0.0,
	}
	require.Len(t, report.Categories, len(want))
	for dim, avg := range want {
		assert.Equal(t, avg, report.Categories[dim].Average, dim)
	}
	assert.Equal(t, 50.0, report.Overall, "unweighted mean over equal-weight dimensions")
	assert.Empty(t, report.Sentiment, "sentiment is engagement only")
}

// Assessment with role context: priority-weighted role fit over two
// soft skills, both above their required minimums.
func TestScoreRoleFit(t *testing.T) {
	comm := SnapshotQuestion{
		QuestionID: uuid.New(),
		Kind:       AnswerKindLikert,
		Category:   "COMMUNICATION",
		ScaleMin:   1,
		ScaleMax:   11,
		Weight:     1,
	}
	team := likertQ("TEAMWORK", 1, false)

	snap := WeightSnapshot{
		TemplateID:   uuid.New(),
		TemplateKind: templateModel.KindCompetency,
		Questions:    []SnapshotQuestion{comm, team},
		Weights: []SnapshotWeight{
			{QuestionID: comm.QuestionID, TargetKind: "soft_skill", TargetCode: "COMMUNICATION", Value: 1},
			{QuestionID: team.QuestionID, TargetKind: "soft_skill", TargetCode: "TEAMWORK", Value: 1},
		},
	}
	policy := []RoleSkillPolicy{
		{SkillCode: "COMMUNICATION", Priority: 1, Weight: 1.5, Required: true, MinScore: 60, TargetScore: 80},
		{SkillCode: "TEAMWORK", Priority: 3, Weight: 1.2, Required: true, MinScore: 55, TargetScore: 70},
	}
	answers := []Answer{
		likertAnswer(comm, 8), // (8-1)/10 = 0.70
		likertAnswer(team, 4), // (4-1)/4  = 0.75
	}

	report, err := Score(Input{Snapshot: snap, Answers: answers, RolePolicy: policy, PercentileFloor: 10})
	require.NoError(t, err)

	require.Contains(t, report.SoftSkills, "COMMUNICATION")
	require.Contains(t, report.SoftSkills, "TEAMWORK")
	assert.Equal(t, 70.0, report.SoftSkills["COMMUNICATION"].Raw)
	assert.Equal(t, 75.0, report.SoftSkills["TEAMWORK"].Raw)

	// (70*1.5 + 75*1.2) / (1.5+1.2)
	require.NotNil(t, report.RoleFit)
	assert.Equal(t, 72.22, *report.RoleFit)
	assert.Equal(t, 72.22, report.Overall)
}

// A required skill below its minimum cuts role fit by the penalty
// factor.
func TestScoreRequiredSkillPenalty(t *testing.T) {
	q := likertQ("COMMUNICATION", 1, false)
	snap := WeightSnapshot{
		TemplateID:   uuid.New(),
		TemplateKind: templateModel.KindCompetency,
		Questions:    []SnapshotQuestion{q},
		Weights: []SnapshotWeight{
			{QuestionID: q.QuestionID, TargetKind: "soft_skill", TargetCode: "COMMUNICATION", Value: 1},
		},
	}
	policy := []RoleSkillPolicy{
		{SkillCode: "COMMUNICATION", Priority: 1, Required: true, MinScore: 60, TargetScore: 80},
	}
	answers := []Answer{likertAnswer(q, 3)} // raw 50, below min 60

	report, err := Score(Input{Snapshot: snap, Answers: answers, RolePolicy: policy, PercentileFloor: 10})
	require.NoError(t, err)

	require.NotNil(t, report.RoleFit)
	assert.Equal(t, 35.0, *report.RoleFit, "50 * 0.7 penalty")
}

// Reversing flips the normalized value after scaling, so min and max
// trade places.
func TestNormalizeReversed(t *testing.T) {
	q := likertQ("GENERAL", 1, true)

	low := likertAnswer(q, 1)
	x, ok := Normalize(&q, &low)
	require.True(t, ok)
	assert.Equal(t, 1.0, x)

	high := likertAnswer(q, 5)
	x, ok = Normalize(&q, &high)
	require.True(t, ok)
	assert.Equal(t, 0.0, x)
}

func TestNormalizeLikertBoundaries(t *testing.T) {
	q := likertQ("GENERAL", 1, false)

	cases := []struct {
		value float64
		want  float64
	}{
		{1, 0.0},
		{5, 1.0},
		{3, 0.5},
		{0, 0.0},  // below scale clamps
		{99, 1.0}, // above scale clamps
	}
	for _, c := range cases {
		a := likertAnswer(q, c.value)
		x, ok := Normalize(&q, &a)
		require.True(t, ok)
		assert.Equal(t, c.want, x, "value %v", c.value)
	}
}

func TestNormalizeOpenTextExcluded(t *testing.T) {
	q := SnapshotQuestion{QuestionID: uuid.New(), Kind: AnswerKindText, Weight: 1}
	a := Answer{QuestionID: q.QuestionID, Kind: q.Kind, Text: "free feedback"}
	_, ok := Normalize(&q, &a)
	assert.False(t, ok)
}

// Zero-weight questions contribute nothing anywhere.
func TestScoreZeroWeightOmitted(t *testing.T) {
	scored := likertQ("MOTIVATION", 1, false)
	ignored := likertQ("MOTIVATION", 0, false)

	snap := WeightSnapshot{
		TemplateID:   uuid.New(),
		TemplateKind: templateModel.KindEngagementCustom,
		Questions:    []SnapshotQuestion{scored, ignored},
	}
	answers := []Answer{
		likertAnswer(scored, 5),
		likertAnswer(ignored, 1),
	}

	report, err := Score(Input{Snapshot: snap, Answers: answers, PercentileFloor: 10})
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.Overall)
	assert.Equal(t, 1, report.Categories["MOTIVATION"].Count)
}

// Each soft skill is ranked against its own prior-score cohort, with
// the same floor rule the overall percentile uses.
func TestScoreSoftSkillPercentile(t *testing.T) {
	comm := likertQ("COMMUNICATION", 1, false)
	team := likertQ("TEAMWORK", 1, false)
	snap := WeightSnapshot{
		TemplateID:   uuid.New(),
		TemplateKind: templateModel.KindCompetency,
		Questions:    []SnapshotQuestion{comm, team},
		Weights: []SnapshotWeight{
			{QuestionID: comm.QuestionID, TargetKind: "soft_skill", TargetCode: "COMMUNICATION", Value: 1},
			{QuestionID: team.QuestionID, TargetKind: "soft_skill", TargetCode: "TEAMWORK", Value: 1},
		},
	}
	answers := []Answer{
		likertAnswer(comm, 4), // 75
		likertAnswer(team, 4), // 75
	}

	report, err := Score(Input{
		Snapshot: snap,
		Answers:  answers,
		SkillPopulations: map[string][]float64{
			"COMMUNICATION": {10, 20, 30, 40, 50, 60, 70, 80, 90, 95}, // 7 of 10 below 75
			"TEAMWORK":      {50, 60, 80},                             // below floor
		},
		PercentileFloor: 10,
	})
	require.NoError(t, err)

	require.Contains(t, report.SoftSkills, "COMMUNICATION")
	require.NotNil(t, report.SoftSkills["COMMUNICATION"].Percentile)
	assert.Equal(t, 70.0, *report.SoftSkills["COMMUNICATION"].Percentile)

	require.Contains(t, report.SoftSkills, "TEAMWORK")
	assert.Nil(t, report.SoftSkills["TEAMWORK"].Percentile, "small cohorts stay unranked")
}

func TestPercentileFloor(t *testing.T) {
	small := []float64{10, 20, 30}
	assert.Nil(t, Percentile(50, small, 10))

	population := []float64{10, 20, 30, 40, 45, 60, 70, 80, 90, 95}
	p := Percentile(50, population, 10)
	require.NotNil(t, p)
	assert.Equal(t, 50.0, *p)
}

func TestLevelBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, LevelExpert},
		{80, LevelExpert},
		{79.99, LevelAdvanced},
		{60, LevelAdvanced},
		{59.5, LevelIntermediate},
		{40, LevelIntermediate},
		{39.99, LevelBasic},
		{0, LevelBasic},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, LevelOf(c.score), "score %v", c.score)
	}
}

func TestSentimentBands(t *testing.T) {
	assert.Equal(t, SentimentPositive, SentimentOf(75))
	assert.Equal(t, SentimentNeutral, SentimentOf(74.99))
	assert.Equal(t, SentimentNeutral, SentimentOf(50))
	assert.Equal(t, SentimentNegative, SentimentOf(49.99))
}

// The same input always yields the same report.
func TestScoreDeterministic(t *testing.T) {
	q1 := likertQ("MOTIVATION", 1, false)
	q2 := likertQ("GROWTH", 2, true)
	snap := WeightSnapshot{
		TemplateID:   uuid.New(),
		TemplateKind: templateModel.KindUWES,
		Questions:    []SnapshotQuestion{q1, q2},
	}
	answers := []Answer{likertAnswer(q1, 4), likertAnswer(q2, 2)}
	in := Input{Snapshot: snap, Answers: answers, PercentileFloor: 10}

	first, err := Score(in)
	require.NoError(t, err)
	second, err := Score(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestScoreUnknownKind(t *testing.T) {
	_, err := Score(Input{Snapshot: WeightSnapshot{TemplateKind: "mystery"}})
	assert.Error(t, err)
}
