// file: internals/features/questionnaire/scoring/service/scoring.go
package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
)

/* =========================================================
   Inputs
   ========================================================= */

// Answer kinds (tagged union carried next to the question id).
const (
	AnswerKindLikert      = "likert"
	AnswerKindBoolean     = "boolean"
	AnswerKindChoice      = "single_choice"
	AnswerKindMultiChoice = "multiple_choice"
	AnswerKindText        = "open_text"
)

type Answer struct {
	QuestionID uuid.UUID   `json:"question_id"`
	Kind       string      `json:"kind"`
	Value      *float64    `json:"value,omitempty"`      // likert raw / boolean 0|1
	OptionID   *uuid.UUID  `json:"option_id,omitempty"`  // single choice
	OptionIDs  []uuid.UUID `json:"option_ids,omitempty"` // multiple choice
	Text       string      `json:"text,omitempty"`
}

// RoleSkillPolicy is the frozen per-role soft-skill policy row.
type RoleSkillPolicy struct {
	SkillCode   string  `json:"skill_code"`
	Priority    int     `json:"priority"`
	Weight      float64 `json:"weight"` // 0 → derived from priority
	Required    bool    `json:"required"`
	MinScore    float64 `json:"min_score"`
	TargetScore float64 `json:"target_score"`
}

// Input is everything the engine needs; all of it is snapshotted so the
// same Input always produces the same Report.
type Input struct {
	Snapshot   WeightSnapshot
	Answers    []Answer
	RolePolicy []RoleSkillPolicy // nil when no role context
	// Prior overall scores for the same tenant+template, completed
	// attempts only. Percentile stays nil below PercentileFloor.
	Population []float64
	// Prior raw scores per soft-skill code, same scope and floor rule
	// as Population.
	SkillPopulations map[string][]float64
	PercentileFloor  int
}

/* =========================================================
   Outputs
   ========================================================= */

type CategoryScore struct {
	Average  float64 `json:"average"` // 0..100
	Weighted float64 `json:"weighted"`
	Count    int     `json:"count"`
	Weight   float64 `json:"weight"`
	Level    string  `json:"level"`
}

type SoftSkillScore struct {
	Raw        float64  `json:"raw"` // 0..100
	Weighted   float64  `json:"weighted"`
	Percentile *float64 `json:"percentile"`
	Level      string   `json:"level"`
	Priority   int      `json:"priority,omitempty"`
	Target     float64  `json:"target,omitempty"`
	MinScore   float64  `json:"min_score,omitempty"`
	Required   bool     `json:"required,omitempty"`
}

type Report struct {
	Overall    float64                   `json:"overall"` // 0..100
	Percentile *float64                  `json:"percentile"`
	Categories map[string]CategoryScore  `json:"categories"`
	SoftSkills map[string]SoftSkillScore `json:"soft_skills,omitempty"`
	RoleFit    *float64                  `json:"role_fit,omitempty"`
	Sentiment  string                    `json:"sentiment,omitempty"` // engagement only
	Family     string                    `json:"family"`
}

/* =========================================================
   Level bands & published constants
   ========================================================= */

const (
	LevelExpert       = "expert"
	LevelAdvanced     = "advanced"
	LevelIntermediate = "intermediate"
	LevelBasic        = "basic"
)

func LevelOf(score float64) string {
	switch {
	case score >= 80:
		return LevelExpert
	case score >= 60:
		return LevelAdvanced
	case score >= 40:
		return LevelIntermediate
	default:
		return LevelBasic
	}
}

const (
	SentimentPositive = "POSITIVE"
	SentimentNeutral  = "NEUTRAL"
	SentimentNegative = "NEGATIVE"
)

func SentimentOf(overall float64) string {
	switch {
	case overall >= 75:
		return SentimentPositive
	case overall < 50:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// PriorityWeight is the published, non-increasing priority → multiplier
// table. Priority 1 is the most important.
func PriorityWeight(priority int) float64 {
	switch priority {
	case 1:
		return 1.5
	case 2:
		return 1.3
	case 3:
		return 1.2
	case 4:
		return 1.0
	case 5:
		return 0.9
	case 6:
		return 0.8
	case 7:
		return 0.7
	default:
		return 1.0
	}
}

// RequiredSkillPenalty is applied multiplicatively to role-fit when a
// required skill falls below its minimum.
const RequiredSkillPenalty = 0.7

/* =========================================================
   Step 1 — normalization
   ========================================================= */

// Normalize maps one answer onto [0,1]. ok=false excludes the answer
// from numeric scoring (open text, unanswered, zero-width scales).
func Normalize(q *SnapshotQuestion, a *Answer) (x float64, ok bool) {
	switch q.Kind {
	case AnswerKindLikert:
		if a.Value == nil || q.ScaleMax <= q.ScaleMin {
			return 0, false
		}
		x = (*a.Value - float64(q.ScaleMin)) / float64(q.ScaleMax-q.ScaleMin)
	case AnswerKindBoolean:
		if a.Value == nil {
			return 0, false
		}
		if *a.Value != 0 {
			x = 1
		}
	case AnswerKindChoice:
		if a.OptionID == nil {
			return 0, false
		}
		v, found := optionValue(q, *a.OptionID)
		if !found {
			return 0, false
		}
		x, ok = normalizeAgainstOptions(q, v)
		if !ok {
			return 0, false
		}
	case AnswerKindMultiChoice:
		if len(a.OptionIDs) == 0 {
			return 0, false
		}
		var sum float64
		var n int
		for _, id := range a.OptionIDs {
			v, found := optionValue(q, id)
			if !found {
				continue
			}
			nv, okv := normalizeAgainstOptions(q, v)
			if !okv {
				continue
			}
			sum += nv
			n++
		}
		if n == 0 {
			return 0, false
		}
		x = sum / float64(n)
	default: // open_text and unknown kinds carry no numeric value
		return 0, false
	}

	x = clamp01(x)
	if q.Reversed {
		x = 1 - x
	}
	return x, true
}

func optionValue(q *SnapshotQuestion, id uuid.UUID) (float64, bool) {
	for _, o := range q.Options {
		if o.OptionID == id {
			return o.Value, true
		}
	}
	return 0, false
}

// normalizeAgainstOptions scales a declared option value against the
// question's min/max option values.
func normalizeAgainstOptions(q *SnapshotQuestion, v float64) (float64, bool) {
	if len(q.Options) == 0 {
		return 0, false
	}
	min, max := q.Options[0].Value, q.Options[0].Value
	for _, o := range q.Options[1:] {
		if o.Value < min {
			min = o.Value
		}
		if o.Value > max {
			max = o.Value
		}
	}
	if max == min {
		return 0, false
	}
	return (v - min) / (max - min), true
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

/* =========================================================
   Steps 2–7 — aggregation, role weighting, overall, percentile
   ========================================================= */

type accumulator struct {
	weighted float64
	weight   float64
	count    int
}

// Score runs the whole pipeline. It is a pure function of Input; GENERAL
// is the default target for questions with no explicit weight mapping.
func Score(in Input) (Report, error) {
	snap := &in.Snapshot
	family := snap.Family()
	if family == "" {
		return Report{}, fmt.Errorf("unknown template kind %q", snap.TemplateKind)
	}

	// per-question area/soft-skill mappings
	areaMaps := map[uuid.UUID][]SnapshotWeight{}
	skillMaps := map[uuid.UUID][]SnapshotWeight{}
	for _, w := range snap.Weights {
		switch w.TargetKind {
		case "soft_skill":
			skillMaps[w.QuestionID] = append(skillMaps[w.QuestionID], w)
		default:
			areaMaps[w.QuestionID] = append(areaMaps[w.QuestionID], w)
		}
	}

	categories := map[string]*accumulator{}
	skills := map[string]*accumulator{}
	var overallWeighted, overallWeight float64

	for i := range in.Answers {
		a := &in.Answers[i]
		q := snap.Question(a.QuestionID)
		if q == nil {
			continue
		}
		if q.Weight <= 0 {
			// zero effective weight questions are dropped
			continue
		}
		x, ok := Normalize(q, a)
		if !ok {
			continue
		}

		overallWeighted += x * q.Weight
		overallWeight += q.Weight

		// category / area path: explicit mappings win, otherwise the
		// question's own category at weight 1 (GENERAL when unset).
		if maps := areaMaps[a.QuestionID]; len(maps) > 0 {
			for _, w := range maps {
				v := x
				if w.Reversed {
					v = 1 - v
				}
				eff := q.Weight * w.Value
				if eff <= 0 {
					continue
				}
				acc := getAcc(categories, w.TargetCode)
				acc.weighted += v * eff
				acc.weight += eff
				acc.count++
			}
		} else {
			code := q.Category
			if code == "" {
				code = templateModel.CategoryGeneral
			}
			acc := getAcc(categories, code)
			acc.weighted += x * q.Weight
			acc.weight += q.Weight
			acc.count++
		}

		for _, w := range skillMaps[a.QuestionID] {
			v := x
			if w.Reversed {
				v = 1 - v
			}
			eff := q.Weight * w.Value
			if eff <= 0 {
				continue
			}
			acc := getAcc(skills, w.TargetCode)
			acc.weighted += v * eff
			acc.weight += eff
			acc.count++
		}
	}

	report := Report{
		Family:     family,
		Categories: map[string]CategoryScore{},
	}

	// publish aggregates on a 0..100 scale; zero-weight targets omitted
	for code, acc := range categories {
		if acc.weight <= 0 {
			continue
		}
		avg := acc.weighted / acc.weight * 100
		report.Categories[code] = CategoryScore{
			Average:  round2(avg),
			Weighted: round2(acc.weighted * 100),
			Count:    acc.count,
			Weight:   acc.weight,
			Level:    LevelOf(avg),
		}
	}

	if len(skills) > 0 {
		report.SoftSkills = map[string]SoftSkillScore{}
		for code, acc := range skills {
			if acc.weight <= 0 {
				continue
			}
			raw := acc.weighted / acc.weight * 100
			report.SoftSkills[code] = SoftSkillScore{
				Raw:        round2(raw),
				Percentile: Percentile(raw, in.SkillPopulations[code], in.PercentileFloor),
				Level:      LevelOf(raw),
			}
		}
	}

	// role context: priority-weighted skills and role fit
	if family == templateModel.FamilyAssessment && len(in.RolePolicy) > 0 && len(report.SoftSkills) > 0 {
		applyRolePolicy(&report, in.RolePolicy)
	}

	// overall
	switch {
	case family == templateModel.FamilyEngagement:
		if overallWeight > 0 {
			report.Overall = round2(overallWeighted / overallWeight * 100)
		}
		report.Sentiment = SentimentOf(report.Overall)
	case report.RoleFit != nil:
		report.Overall = overallFromSkills(report.SoftSkills, in.RolePolicy)
	default:
		report.Overall = overallFromCategories(report.Categories)
	}

	report.Percentile = Percentile(report.Overall, in.Population, in.PercentileFloor)

	return report, nil
}

func applyRolePolicy(report *Report, policy []RoleSkillPolicy) {
	var weighted, weightSum float64
	penalized := false
	matched := 0

	for _, p := range policy {
		ss, ok := report.SoftSkills[p.SkillCode]
		if !ok {
			continue
		}
		matched++
		pw := p.Weight
		if pw <= 0 {
			pw = PriorityWeight(p.Priority)
		}
		ss.Weighted = round2(ss.Raw * pw)
		ss.Priority = p.Priority
		ss.Target = p.TargetScore
		ss.MinScore = p.MinScore
		ss.Required = p.Required
		report.SoftSkills[p.SkillCode] = ss

		weighted += ss.Raw * pw
		weightSum += pw
		if p.Required && ss.Raw < p.MinScore {
			penalized = true
		}
	}

	if matched == 0 || weightSum <= 0 {
		return
	}
	fit := weighted / weightSum
	if penalized {
		fit *= RequiredSkillPenalty
	}
	fit = round2(fit)
	report.RoleFit = &fit
}

func overallFromSkills(skills map[string]SoftSkillScore, policy []RoleSkillPolicy) float64 {
	var weighted, weightSum float64
	for _, p := range policy {
		ss, ok := skills[p.SkillCode]
		if !ok {
			continue
		}
		pw := p.Weight
		if pw <= 0 {
			pw = PriorityWeight(p.Priority)
		}
		weighted += ss.Raw * pw
		weightSum += pw
	}
	if weightSum <= 0 {
		return 0
	}
	return round2(weighted / weightSum)
}

func overallFromCategories(categories map[string]CategoryScore) float64 {
	var weighted, weightSum float64
	for _, cs := range categories {
		weighted += cs.Average * cs.Weight
		weightSum += cs.Weight
	}
	if weightSum <= 0 {
		return 0
	}
	return round2(weighted / weightSum)
}

// Percentile is the share of the prior population scoring strictly below
// the given score. Below the floor it is nil rather than misleading.
func Percentile(score float64, population []float64, floor int) *float64 {
	if floor <= 0 {
		floor = 10
	}
	if len(population) < floor {
		return nil
	}
	below := 0
	for _, s := range population {
		if s < score {
			below++
		}
	}
	p := round2(float64(below) / float64(len(population)) * 100)
	return &p
}

/* =========================================================
   misc
   ========================================================= */

func getAcc(m map[string]*accumulator, key string) *accumulator {
	acc, ok := m[key]
	if !ok {
		acc = &accumulator{}
		m[key] = acc
	}
	return acc
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}

// SortedTargets returns the map keys in deterministic order; list
// artifacts derived from the report use it so recomputation is stable.
func SortedTargets[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
