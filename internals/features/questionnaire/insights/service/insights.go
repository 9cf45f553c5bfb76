// file: internals/features/questionnaire/insights/service/insights.go
package service

import (
	"sort"

	scoring "moobee_backend/internals/features/questionnaire/scoring/service"
)

/* =========================================================
   Derived artifacts: strengths, improvements, recommendations
   ========================================================= */

const (
	maxStrengths    = 3
	maxImprovements = 3

	// applied to targets that carry no explicit role policy
	defaultTargetScore = 70.0
	defaultPriority    = 4
)

type Strength struct {
	Code  string  `json:"code"`
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

type Improvement struct {
	Code   string  `json:"code"`
	Score  float64 `json:"score"`
	Target float64 `json:"target"`
	Gap    float64 `json:"gap"`
}

type Recommendation struct {
	Type        string `json:"type"` // training | mentoring | reading | stretch_project | development_plan
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"` // low | medium | high
	Effort      string `json:"effort"` // easy | medium | hard
	Link        string `json:"link,omitempty"`
}

type Insights struct {
	Strengths       []Strength       `json:"strengths"`
	Improvements    []Improvement    `json:"improvements"`
	Recommendations []Recommendation `json:"recommendations"`
	Sentiment       string           `json:"sentiment,omitempty"`
}

// one scored target with its policy context
type target struct {
	code     string
	score    float64
	level    string
	priority int
	goal     float64
}

// Generate derives insights from a scored report. For assessments with
// role context the targets are the role's soft skills; otherwise the
// category aggregates with default policy.
func Generate(report *scoring.Report, policy []scoring.RoleSkillPolicy) Insights {
	targets := collectTargets(report, policy)

	var met, missed []target
	for _, t := range targets {
		if t.score >= t.goal {
			met = append(met, t)
		} else {
			missed = append(missed, t)
		}
	}

	// strengths: lower priority number first, then higher score
	sort.SliceStable(met, func(i, j int) bool {
		if met[i].priority != met[j].priority {
			return met[i].priority < met[j].priority
		}
		if met[i].score != met[j].score {
			return met[i].score > met[j].score
		}
		return met[i].code < met[j].code
	})

	// improvements: lower priority number first, then larger gap
	sort.SliceStable(missed, func(i, j int) bool {
		if missed[i].priority != missed[j].priority {
			return missed[i].priority < missed[j].priority
		}
		gi, gj := missed[i].goal-missed[i].score, missed[j].goal-missed[j].score
		if gi != gj {
			return gi > gj
		}
		return missed[i].code < missed[j].code
	})

	out := Insights{Sentiment: report.Sentiment}

	for i, t := range met {
		if i == maxStrengths {
			break
		}
		out.Strengths = append(out.Strengths, Strength{Code: t.code, Score: t.score, Level: t.level})
	}
	for i, t := range missed {
		if i == maxImprovements {
			break
		}
		imp := Improvement{Code: t.code, Score: t.score, Target: t.goal, Gap: t.goal - t.score}
		out.Improvements = append(out.Improvements, imp)
		out.Recommendations = append(out.Recommendations, Recommend(t.code, imp.Gap))
	}

	return out
}

func collectTargets(report *scoring.Report, policy []scoring.RoleSkillPolicy) []target {
	byCode := map[string]scoring.RoleSkillPolicy{}
	for _, p := range policy {
		byCode[p.SkillCode] = p
	}

	var out []target
	if len(report.SoftSkills) > 0 {
		for _, code := range scoring.SortedTargets(report.SoftSkills) {
			ss := report.SoftSkills[code]
			t := target{code: code, score: ss.Raw, level: ss.Level, priority: defaultPriority, goal: defaultTargetScore}
			if p, ok := byCode[code]; ok {
				t.priority = p.Priority
				if p.TargetScore > 0 {
					t.goal = p.TargetScore
				}
			}
			out = append(out, t)
		}
		return out
	}

	for _, code := range scoring.SortedTargets(report.Categories) {
		cs := report.Categories[code]
		out = append(out, target{code: code, score: cs.Average, level: cs.Level, priority: defaultPriority, goal: defaultTargetScore})
	}
	return out
}
