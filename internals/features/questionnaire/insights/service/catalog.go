// file: internals/features/questionnaire/insights/service/catalog.go
package service

import "strings"

/* =========================================================
   Recommendation catalog, tag-indexed by skill/category code
   ========================================================= */

const (
	RecTraining        = "training"
	RecMentoring       = "mentoring"
	RecReading         = "reading"
	RecStretchProject  = "stretch_project"
	RecDevelopmentPlan = "development_plan"

	ImpactLow    = "low"
	ImpactMedium = "medium"
	ImpactHigh   = "high"

	EffortEasy   = "easy"
	EffortMedium = "medium"
	EffortHard   = "hard"
)

type catalogEntry struct {
	Type        string
	Title       string
	Description string
	Impact      string
	Effort      string
	Link        string
}

var recommendationCatalog = map[string][]catalogEntry{
	"COMMUNICATION": {
		{RecTraining, "Active listening workshop", "Structured practice on feedback loops and clarity under pressure.", ImpactHigh, EffortMedium, ""},
		{RecReading, "Crucial Conversations", "Frameworks for high-stakes conversations.", ImpactMedium, EffortEasy, ""},
	},
	"LEADERSHIP": {
		{RecMentoring, "Shadow a senior lead", "Pair with an experienced lead through one delivery cycle.", ImpactHigh, EffortMedium, ""},
		{RecStretchProject, "Lead a cross-team initiative", "Own scoping and coordination for a small multi-team effort.", ImpactHigh, EffortHard, ""},
	},
	"MOTIVATION": {
		{RecMentoring, "Career path conversation", "Map personal goals to near-term growth opportunities.", ImpactMedium, EffortEasy, ""},
	},
	"WORK_LIFE_BALANCE": {
		{RecTraining, "Workload planning session", "Review commitments and recovery practices with the manager.", ImpactMedium, EffortEasy, ""},
	},
	"GROWTH": {
		{RecTraining, "Skills gap assessment", "Identify one concrete skill to develop this quarter.", ImpactMedium, EffortMedium, ""},
	},
	"RECOGNITION": {
		{RecMentoring, "Visibility check-in", "Review recent contributions and how they are surfaced.", ImpactMedium, EffortEasy, ""},
	},
	"AUTONOMY": {
		{RecStretchProject, "Own a deliverable end-to-end", "Take full ownership of one scoped deliverable.", ImpactMedium, EffortMedium, ""},
	},
	"BELONGING": {
		{RecMentoring, "Buddy pairing", "Pair with a peer outside the immediate team.", ImpactMedium, EffortEasy, ""},
	},
	"CONSCIENTIOUSNESS": {
		{RecTraining, "Personal task system", "Adopt a lightweight planning and follow-through routine.", ImpactMedium, EffortEasy, ""},
	},
	"TEAMWORK": {
		{RecStretchProject, "Cross-functional rotation", "Join a short rotation in an adjacent team.", ImpactHigh, EffortMedium, ""},
	},
}

// Recommend picks the catalog entry for a code, preferring higher-impact
// entries for larger gaps. Codes without an entry get the generic
// development-plan fallback.
func Recommend(code string, gap float64) Recommendation {
	entries := recommendationCatalog[strings.ToUpper(code)]
	if len(entries) == 0 {
		return Recommendation{
			Type:        RecDevelopmentPlan,
			Code:        code,
			Title:       "Personalized development plan",
			Description: "Work with your manager on a development plan targeting " + code + ".",
			Impact:      ImpactMedium,
			Effort:      EffortMedium,
		}
	}

	pick := entries[0]
	if gap < 15 && len(entries) > 1 {
		// small gap: prefer the lighter entry
		pick = entries[len(entries)-1]
	}
	return Recommendation{
		Type:        pick.Type,
		Code:        code,
		Title:       pick.Title,
		Description: pick.Description,
		Impact:      pick.Impact,
		Effort:      pick.Effort,
		Link:        pick.Link,
	}
}
