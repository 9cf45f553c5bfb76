// file: internals/features/questionnaire/templates/model/categories.go
package model

/* =========================================================
   Template kinds & families
   ========================================================= */

const (
	KindBigFive          = "big_five"
	KindDISC             = "disc"
	KindBelbin           = "belbin"
	KindCompetency       = "competency"
	KindCustom           = "custom"
	KindUWES             = "uwes"
	KindGallupQ12        = "gallup_q12"
	KindEngagementCustom = "engagement_custom"
)

const (
	FamilyAssessment = "assessment"
	FamilyEngagement = "engagement"
)

var kindFamilies = map[string]string{
	KindBigFive:          FamilyAssessment,
	KindDISC:             FamilyAssessment,
	KindBelbin:           FamilyAssessment,
	KindCompetency:       FamilyAssessment,
	KindCustom:           FamilyAssessment,
	KindUWES:             FamilyEngagement,
	KindGallupQ12:        FamilyEngagement,
	KindEngagementCustom: FamilyEngagement,
}

// FamilyOf returns "assessment" or "engagement", empty for unknown kinds.
func FamilyOf(kind string) string {
	return kindFamilies[kind]
}

// KindsOf lists the template kinds belonging to a family.
func KindsOf(family string) []string {
	var out []string
	for k, f := range kindFamilies {
		if f == family {
			out = append(out, k)
		}
	}
	return out
}

/* =========================================================
   Question kinds
   ========================================================= */

const (
	QuestionKindLikert         = "likert"
	QuestionKindSingleChoice   = "single_choice"
	QuestionKindMultipleChoice = "multiple_choice"
	QuestionKindOpenText       = "open_text"
)

/* =========================================================
   Category code sets (closed per kind, free for competency/custom)
   ========================================================= */

const CategoryGeneral = "GENERAL"

var engagementAreas = []string{
	"MOTIVATION", "LEADERSHIP", "COMMUNICATION", "WORK_LIFE_BALANCE",
	"BELONGING", "GROWTH", "RECOGNITION", "AUTONOMY", CategoryGeneral,
}

var bigFiveDimensions = []string{
	"OPENNESS", "CONSCIENTIOUSNESS", "EXTRAVERSION", "AGREEABLENESS", "NEUROTICISM",
}

var discDimensions = []string{
	"DOMINANCE", "INFLUENCE", "STEADINESS", "COMPLIANCE",
}

var belbinRoles = []string{
	"PLANT", "RESOURCE_INVESTIGATOR", "COORDINATOR", "SHAPER",
	"MONITOR_EVALUATOR", "TEAMWORKER", "IMPLEMENTER",
	"COMPLETER_FINISHER", "SPECIALIST",
}

func toSet(vals []string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

var categorySets = map[string]map[string]struct{}{
	KindBigFive:          toSet(bigFiveDimensions),
	KindDISC:             toSet(discDimensions),
	KindBelbin:           toSet(belbinRoles),
	KindUWES:             toSet(engagementAreas),
	KindGallupQ12:        toSet(engagementAreas),
	KindEngagementCustom: toSet(engagementAreas),
	// competency & custom: free categories (nil entry)
}

// AllowedCategories returns the closed category set for a kind, or nil
// when the kind accepts free categories.
func AllowedCategories(kind string) map[string]struct{} {
	return categorySets[kind]
}

// CategoryAllowed reports whether a category code is valid for the kind.
func CategoryAllowed(kind, category string) bool {
	set := categorySets[kind]
	if set == nil {
		return category != ""
	}
	_, ok := set[category]
	return ok
}
