// file: internals/features/questionnaire/ai/service/fallback.go
package service

import (
	templateModel "moobee_backend/internals/features/questionnaire/templates/model"
)

/* =========================================================
   Built-in default question bank, one set per kind. Served when the
   provider call fails or times out; the caller detects it via
   provider = "fallback" on the response metadata.
   ========================================================= */

const ProviderFallback = "fallback"

type bankItem struct {
	text     string
	category string
	reversed bool
}

var fallbackBank = map[string][]bankItem{
	templateModel.KindBigFive: {
		{"I enjoy exploring new ideas and unfamiliar topics.", "OPENNESS", false},
		{"I prefer sticking to routines I already know.", "OPENNESS", true},
		{"I finish tasks thoroughly and on time.", "CONSCIENTIOUSNESS", false},
		{"I tend to leave things to the last minute.", "CONSCIENTIOUSNESS", true},
		{"I feel energized when working with groups of people.", "EXTRAVERSION", false},
		{"I prefer working alone over group settings.", "EXTRAVERSION", true},
		{"I go out of my way to make others feel comfortable.", "AGREEABLENESS", false},
		{"I find it hard to compromise when I disagree.", "AGREEABLENESS", true},
		{"I stay calm under pressure.", "NEUROTICISM", true},
		{"I often worry about how things might go wrong.", "NEUROTICISM", false},
	},
	templateModel.KindDISC: {
		{"I take charge when a group needs direction.", "DOMINANCE", false},
		{"I push hard to reach ambitious goals.", "DOMINANCE", false},
		{"I enjoy persuading others toward a shared idea.", "INFLUENCE", false},
		{"I build rapport quickly with new people.", "INFLUENCE", false},
		{"I prefer a steady, predictable pace of work.", "STEADINESS", false},
		{"I support teammates patiently through change.", "STEADINESS", false},
		{"I double-check details before calling work done.", "COMPLIANCE", false},
		{"I follow established standards and procedures.", "COMPLIANCE", false},
	},
	templateModel.KindGallupQ12: {
		{"I know what is expected of me at work.", "GENERAL", false},
		{"I have the materials and equipment I need to do my work right.", "AUTONOMY", false},
		{"At work, I have the opportunity to do what I do best every day.", "GROWTH", false},
		{"In the last seven days, I have received recognition or praise for doing good work.", "RECOGNITION", false},
		{"My supervisor, or someone at work, seems to care about me as a person.", "LEADERSHIP", false},
		{"There is someone at work who encourages my development.", "GROWTH", false},
		{"At work, my opinions seem to count.", "AUTONOMY", false},
		{"The mission of my company makes me feel my job is important.", "MOTIVATION", false},
		{"My associates are committed to doing quality work.", "BELONGING", false},
		{"I have a best friend at work.", "BELONGING", false},
		{"In the last six months, someone at work has talked to me about my progress.", "LEADERSHIP", false},
		{"This last year, I have had opportunities at work to learn and grow.", "GROWTH", false},
	},
	templateModel.KindUWES: {
		{"At my work, I feel bursting with energy.", "MOTIVATION", false},
		{"I am enthusiastic about my job.", "MOTIVATION", false},
		{"I am immersed in my work.", "MOTIVATION", false},
		{"My job inspires me.", "MOTIVATION", false},
		{"When I get up in the morning, I feel like going to work.", "MOTIVATION", false},
		{"I feel happy when I am working intensely.", "WORK_LIFE_BALANCE", false},
		{"I am proud of the work that I do.", "RECOGNITION", false},
		{"I get carried away when I am working.", "MOTIVATION", false},
		{"At my job, I am mentally resilient.", "GENERAL", false},
	},
}

var genericFallback = []bankItem{
	{"I clearly understand what success looks like in my role.", "GENERAL", false},
	{"I receive useful feedback on my work.", "GENERAL", false},
	{"I have what I need to do my job well.", "GENERAL", false},
	{"I can see how my work contributes to team goals.", "GENERAL", false},
	{"I am satisfied with my opportunities to develop.", "GENERAL", false},
	{"I would recommend this team as a good place to work.", "GENERAL", false},
}

// FallbackQuestions returns count default questions for a kind, cycling
// through the bank when count exceeds it.
func FallbackQuestions(kind string, count int) []GeneratedQuestion {
	bank := fallbackBank[kind]
	if len(bank) == 0 {
		bank = genericFallback
	}

	out := make([]GeneratedQuestion, 0, count)
	for i := 0; i < count; i++ {
		item := bank[i%len(bank)]
		out = append(out, GeneratedQuestion{
			Text:       item.text,
			Category:   item.category,
			Kind:       templateModel.QuestionKindLikert,
			ScaleMin:   1,
			ScaleMax:   5,
			Weight:     1,
			IsReversed: item.reversed,
		})
	}
	return out
}
