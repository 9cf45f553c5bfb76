// file: internals/features/questionnaire/assignments/dto/assignment_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }
func s(v string) *string   { return &v }

func TestSubmitHashIgnoresAnswerOrder(t *testing.T) {
	q1, q2 := uuid.New(), uuid.New()

	a := SubmitRequest{Responses: []SubmitAnswerRequest{
		{QuestionID: q1, Value: f(4)},
		{QuestionID: q2, Value: f(2)},
	}}
	b := SubmitRequest{Responses: []SubmitAnswerRequest{
		{QuestionID: q2, Value: f(2)},
		{QuestionID: q1, Value: f(4)},
	}}

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestSubmitHashIgnoresOptionOrder(t *testing.T) {
	q := uuid.New()
	o1, o2 := uuid.New(), uuid.New()

	a := SubmitRequest{Responses: []SubmitAnswerRequest{{QuestionID: q, OptionIDs: []uuid.UUID{o1, o2}}}}
	b := SubmitRequest{Responses: []SubmitAnswerRequest{{QuestionID: q, OptionIDs: []uuid.UUID{o2, o1}}}}

	assert.Equal(t, a.Hash(), b.Hash())
}

func TestSubmitHashSensitiveToContent(t *testing.T) {
	q := uuid.New()

	base := SubmitRequest{Responses: []SubmitAnswerRequest{{QuestionID: q, Value: f(4)}}}
	changedValue := SubmitRequest{Responses: []SubmitAnswerRequest{{QuestionID: q, Value: f(5)}}}
	withText := SubmitRequest{Responses: []SubmitAnswerRequest{{QuestionID: q, Value: f(4), Text: s("context")}}}

	assert.NotEqual(t, base.Hash(), changedValue.Hash())
	assert.NotEqual(t, base.Hash(), withText.Hash())
}

func TestSubmitHashStable(t *testing.T) {
	req := SubmitRequest{Responses: []SubmitAnswerRequest{
		{QuestionID: uuid.New(), Value: f(3)},
		{QuestionID: uuid.New(), Text: s("free form")},
	}}
	assert.Equal(t, req.Hash(), req.Hash())
	assert.Len(t, req.Hash(), 64, "hex sha256")
}
