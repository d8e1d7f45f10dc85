package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDetailedElement() DetailedElement {
	element := DetailedElement{
		Description: "How do you plan your week?",
		Position:    1,
		DetailedOptions: []DetailedOption{
			{Description: "Loosely", Position: 1},
			{Description: "In detail", Position: 2},
		},
	}
	element.ID = 10
	element.DetailedOptions[0].ID = 100
	element.DetailedOptions[1].ID = 101
	return element
}

func TestDetailedAnswerSetChoice(t *testing.T) {
	element := sampleDetailedElement()
	subAnswer := DetailedAnswer{DetailedElement: element}

	require.NoError(t, subAnswer.SetChoiceAndValidate(&element.DetailedOptions[0]))
	require.NotNil(t, subAnswer.ChoiceID)
	assert.EqualValues(t, 100, *subAnswer.ChoiceID)
	assert.True(t, subAnswer.IsFinished())

	// A choice from some other element is rejected and the old one kept
	foreign := DetailedOption{Description: "Elsewhere"}
	foreign.ID = 999
	err := subAnswer.SetChoiceAndValidate(&foreign)
	assert.ErrorIs(t, err, ErrValidation)
	require.NotNil(t, subAnswer.ChoiceID)
	assert.EqualValues(t, 100, *subAnswer.ChoiceID)
}

func TestDetailedAnswerNilChoice(t *testing.T) {
	element := sampleDetailedElement()
	subAnswer := DetailedAnswer{DetailedElement: element}

	err := subAnswer.SetChoiceAndValidate(nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, subAnswer.IsFinished())
}

func TestTextAnswerValidation(t *testing.T) {
	subAnswer := TextAnswer{}
	assert.False(t, subAnswer.IsFinished())

	assert.ErrorIs(t, subAnswer.SetTextAndValidate(""), ErrValidation)

	require.NoError(t, subAnswer.SetTextAndValidate("I keep a shared board."))
	assert.True(t, subAnswer.IsFinished())

	// A failed update keeps the previous text
	assert.ErrorIs(t, subAnswer.SetTextAndValidate(""), ErrValidation)
	assert.Equal(t, "I keep a shared board.", subAnswer.Text)
}

func TestSimplifiedAnswerValidation(t *testing.T) {
	subAnswer := SimplifiedAnswer{}
	assert.False(t, subAnswer.IsFinished())

	assert.ErrorIs(t, subAnswer.SetChoiceAndValidate(MinChoice-1), ErrValidation)
	assert.ErrorIs(t, subAnswer.SetChoiceAndValidate(MaxChoice+1), ErrValidation)

	require.NoError(t, subAnswer.SetChoiceAndValidate(MinChoice))
	assert.True(t, subAnswer.IsFinished())
	require.NoError(t, subAnswer.SetChoiceAndValidate(MaxChoice))
	assert.True(t, subAnswer.IsFinished())
}

func TestSubAnswersOrder(t *testing.T) {
	answer := Answer{
		DetailedAnswers:   []DetailedAnswer{{}},
		TextAnswers:       []TextAnswer{{}, {}},
		SimplifiedAnswers: []SimplifiedAnswer{{}},
	}
	subAnswers := answer.SubAnswers()
	require.Len(t, subAnswers, 4)
	assert.IsType(t, &DetailedAnswer{}, subAnswers[0])
	assert.IsType(t, &TextAnswer{}, subAnswers[1])
	assert.IsType(t, &TextAnswer{}, subAnswers[2])
	assert.IsType(t, &SimplifiedAnswer{}, subAnswers[3])
}
