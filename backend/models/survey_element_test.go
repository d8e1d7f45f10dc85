package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyElementPairing(t *testing.T) {
	element := sampleDetailedElement()
	subAnswer := DetailedAnswer{DetailedElementID: element.ID, DetailedElement: element}

	pairing, err := NewDetailedSurveyElement(&element, &subAnswer)
	require.NoError(t, err)
	assert.Equal(t, element.ID, pairing.Element().ElementID())
	assert.NotNil(t, pairing.SubAnswer())
}

func TestSurveyElementPairingMismatch(t *testing.T) {
	element := sampleDetailedElement()
	other := sampleDetailedElement()
	other.ID = 11
	subAnswer := DetailedAnswer{DetailedElementID: other.ID, DetailedElement: other}

	_, err := NewDetailedSurveyElement(&element, &subAnswer)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSurveyElementUnanswered(t *testing.T) {
	element := sampleDetailedElement()

	pairing, err := NewDetailedSurveyElement(&element, nil)
	require.NoError(t, err)
	// The interface value must be nil, not a typed nil pointer
	assert.Nil(t, pairing.SubAnswer())
	assert.True(t, pairing.SubAnswer() == nil)
}

func TestTextSurveyElementPairing(t *testing.T) {
	element := TextElement{Description: "Tell us more", Position: 2}
	element.ID = 20
	subAnswer := TextAnswer{TextElementID: element.ID, TextElement: element, Text: "Sure."}

	pairing, err := NewTextSurveyElement(&element, &subAnswer)
	require.NoError(t, err)
	assert.True(t, pairing.SubAnswer().IsFinished())

	wrong := TextAnswer{TextElement: TextElement{}}
	wrong.TextElement.ID = 21
	_, err = NewTextSurveyElement(&element, &wrong)
	assert.ErrorIs(t, err, ErrValidation)
}
