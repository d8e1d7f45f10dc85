package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zanecat/Employability/backend/models"
)

func TestSurveyElementsEmptyCoreSkill(t *testing.T) {
	db := newTestDB(t)
	_, _, user := seedSurvey(t, db)

	selfAssessment := models.SelfAssessment{
		Title:      "Empty survey",
		CoreSkills: []models.CoreSkill{{Name: "Nothing yet"}},
	}
	require.NoError(t, db.Create(&selfAssessment).Error)

	skills := NewCoreSkillService(db)
	coreSkill, err := skills.Find(selfAssessment.CoreSkills[0].ID)
	require.NoError(t, err)

	surveyElements, err := skills.SurveyElements(coreSkill, user)
	require.NoError(t, err)
	assert.NotNil(t, surveyElements)
	assert.Empty(t, surveyElements)
}

func TestSurveyElementsUnanswered(t *testing.T) {
	db := newTestDB(t)
	_, coreSkill, user := seedSurvey(t, db)
	skills := NewCoreSkillService(db)

	surveyElements, err := skills.SurveyElements(coreSkill, user)
	require.NoError(t, err)
	require.Len(t, surveyElements, 3)

	// Detailed first, then text, then simplified; nothing answered yet
	_, ok := surveyElements[0].(*models.DetailedSurveyElement)
	assert.True(t, ok)
	_, ok = surveyElements[1].(*models.TextSurveyElement)
	assert.True(t, ok)
	_, ok = surveyElements[2].(*models.SimplifiedSurveyElement)
	assert.True(t, ok)
	for _, se := range surveyElements {
		assert.Nil(t, se.SubAnswer())
	}
}

func TestMostRecentOrNewAnswerCreatesOnce(t *testing.T) {
	db := newTestDB(t)
	_, coreSkill, user := seedSurvey(t, db)
	skills := NewCoreSkillService(db)

	first, err := skills.MostRecentOrNewAnswer(coreSkill, user)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := skills.MostRecentOrNewAnswer(coreSkill, user)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestMostRecentAnswerPicksLatest(t *testing.T) {
	db := newTestDB(t)
	selfAssessment, coreSkill, user := seedSurvey(t, db)

	old := models.Answer{SelfAssessmentID: selfAssessment.ID, BasicUserID: user.ID}
	old.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&old).Error)

	recent := models.Answer{SelfAssessmentID: selfAssessment.ID, BasicUserID: user.ID}
	require.NoError(t, db.Create(&recent).Error)

	skills := NewCoreSkillService(db)
	resolved, err := skills.MostRecentOrNewAnswer(coreSkill, user)
	require.NoError(t, err)
	assert.Equal(t, recent.ID, resolved.ID)
}

func TestSaveAnswersAndIsFinished(t *testing.T) {
	db := newTestDB(t)
	_, coreSkill, user := seedSurvey(t, db)
	skills := NewCoreSkillService(db)

	answer, err := skills.MostRecentOrNewAnswer(coreSkill, user)
	require.NoError(t, err)

	element := coreSkill.DetailedElements[0]
	require.NoError(t, skills.SaveDetailedAnswer(answer, element.ID, element.DetailedOptions[0].ID))

	// One answered question out of three is not finished
	finished, err := skills.IsFinished(coreSkill, user)
	require.NoError(t, err)
	assert.False(t, finished)

	require.NoError(t, skills.SaveTextAnswer(answer, coreSkill.TextElements[0].ID, "Shipped a release together."))
	require.NoError(t, skills.SaveSimplifiedAnswer(answer, coreSkill.SimplifiedElements[0].ID, 8))

	finished, err = skills.IsFinished(coreSkill, user)
	require.NoError(t, err)
	assert.True(t, finished)
}

func TestIsFinishedNeedsMatchingSubAnswers(t *testing.T) {
	db := newTestDB(t)
	selfAssessment, coreSkill, user := seedSurvey(t, db)
	skills := NewCoreSkillService(db)

	// An answer with no sub answers for this core skill does not finish it
	answer := models.Answer{SelfAssessmentID: selfAssessment.ID, BasicUserID: user.ID}
	require.NoError(t, db.Create(&answer).Error)

	finished, err := skills.IsFinished(coreSkill, user)
	require.NoError(t, err)
	assert.False(t, finished)
}

func TestSaveDetailedAnswerUpdatesInPlace(t *testing.T) {
	db := newTestDB(t)
	_, coreSkill, user := seedSurvey(t, db)
	skills := NewCoreSkillService(db)

	answer, err := skills.MostRecentOrNewAnswer(coreSkill, user)
	require.NoError(t, err)

	element := coreSkill.DetailedElements[0]
	require.NoError(t, skills.SaveDetailedAnswer(answer, element.ID, element.DetailedOptions[0].ID))
	require.NoError(t, skills.SaveDetailedAnswer(answer, element.ID, element.DetailedOptions[1].ID))

	// Re-answering the same question updates the one sub answer
	var count int64
	require.NoError(t, db.Model(&models.DetailedAnswer{}).
		Where("answer_id = ?", answer.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var subAnswer models.DetailedAnswer
	require.NoError(t, db.Where("answer_id = ?", answer.ID).First(&subAnswer).Error)
	require.NotNil(t, subAnswer.ChoiceID)
	assert.Equal(t, element.DetailedOptions[1].ID, *subAnswer.ChoiceID)
}

func TestSaveDetailedAnswerStaleChoice(t *testing.T) {
	db := newTestDB(t)
	_, coreSkill, user := seedSurvey(t, db)
	skills := NewCoreSkillService(db)

	answer, err := skills.MostRecentOrNewAnswer(coreSkill, user)
	require.NoError(t, err)

	element := coreSkill.DetailedElements[0]
	keep := element.DetailedOptions[0]
	stale := element.DetailedOptions[1]
	require.NoError(t, skills.SaveDetailedAnswer(answer, element.ID, keep.ID))

	// An admin removes the option the open form still offers
	require.NoError(t, db.Delete(&models.DetailedOption{}, stale.ID).Error)

	err = skills.SaveDetailedAnswer(answer, element.ID, stale.ID)
	var concurrencyErr *SurveyConcurrencyError
	require.True(t, errors.As(err, &concurrencyErr))
	assert.ErrorIs(t, err, models.ErrValidation)

	// The previous choice survives the failed save
	var subAnswer models.DetailedAnswer
	require.NoError(t, db.Where("answer_id = ?", answer.ID).First(&subAnswer).Error)
	require.NotNil(t, subAnswer.ChoiceID)
	assert.Equal(t, keep.ID, *subAnswer.ChoiceID)
}

func TestSaveSimplifiedAnswerRange(t *testing.T) {
	db := newTestDB(t)
	_, coreSkill, user := seedSurvey(t, db)
	skills := NewCoreSkillService(db)

	answer, err := skills.MostRecentOrNewAnswer(coreSkill, user)
	require.NoError(t, err)

	elementID := coreSkill.SimplifiedElements[0].ID
	assert.ErrorIs(t, skills.SaveSimplifiedAnswer(answer, elementID, 0), models.ErrValidation)
	assert.ErrorIs(t, skills.SaveSimplifiedAnswer(answer, elementID, 10), models.ErrValidation)
	assert.NoError(t, skills.SaveSimplifiedAnswer(answer, elementID, models.MaxChoice))
}
