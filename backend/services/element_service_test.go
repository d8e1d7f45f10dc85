package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zanecat/Employability/backend/models"
	"gorm.io/gorm"
)

func selfAssessmentCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.SelfAssessment{}).Count(&count).Error)
	return count
}

func TestCreateElementInPlaceWhenNoAnswers(t *testing.T) {
	db := newTestDB(t)
	selfAssessment, coreSkill, _ := seedSurvey(t, db)
	elements := NewElementService(db)

	newVersion, err := elements.CreateTextElement("What motivates you?", coreSkill.ID)
	require.NoError(t, err)
	assert.False(t, newVersion)
	assert.EqualValues(t, 1, selfAssessmentCount(t, db))

	reloaded, err := NewCoreSkillService(db).Find(coreSkill.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.TextElements, 2)

	// New elements go after every existing one
	assert.Equal(t, 4, reloaded.TextElements[1].Position)

	latest, err := elements.GetLatestSelfAssessmentVersion()
	require.NoError(t, err)
	assert.Equal(t, selfAssessment.ID, latest)
}

func TestCreateElementForksWhenAnswered(t *testing.T) {
	db := newTestDB(t)
	selfAssessment, coreSkill, user := seedSurvey(t, db)

	answer := models.Answer{SelfAssessmentID: selfAssessment.ID, BasicUserID: user.ID}
	require.NoError(t, db.Create(&answer).Error)

	elements := NewElementService(db)
	newVersion, err := elements.CreateSimplifiedElement("Rate your punctuality", coreSkill.ID)
	require.NoError(t, err)
	assert.True(t, newVersion)
	assert.EqualValues(t, 2, selfAssessmentCount(t, db))

	latest, err := elements.GetLatestSelfAssessmentVersion()
	require.NoError(t, err)
	assert.NotEqual(t, selfAssessment.ID, latest)

	// The answered version keeps its original schema
	original, err := NewCoreSkillService(db).Find(coreSkill.ID)
	require.NoError(t, err)
	assert.Len(t, original.SimplifiedElements, 1)

	// The copy has the full tree plus the new element, under fresh ids
	forked, err := NewCoreSkillService(db).FindSelfAssessment(latest)
	require.NoError(t, err)
	require.Len(t, forked.CoreSkills, 1)
	copied := forked.CoreSkills[0]
	assert.NotEqual(t, coreSkill.ID, copied.ID)
	assert.Equal(t, coreSkill.Name, copied.Name)
	assert.Len(t, copied.DetailedElements, 1)
	assert.Len(t, copied.TextElements, 1)
	assert.Len(t, copied.SimplifiedElements, 2)

	require.Len(t, copied.DetailedElements[0].DetailedOptions, 2)
	assert.NotEqual(t,
		coreSkill.DetailedElements[0].DetailedOptions[0].ID,
		copied.DetailedElements[0].DetailedOptions[0].ID)
	assert.Equal(t,
		coreSkill.DetailedElements[0].DetailedOptions[0].Description,
		copied.DetailedElements[0].DetailedOptions[0].Description)

	// The answer still belongs to the original version
	var kept models.Answer
	require.NoError(t, db.First(&kept, answer.ID).Error)
	assert.Equal(t, selfAssessment.ID, kept.SelfAssessmentID)
}

func TestCreateDetailedElementCarriesOptions(t *testing.T) {
	db := newTestDB(t)
	_, coreSkill, _ := seedSurvey(t, db)
	elements := NewElementService(db)

	newVersion, err := elements.CreateDetailedElement("Pick a style", []OptionInput{
		{Description: "Lead", Position: 1},
		{Description: "Follow", Position: 2},
		{Description: "Adapt", Position: 3},
	}, coreSkill.ID)
	require.NoError(t, err)
	assert.False(t, newVersion)

	reloaded, err := NewCoreSkillService(db).Find(coreSkill.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.DetailedElements, 2)
	assert.Len(t, reloaded.DetailedElements[1].DetailedOptions, 3)
}

func TestEditElementNeverForks(t *testing.T) {
	db := newTestDB(t)
	selfAssessment, coreSkill, user := seedSurvey(t, db)

	answer := models.Answer{SelfAssessmentID: selfAssessment.ID, BasicUserID: user.ID}
	require.NoError(t, db.Create(&answer).Error)

	elements := NewElementService(db)
	element := coreSkill.DetailedElements[0]
	err := elements.EditDetailedElement(element.ID, "How do you split credit?", []OptionUpdate{
		{ID: element.DetailedOptions[0].ID, Description: "Almost never"},
	})
	require.NoError(t, err)

	// Edits land in place even though the survey has answers
	assert.EqualValues(t, 1, selfAssessmentCount(t, db))

	reloaded, err := NewCoreSkillService(db).Find(coreSkill.ID)
	require.NoError(t, err)
	assert.Equal(t, "How do you split credit?", reloaded.DetailedElements[0].Description)
	assert.Equal(t, "Almost never", reloaded.DetailedElements[0].DetailedOptions[0].Description)
}

func TestDeleteElementNeverForks(t *testing.T) {
	db := newTestDB(t)
	selfAssessment, coreSkill, user := seedSurvey(t, db)

	answer := models.Answer{SelfAssessmentID: selfAssessment.ID, BasicUserID: user.ID}
	require.NoError(t, db.Create(&answer).Error)

	elements := NewElementService(db)
	require.NoError(t, elements.DeleteDetailedElement(coreSkill.ID, coreSkill.DetailedElements[0].ID))
	assert.EqualValues(t, 1, selfAssessmentCount(t, db))

	reloaded, err := NewCoreSkillService(db).Find(coreSkill.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.DetailedElements)

	// Deleting an element that belongs to another core skill is refused
	err = elements.DeleteTextElement(coreSkill.ID+100, coreSkill.TextElements[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetLatestSelfAssessmentVersionEmpty(t *testing.T) {
	db := newTestDB(t)
	elements := NewElementService(db)

	latest, err := elements.GetLatestSelfAssessmentVersion()
	require.NoError(t, err)
	assert.Zero(t, latest)
}
