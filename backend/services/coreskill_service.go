package services

import (
	"errors"

	"github.com/zanecat/Employability/backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SurveyConcurrencyError reports that the survey schema changed between the
// moment a form was rendered and the moment it was submitted, for example
// when an option was deleted while the user was filling the page in. The
// caller should send the user back to a freshly loaded survey page.
type SurveyConcurrencyError struct {
	Cause error
}

func (e *SurveyConcurrencyError) Error() string {
	return "survey changed concurrently: " + e.Cause.Error()
}

func (e *SurveyConcurrencyError) Unwrap() error { return e.Cause }

// CoreSkillService resolves survey pages against a user's answers and
// persists new sub answers.
type CoreSkillService struct {
	DB *gorm.DB
}

func NewCoreSkillService(db *gorm.DB) *CoreSkillService {
	return &CoreSkillService{DB: db}
}

// Find returns the core skill with its full element tree, or nil if it
// doesn't exist.
func (cs *CoreSkillService) Find(id uint) (*models.CoreSkill, error) {
	var coreSkill models.CoreSkill
	err := cs.DB.
		Preload("DetailedElements.DetailedOptions").
		Preload("TextElements").
		Preload("SimplifiedElements").
		First(&coreSkill, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coreSkill, nil
}

// FindSelfAssessment returns the self assessment with its full core skill
// tree, or nil if it doesn't exist.
func (cs *CoreSkillService) FindSelfAssessment(id uint) (*models.SelfAssessment, error) {
	var selfAssessment models.SelfAssessment
	err := cs.DB.
		Preload("CoreSkills.DetailedElements.DetailedOptions").
		Preload("CoreSkills.TextElements").
		Preload("CoreSkills.SimplifiedElements").
		First(&selfAssessment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &selfAssessment, nil
}

// FindForSelfAssessment lists the core skills of a self assessment in id
// order, or nil if the self assessment doesn't exist.
func (cs *CoreSkillService) FindForSelfAssessment(selfAssessmentID uint) ([]models.CoreSkill, error) {
	var selfAssessment models.SelfAssessment
	err := cs.DB.First(&selfAssessment, selfAssessmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var coreSkills []models.CoreSkill
	err = cs.DB.
		Preload("DetailedElements.DetailedOptions").
		Preload("TextElements").
		Preload("SimplifiedElements").
		Where("self_assessment_id = ?", selfAssessment.ID).
		Order("id ASC").
		Find(&coreSkills).Error
	if err != nil {
		return nil, err
	}
	return coreSkills, nil
}

// SurveyElements pairs every element of the core skill with the matching
// sub answer from the user's most recent answer for the core skill's self
// assessment. Elements the user has not answered are paired with a nil sub
// answer. The result lists detailed elements first, then text, then
// simplified.
func (cs *CoreSkillService) SurveyElements(coreSkill *models.CoreSkill, user *models.User) ([]models.SurveyElement, error) {
	elementCount := len(coreSkill.DetailedElements) +
		len(coreSkill.TextElements) + len(coreSkill.SimplifiedElements)
	if elementCount == 0 {
		return []models.SurveyElement{}, nil
	}

	answer, err := cs.mostRecentAnswer(coreSkill.SelfAssessmentID, user.ID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		// A user who has not answered yet sees an empty, unpersisted answer.
		answer = &models.Answer{
			SelfAssessmentID: coreSkill.SelfAssessmentID,
			BasicUserID:      user.ID,
		}
	}

	surveyElements := make([]models.SurveyElement, 0, elementCount)
	for i := range coreSkill.DetailedElements {
		element := &coreSkill.DetailedElements[i]
		pairing, err := models.NewDetailedSurveyElement(element, findDetailedAnswer(answer, element.ID))
		if err != nil {
			return nil, err
		}
		surveyElements = append(surveyElements, pairing)
	}
	for i := range coreSkill.TextElements {
		element := &coreSkill.TextElements[i]
		pairing, err := models.NewTextSurveyElement(element, findTextAnswer(answer, element.ID))
		if err != nil {
			return nil, err
		}
		surveyElements = append(surveyElements, pairing)
	}
	for i := range coreSkill.SimplifiedElements {
		element := &coreSkill.SimplifiedElements[i]
		pairing, err := models.NewSimplifiedSurveyElement(element, findSimplifiedAnswer(answer, element.ID))
		if err != nil {
			return nil, err
		}
		surveyElements = append(surveyElements, pairing)
	}
	return surveyElements, nil
}

// MostRecentOrNewAnswer resolves the user's most recent answer for the core
// skill's self assessment, creating and persisting a new empty answer if
// they have none yet.
func (cs *CoreSkillService) MostRecentOrNewAnswer(coreSkill *models.CoreSkill, user *models.User) (*models.Answer, error) {
	answer, err := cs.mostRecentAnswer(coreSkill.SelfAssessmentID, user.ID)
	if err != nil || answer != nil {
		return answer, err
	}
	answer = &models.Answer{
		SelfAssessmentID: coreSkill.SelfAssessmentID,
		BasicUserID:      user.ID,
	}
	if err := cs.DB.Create(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

// MostRecentAnswer returns the user's latest answer for the self
// assessment, with all sub answers loaded, or an empty unpersisted answer
// if they have none yet.
func (cs *CoreSkillService) MostRecentAnswer(selfAssessment *models.SelfAssessment, user *models.User) (*models.Answer, error) {
	answer, err := cs.mostRecentAnswer(selfAssessment.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		answer = &models.Answer{
			SelfAssessmentID: selfAssessment.ID,
			BasicUserID:      user.ID,
		}
	}
	return answer, nil
}

// AllAnswers lists every answer of every user, with sub answers and the
// answering user loaded, oldest first.
func (cs *CoreSkillService) AllAnswers() ([]models.Answer, error) {
	var answers []models.Answer
	err := cs.DB.
		Preload("BasicUser").
		Preload("DetailedAnswers.DetailedElement.DetailedOptions").
		Preload("DetailedAnswers.Choice").
		Preload("TextAnswers.TextElement").
		Preload("SimplifiedAnswers.SimplifiedElement").
		Order("created_at ASC, id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// SaveDetailedAnswer records the user's choice for a detailed element in
// the answer, updating the existing sub answer for that element if there is
// one. A choice that no longer belongs to the element is reported as a
// *SurveyConcurrencyError: the schema changed while the user was filling
// the form in.
func (cs *CoreSkillService) SaveDetailedAnswer(answer *models.Answer, elementID, choiceID uint) error {
	var element models.DetailedElement
	if err := cs.DB.Preload("DetailedOptions").First(&element, elementID).Error; err != nil {
		return err
	}

	var choice *models.DetailedOption
	var option models.DetailedOption
	err := cs.DB.First(&option, choiceID).Error
	if err == nil {
		choice = &option
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	subAnswer := findDetailedAnswer(answer, element.ID)
	if subAnswer == nil {
		answer.DetailedAnswers = append(answer.DetailedAnswers, models.DetailedAnswer{
			AnswerID:          answer.ID,
			DetailedElementID: element.ID,
			DetailedElement:   element,
		})
		subAnswer = &answer.DetailedAnswers[len(answer.DetailedAnswers)-1]
	} else {
		subAnswer.DetailedElement = element
	}

	if err := subAnswer.SetChoiceAndValidate(choice); err != nil {
		return &SurveyConcurrencyError{Cause: err}
	}
	return cs.DB.Omit(clause.Associations).Save(subAnswer).Error
}

// SaveTextAnswer records the user's text for a text element in the answer,
// updating the existing sub answer for that element if there is one.
func (cs *CoreSkillService) SaveTextAnswer(answer *models.Answer, elementID uint, text string) error {
	var element models.TextElement
	if err := cs.DB.First(&element, elementID).Error; err != nil {
		return err
	}

	subAnswer := findTextAnswer(answer, element.ID)
	if subAnswer == nil {
		answer.TextAnswers = append(answer.TextAnswers, models.TextAnswer{
			AnswerID:      answer.ID,
			TextElementID: element.ID,
			TextElement:   element,
		})
		subAnswer = &answer.TextAnswers[len(answer.TextAnswers)-1]
	}

	if err := subAnswer.SetTextAndValidate(text); err != nil {
		return err
	}
	return cs.DB.Omit(clause.Associations).Save(subAnswer).Error
}

// SaveSimplifiedAnswer records the user's scale choice for a simplified
// element in the answer, updating the existing sub answer for that element
// if there is one.
func (cs *CoreSkillService) SaveSimplifiedAnswer(answer *models.Answer, elementID uint, choice int) error {
	var element models.SimplifiedElement
	if err := cs.DB.First(&element, elementID).Error; err != nil {
		return err
	}

	subAnswer := findSimplifiedAnswer(answer, element.ID)
	if subAnswer == nil {
		answer.SimplifiedAnswers = append(answer.SimplifiedAnswers, models.SimplifiedAnswer{
			AnswerID:            answer.ID,
			SimplifiedElementID: element.ID,
			SimplifiedElement:   element,
		})
		subAnswer = &answer.SimplifiedAnswers[len(answer.SimplifiedAnswers)-1]
	}

	if err := subAnswer.SetChoiceAndValidate(choice); err != nil {
		return err
	}
	return cs.DB.Omit(clause.Associations).Save(subAnswer).Error
}

// IsFinished reports whether the user's most recent answer completes the
// core skill: at least one of its sub answers must be bound to one of the
// core skill's elements, and every such sub answer must be finished. A user
// with no matching sub answers has not finished.
func (cs *CoreSkillService) IsFinished(coreSkill *models.CoreSkill, user *models.User) (bool, error) {
	answer, err := cs.mostRecentAnswer(coreSkill.SelfAssessmentID, user.ID)
	if err != nil || answer == nil {
		return false, err
	}

	matched := 0
	for i := range answer.DetailedAnswers {
		subAnswer := &answer.DetailedAnswers[i]
		if hasDetailedElement(coreSkill, subAnswer.DetailedElementID) {
			matched++
			if !subAnswer.IsFinished() {
				return false, nil
			}
		}
	}
	for i := range answer.TextAnswers {
		subAnswer := &answer.TextAnswers[i]
		if hasTextElement(coreSkill, subAnswer.TextElementID) {
			matched++
			if !subAnswer.IsFinished() {
				return false, nil
			}
		}
	}
	for i := range answer.SimplifiedAnswers {
		subAnswer := &answer.SimplifiedAnswers[i]
		if hasSimplifiedElement(coreSkill, subAnswer.SimplifiedElementID) {
			matched++
			if !subAnswer.IsFinished() {
				return false, nil
			}
		}
	}
	return matched != 0, nil
}

// mostRecentAnswer finds the user's latest answer for the self assessment,
// with all sub answers and their elements loaded, or nil if they have
// none. Timestamps are server assigned; ties go to the later insertion.
func (cs *CoreSkillService) mostRecentAnswer(selfAssessmentID, userID uint) (*models.Answer, error) {
	var answer models.Answer
	err := cs.DB.
		Preload("DetailedAnswers.DetailedElement.DetailedOptions").
		Preload("DetailedAnswers.Choice").
		Preload("TextAnswers.TextElement").
		Preload("SimplifiedAnswers.SimplifiedElement").
		Where("self_assessment_id = ? AND basic_user_id = ?", selfAssessmentID, userID).
		Order("created_at DESC, id DESC").
		First(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

func findDetailedAnswer(answer *models.Answer, elementID uint) *models.DetailedAnswer {
	for i := range answer.DetailedAnswers {
		if answer.DetailedAnswers[i].DetailedElementID == elementID {
			return &answer.DetailedAnswers[i]
		}
	}
	return nil
}

func findTextAnswer(answer *models.Answer, elementID uint) *models.TextAnswer {
	for i := range answer.TextAnswers {
		if answer.TextAnswers[i].TextElementID == elementID {
			return &answer.TextAnswers[i]
		}
	}
	return nil
}

func findSimplifiedAnswer(answer *models.Answer, elementID uint) *models.SimplifiedAnswer {
	for i := range answer.SimplifiedAnswers {
		if answer.SimplifiedAnswers[i].SimplifiedElementID == elementID {
			return &answer.SimplifiedAnswers[i]
		}
	}
	return nil
}

func hasDetailedElement(coreSkill *models.CoreSkill, elementID uint) bool {
	for i := range coreSkill.DetailedElements {
		if coreSkill.DetailedElements[i].ID == elementID {
			return true
		}
	}
	return false
}

func hasTextElement(coreSkill *models.CoreSkill, elementID uint) bool {
	for i := range coreSkill.TextElements {
		if coreSkill.TextElements[i].ID == elementID {
			return true
		}
	}
	return false
}

func hasSimplifiedElement(coreSkill *models.CoreSkill, elementID uint) bool {
	for i := range coreSkill.SimplifiedElements {
		if coreSkill.SimplifiedElements[i].ID == elementID {
			return true
		}
	}
	return false
}
