package services

import (
	"errors"

	"github.com/zanecat/Employability/backend/models"
	"gorm.io/gorm"
)

// OptionInput carries a detailed option to be created with its element.
type OptionInput struct {
	Description string `json:"description"`
	Position    int    `json:"position"`
}

// OptionUpdate carries a new description for an existing detailed option.
type OptionUpdate struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
}

// ElementService applies schema edits to self assessments while keeping
// historical answers valid. Creating an element on a self assessment that
// already has answers forks a complete copy of the schema into a new
// version instead of touching the answered one. Edits and deletes are
// applied in place and never fork.
type ElementService struct {
	DB *gorm.DB
}

func NewElementService(db *gorm.DB) *ElementService {
	return &ElementService{DB: db}
}

// CreateDetailedElement adds a multiple choice question to the core skill.
// It reports whether a new self assessment version was created; if so, the
// caller should resolve the latest version id afterwards.
func (es *ElementService) CreateDetailedElement(description string, options []OptionInput, coreSkillID uint) (bool, error) {
	position, err := es.nextPosition(coreSkillID)
	if err != nil {
		return false, err
	}
	detailedOptions := make([]models.DetailedOption, 0, len(options))
	for _, option := range options {
		detailedOptions = append(detailedOptions, models.DetailedOption{
			Description: option.Description,
			Position:    option.Position,
		})
	}
	element := models.DetailedElement{
		Description:     description,
		Position:        position,
		DetailedOptions: detailedOptions,
	}
	return es.updateSelfAssessmentVersion(coreSkillID,
		func(db *gorm.DB, liveCoreSkillID uint) error {
			element.CoreSkillID = liveCoreSkillID
			return db.Create(&element).Error
		},
		func(coreSkillCopy *models.CoreSkill) {
			coreSkillCopy.DetailedElements = append(coreSkillCopy.DetailedElements, element)
		})
}

// CreateTextElement adds a free text question to the core skill. It reports
// whether a new self assessment version was created.
func (es *ElementService) CreateTextElement(description string, coreSkillID uint) (bool, error) {
	position, err := es.nextPosition(coreSkillID)
	if err != nil {
		return false, err
	}
	element := models.TextElement{Description: description, Position: position}
	return es.updateSelfAssessmentVersion(coreSkillID,
		func(db *gorm.DB, liveCoreSkillID uint) error {
			element.CoreSkillID = liveCoreSkillID
			return db.Create(&element).Error
		},
		func(coreSkillCopy *models.CoreSkill) {
			coreSkillCopy.TextElements = append(coreSkillCopy.TextElements, element)
		})
}

// CreateSimplifiedElement adds a scale question to the core skill. It
// reports whether a new self assessment version was created.
func (es *ElementService) CreateSimplifiedElement(description string, coreSkillID uint) (bool, error) {
	position, err := es.nextPosition(coreSkillID)
	if err != nil {
		return false, err
	}
	element := models.SimplifiedElement{Description: description, Position: position}
	return es.updateSelfAssessmentVersion(coreSkillID,
		func(db *gorm.DB, liveCoreSkillID uint) error {
			element.CoreSkillID = liveCoreSkillID
			return db.Create(&element).Error
		},
		func(coreSkillCopy *models.CoreSkill) {
			coreSkillCopy.SimplifiedElements = append(coreSkillCopy.SimplifiedElements, element)
		})
}

// EditDetailedElement updates the description of an existing detailed
// element and of its listed options, in place.
func (es *ElementService) EditDetailedElement(elementID uint, description string, options []OptionUpdate) error {
	var element models.DetailedElement
	if err := es.DB.First(&element, elementID).Error; err != nil {
		return err
	}
	return es.DB.Transaction(func(tx *gorm.DB) error {
		element.Description = description
		if err := tx.Save(&element).Error; err != nil {
			return err
		}
		for _, update := range options {
			var option models.DetailedOption
			if err := tx.First(&option, update.ID).Error; err != nil {
				return err
			}
			option.Description = update.Description
			if err := tx.Save(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EditTextElement updates the description of an existing text element in
// place.
func (es *ElementService) EditTextElement(elementID uint, description string) error {
	var element models.TextElement
	if err := es.DB.First(&element, elementID).Error; err != nil {
		return err
	}
	element.Description = description
	return es.DB.Save(&element).Error
}

// EditSimplifiedElement updates the description of an existing simplified
// element in place.
func (es *ElementService) EditSimplifiedElement(elementID uint, description string) error {
	var element models.SimplifiedElement
	if err := es.DB.First(&element, elementID).Error; err != nil {
		return err
	}
	element.Description = description
	return es.DB.Save(&element).Error
}

// DeleteDetailedElement removes a detailed element and its options from the
// core skill, in place.
func (es *ElementService) DeleteDetailedElement(coreSkillID, elementID uint) error {
	var element models.DetailedElement
	err := es.DB.Where("id = ? AND core_skill_id = ?", elementID, coreSkillID).First(&element).Error
	if err != nil {
		return err
	}
	return es.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("detailed_element_id = ?", element.ID).Delete(&models.DetailedOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&element).Error
	})
}

// DeleteTextElement removes a text element from the core skill, in place.
func (es *ElementService) DeleteTextElement(coreSkillID, elementID uint) error {
	var element models.TextElement
	err := es.DB.Where("id = ? AND core_skill_id = ?", elementID, coreSkillID).First(&element).Error
	if err != nil {
		return err
	}
	return es.DB.Delete(&element).Error
}

// DeleteSimplifiedElement removes a simplified element from the core skill,
// in place.
func (es *ElementService) DeleteSimplifiedElement(coreSkillID, elementID uint) error {
	var element models.SimplifiedElement
	err := es.DB.Where("id = ? AND core_skill_id = ?", elementID, coreSkillID).First(&element).Error
	if err != nil {
		return err
	}
	return es.DB.Delete(&element).Error
}

// GetLatestSelfAssessmentVersion returns the id of the most recently
// created self assessment, or 0 if none exists.
func (es *ElementService) GetLatestSelfAssessmentVersion() (uint, error) {
	var selfAssessment models.SelfAssessment
	err := es.DB.Order("created_at DESC, id DESC").First(&selfAssessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return selfAssessment.ID, nil
}

// updateSelfAssessmentVersion keeps the live self assessment when it has no
// answers and applies the new element in place. When the self assessment
// already has answers, the whole schema is forked into a new version with
// the element attached to the copy of the target core skill, and true is
// returned.
func (es *ElementService) updateSelfAssessmentVersion(
	coreSkillID uint,
	createInPlace func(*gorm.DB, uint) error,
	attachToCopy func(*models.CoreSkill),
) (bool, error) {
	selfAssessment, err := es.selfAssessmentOf(coreSkillID)
	if err != nil {
		return false, err
	}

	var answerCount int64
	err = es.DB.Model(&models.Answer{}).
		Where("self_assessment_id = ?", selfAssessment.ID).
		Count(&answerCount).Error
	if err != nil {
		return false, err
	}

	if answerCount == 0 {
		return false, createInPlace(es.DB, coreSkillID)
	}

	// The fork is all or nothing: a persistence failure part way through
	// must not leave a partial version visible.
	err = es.DB.Transaction(func(tx *gorm.DB) error {
		return forkSelfAssessment(tx, selfAssessment, coreSkillID, attachToCopy)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// forkSelfAssessment deep copies every core skill, element and option of
// the self assessment into a brand new self assessment with fresh ids,
// attaching the new element to the copy of the target core skill. The
// original schema and all its answers are left untouched.
func forkSelfAssessment(
	tx *gorm.DB,
	selfAssessment *models.SelfAssessment,
	coreSkillID uint,
	attachToCopy func(*models.CoreSkill),
) error {
	newCoreSkills := make([]models.CoreSkill, 0, len(selfAssessment.CoreSkills))
	for i := range selfAssessment.CoreSkills {
		coreSkill := &selfAssessment.CoreSkills[i]
		coreSkillCopy := models.CoreSkill{
			Name:               coreSkill.Name,
			Description:        coreSkill.Description,
			DetailedElements:   copyDetailedElements(coreSkill.DetailedElements),
			TextElements:       copyTextElements(coreSkill.TextElements),
			SimplifiedElements: copySimplifiedElements(coreSkill.SimplifiedElements),
		}
		if coreSkill.ID == coreSkillID {
			attachToCopy(&coreSkillCopy)
		}
		newCoreSkills = append(newCoreSkills, coreSkillCopy)
	}

	newSelfAssessment := models.SelfAssessment{
		Title:       selfAssessment.Title,
		Description: selfAssessment.Description,
		CoreSkills:  newCoreSkills,
	}
	return tx.Create(&newSelfAssessment).Error
}

func copyDetailedElements(elements []models.DetailedElement) []models.DetailedElement {
	copies := make([]models.DetailedElement, 0, len(elements))
	for i := range elements {
		element := &elements[i]
		options := make([]models.DetailedOption, 0, len(element.DetailedOptions))
		for _, option := range element.DetailedOptions {
			options = append(options, models.DetailedOption{
				Description: option.Description,
				Position:    option.Position,
			})
		}
		copies = append(copies, models.DetailedElement{
			Description:     element.Description,
			Position:        element.Position,
			DetailedOptions: options,
		})
	}
	return copies
}

func copyTextElements(elements []models.TextElement) []models.TextElement {
	copies := make([]models.TextElement, 0, len(elements))
	for _, element := range elements {
		copies = append(copies, models.TextElement{
			Description: element.Description,
			Position:    element.Position,
		})
	}
	return copies
}

func copySimplifiedElements(elements []models.SimplifiedElement) []models.SimplifiedElement {
	copies := make([]models.SimplifiedElement, 0, len(elements))
	for _, element := range elements {
		copies = append(copies, models.SimplifiedElement{
			Description: element.Description,
			Position:    element.Position,
		})
	}
	return copies
}

// selfAssessmentOf loads the self assessment owning the core skill, with
// its complete core skill, element and option tree.
func (es *ElementService) selfAssessmentOf(coreSkillID uint) (*models.SelfAssessment, error) {
	var coreSkill models.CoreSkill
	if err := es.DB.First(&coreSkill, coreSkillID).Error; err != nil {
		return nil, err
	}
	var selfAssessment models.SelfAssessment
	err := es.DB.
		Preload("CoreSkills.DetailedElements.DetailedOptions").
		Preload("CoreSkills.TextElements").
		Preload("CoreSkills.SimplifiedElements").
		First(&selfAssessment, coreSkill.SelfAssessmentID).Error
	if err != nil {
		return nil, err
	}
	return &selfAssessment, nil
}

// nextPosition is one past the highest element position in the core skill,
// across all three element types, or 1 for an empty core skill.
func (es *ElementService) nextPosition(coreSkillID uint) (int, error) {
	var coreSkill models.CoreSkill
	err := es.DB.
		Preload("DetailedElements").
		Preload("TextElements").
		Preload("SimplifiedElements").
		First(&coreSkill, coreSkillID).Error
	if err != nil {
		return 0, err
	}
	position := models.MinPosition
	for _, element := range coreSkill.Elements() {
		if element.ElementPosition() >= position {
			position = element.ElementPosition() + 1
		}
	}
	return position, nil
}
