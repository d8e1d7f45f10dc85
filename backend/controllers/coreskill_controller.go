package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/zanecat/Employability/backend/config"
	"github.com/zanecat/Employability/backend/models"
	"github.com/zanecat/Employability/backend/services"
	"gorm.io/gorm"
)

type CoreSkillController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Skills *services.CoreSkillService
}

func NewCoreSkillController(db *gorm.DB, cfg *config.Config) *CoreSkillController {
	return &CoreSkillController{
		DB:     db,
		Cfg:    cfg,
		Skills: services.NewCoreSkillService(db),
	}
}

// Index godoc
// @Summary List the core skills of a self assessment
// @Tags coreskills
// @Produce json
// @Router /selfassessments/{id}/coreskills [get]
func (cc *CoreSkillController) Index(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid self assessment ID",
		})
	}

	coreSkills, err := cc.Skills.FindForSelfAssessment(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	if coreSkills == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Self assessment not found",
		})
	}

	user, err := currentUser(c, cc.DB, cc.Cfg)
	if err != nil {
		return err
	}

	result := make([]fiber.Map, 0, len(coreSkills))
	for i := range coreSkills {
		finished, err := cc.Skills.IsFinished(&coreSkills[i], user)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not query database",
			})
		}
		entry := coreSkillJSON(&coreSkills[i])
		entry["finished"] = finished
		result = append(result, entry)
	}
	return c.JSON(result)
}

// Details godoc
// @Summary Get a core skill with its elements
// @Tags coreskills
// @Produce json
// @Router /coreskills/{id} [get]
func (cc *CoreSkillController) Details(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid core skill ID",
		})
	}

	coreSkill, err := cc.Skills.Find(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	if coreSkill == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Core skill not found",
		})
	}

	return c.JSON(coreSkillJSON(coreSkill))
}

// Create godoc
// @Summary Add a core skill to a self assessment
// @Tags coreskills
// @Accept json
// @Produce json
// @Router /admin/selfassessments/{id}/coreskills [post]
func (cc *CoreSkillController) Create(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid self assessment ID",
		})
	}

	var selfAssessment models.SelfAssessment
	if err := cc.DB.First(&selfAssessment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Self assessment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	type CreateInput struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	coreSkill := models.CoreSkill{
		Name:             input.Name,
		Description:      input.Description,
		SelfAssessmentID: selfAssessment.ID,
	}
	if err := cc.DB.Create(&coreSkill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create core skill",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(coreSkillJSON(&coreSkill))
}

// FillOutPage godoc
// @Summary Get the fill-out page for a core skill
// @Description Pairs every element of the core skill with the user's most
// recent answer for it.
// @Tags coreskills
// @Produce json
// @Router /coreskills/{id}/fillout [get]
func (cc *CoreSkillController) FillOutPage(c *fiber.Ctx) error {
	user, err := currentUser(c, cc.DB, cc.Cfg)
	if err != nil {
		return err
	}

	coreSkill, status, err := cc.findCoreSkill(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	return cc.fillOutResponse(c, fiber.StatusOK, coreSkill, user)
}

// SaveFillOut godoc
// @Summary Save a submitted fill-out page
// @Description Saves the submitted detailed, text and simplified answers
// against the user's most recent answer. When the survey schema changed
// while the form was open, responds with 409 and the reloaded page.
// @Tags coreskills
// @Accept json
// @Produce json
// @Router /coreskills/{id}/fillout [post]
func (cc *CoreSkillController) SaveFillOut(c *fiber.Ctx) error {
	user, err := currentUser(c, cc.DB, cc.Cfg)
	if err != nil {
		return err
	}

	coreSkill, status, err := cc.findCoreSkill(c)
	if err != nil {
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	type FillOutInput struct {
		Detailed []struct {
			ElementID uint `json:"element_id"`
			ChoiceID  uint `json:"choice_id"`
		} `json:"detailed"`
		Text []struct {
			ElementID uint   `json:"element_id"`
			Text      string `json:"text"`
		} `json:"text"`
		Simplified []struct {
			ElementID uint `json:"element_id"`
			Choice    int  `json:"choice"`
		} `json:"simplified"`
	}

	var input FillOutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	answer, err := cc.Skills.MostRecentOrNewAnswer(coreSkill, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load answer",
		})
	}

	for _, d := range input.Detailed {
		if err := cc.Skills.SaveDetailedAnswer(answer, d.ElementID, d.ChoiceID); err != nil {
			var concurrencyErr *services.SurveyConcurrencyError
			if errors.As(err, &concurrencyErr) {
				// The schema changed under the user; hand back the current
				// page so they can resubmit against it.
				return cc.fillOutResponse(c, fiber.StatusConflict, coreSkill, user)
			}
			return saveError(c, err)
		}
	}
	for _, t := range input.Text {
		if err := cc.Skills.SaveTextAnswer(answer, t.ElementID, t.Text); err != nil {
			return saveError(c, err)
		}
	}
	for _, s := range input.Simplified {
		if err := cc.Skills.SaveSimplifiedAnswer(answer, s.ElementID, s.Choice); err != nil {
			return saveError(c, err)
		}
	}

	return cc.fillOutResponse(c, fiber.StatusOK, coreSkill, user)
}

func (cc *CoreSkillController) findCoreSkill(c *fiber.Ctx) (*models.CoreSkill, int, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, fiber.StatusBadRequest, errors.New("Invalid core skill ID")
	}
	coreSkill, err := cc.Skills.Find(uint(id))
	if err != nil {
		return nil, fiber.StatusInternalServerError, errors.New("Could not query database")
	}
	if coreSkill == nil {
		return nil, fiber.StatusNotFound, errors.New("Core skill not found")
	}
	return coreSkill, fiber.StatusOK, nil
}

func (cc *CoreSkillController) fillOutResponse(c *fiber.Ctx, status int, coreSkill *models.CoreSkill, user *models.User) error {
	surveyElements, err := cc.Skills.SurveyElements(coreSkill, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load survey elements",
		})
	}
	finished, err := cc.Skills.IsFinished(coreSkill, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"core_skill": fiber.Map{
			"id":          coreSkill.ID,
			"name":        coreSkill.Name,
			"description": coreSkill.Description,
		},
		"finished": finished,
		"reload":   status == fiber.StatusConflict,
		"elements": surveyElementsJSON(surveyElements),
	})
}

func saveError(c *fiber.Ctx, err error) error {
	if errors.Is(err, models.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Element not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Could not save answer",
	})
}

func coreSkillJSON(coreSkill *models.CoreSkill) fiber.Map {
	detailed := make([]fiber.Map, 0, len(coreSkill.DetailedElements))
	for i := range coreSkill.DetailedElements {
		element := &coreSkill.DetailedElements[i]
		options := make([]fiber.Map, 0, len(element.DetailedOptions))
		for j := range element.DetailedOptions {
			option := &element.DetailedOptions[j]
			options = append(options, fiber.Map{
				"id":          option.ID,
				"description": option.Description,
				"position":    option.Position,
			})
		}
		detailed = append(detailed, fiber.Map{
			"id":          element.ID,
			"description": element.Description,
			"position":    element.Position,
			"options":     options,
		})
	}

	text := make([]fiber.Map, 0, len(coreSkill.TextElements))
	for i := range coreSkill.TextElements {
		element := &coreSkill.TextElements[i]
		text = append(text, fiber.Map{
			"id":          element.ID,
			"description": element.Description,
			"position":    element.Position,
		})
	}

	simplified := make([]fiber.Map, 0, len(coreSkill.SimplifiedElements))
	for i := range coreSkill.SimplifiedElements {
		element := &coreSkill.SimplifiedElements[i]
		simplified = append(simplified, fiber.Map{
			"id":          element.ID,
			"description": element.Description,
			"position":    element.Position,
		})
	}

	return fiber.Map{
		"id":                  coreSkill.ID,
		"name":                coreSkill.Name,
		"description":         coreSkill.Description,
		"self_assessment_id":  coreSkill.SelfAssessmentID,
		"detailed_elements":   detailed,
		"text_elements":       text,
		"simplified_elements": simplified,
	}
}

func surveyElementsJSON(surveyElements []models.SurveyElement) []fiber.Map {
	result := make([]fiber.Map, 0, len(surveyElements))
	for _, se := range surveyElements {
		switch pairing := se.(type) {
		case *models.DetailedSurveyElement:
			element := pairing.DetailedElement()
			options := make([]fiber.Map, 0, len(element.DetailedOptions))
			for i := range element.DetailedOptions {
				option := &element.DetailedOptions[i]
				options = append(options, fiber.Map{
					"id":          option.ID,
					"description": option.Description,
					"position":    option.Position,
				})
			}
			entry := fiber.Map{
				"kind":        "detailed",
				"element_id":  element.ID,
				"description": element.Description,
				"position":    element.Position,
				"options":     options,
			}
			if subAnswer := pairing.DetailedAnswer(); subAnswer != nil {
				entry["choice_id"] = subAnswer.ChoiceID
				entry["finished"] = subAnswer.IsFinished()
			}
			result = append(result, entry)
		case *models.TextSurveyElement:
			element := pairing.TextElement()
			entry := fiber.Map{
				"kind":        "text",
				"element_id":  element.ID,
				"description": element.Description,
				"position":    element.Position,
			}
			if subAnswer := pairing.TextAnswer(); subAnswer != nil {
				entry["text"] = subAnswer.Text
				entry["finished"] = subAnswer.IsFinished()
			}
			result = append(result, entry)
		case *models.SimplifiedSurveyElement:
			element := pairing.SimplifiedElement()
			entry := fiber.Map{
				"kind":        "simplified",
				"element_id":  element.ID,
				"description": element.Description,
				"position":    element.Position,
			}
			if subAnswer := pairing.SimplifiedAnswer(); subAnswer != nil {
				entry["choice"] = subAnswer.Choice
				entry["finished"] = subAnswer.IsFinished()
			}
			result = append(result, entry)
		}
	}
	return result
}
