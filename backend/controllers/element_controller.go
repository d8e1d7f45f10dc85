package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/zanecat/Employability/backend/config"
	"github.com/zanecat/Employability/backend/models"
	"github.com/zanecat/Employability/backend/services"
	"gorm.io/gorm"
)

type ElementController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Elements *services.ElementService
}

func NewElementController(db *gorm.DB, cfg *config.Config) *ElementController {
	return &ElementController{
		DB:       db,
		Cfg:      cfg,
		Elements: services.NewElementService(db),
	}
}

// CreateDetailed godoc
// @Summary Add a multiple choice question to a core skill
// @Description When the self assessment already has answers, the whole
// schema is forked into a new version and new_version is true.
// @Tags elements
// @Accept json
// @Produce json
// @Router /admin/coreskills/{id}/elements/detailed [post]
func (ec *ElementController) CreateDetailed(c *fiber.Ctx) error {
	coreSkillID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid core skill ID",
		})
	}

	type CreateInput struct {
		Description string `json:"description"`
		Options     []struct {
			Description string `json:"description"`
			Position    int    `json:"position"`
		} `json:"options"`
	}

	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	options := make([]services.OptionInput, 0, len(input.Options))
	for _, o := range input.Options {
		options = append(options, services.OptionInput{
			Description: o.Description,
			Position:    o.Position,
		})
	}

	newVersion, err := ec.Elements.CreateDetailedElement(input.Description, options, uint(coreSkillID))
	if err != nil {
		return elementError(c, err)
	}
	return ec.createdResponse(c, newVersion)
}

// CreateText godoc
// @Summary Add a free text question to a core skill
// @Tags elements
// @Accept json
// @Produce json
// @Router /admin/coreskills/{id}/elements/text [post]
func (ec *ElementController) CreateText(c *fiber.Ctx) error {
	coreSkillID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid core skill ID",
		})
	}

	type CreateInput struct {
		Description string `json:"description"`
	}

	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	newVersion, err := ec.Elements.CreateTextElement(input.Description, uint(coreSkillID))
	if err != nil {
		return elementError(c, err)
	}
	return ec.createdResponse(c, newVersion)
}

// CreateSimplified godoc
// @Summary Add a scale question to a core skill
// @Tags elements
// @Accept json
// @Produce json
// @Router /admin/coreskills/{id}/elements/simplified [post]
func (ec *ElementController) CreateSimplified(c *fiber.Ctx) error {
	coreSkillID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid core skill ID",
		})
	}

	type CreateInput struct {
		Description string `json:"description"`
	}

	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	newVersion, err := ec.Elements.CreateSimplifiedElement(input.Description, uint(coreSkillID))
	if err != nil {
		return elementError(c, err)
	}
	return ec.createdResponse(c, newVersion)
}

// EditDetailed godoc
// @Summary Edit a multiple choice question in place
// @Tags elements
// @Accept json
// @Produce json
// @Router /admin/elements/detailed/{id} [put]
func (ec *ElementController) EditDetailed(c *fiber.Ctx) error {
	elementID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid element ID",
		})
	}

	type EditInput struct {
		Description string `json:"description"`
		Options     []struct {
			ID          uint   `json:"id"`
			Description string `json:"description"`
		} `json:"options"`
	}

	var input EditInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	options := make([]services.OptionUpdate, 0, len(input.Options))
	for _, o := range input.Options {
		options = append(options, services.OptionUpdate{
			ID:          o.ID,
			Description: o.Description,
		})
	}

	if err := ec.Elements.EditDetailedElement(uint(elementID), input.Description, options); err != nil {
		return elementError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Element updated"})
}

// EditText godoc
// @Summary Edit a free text question in place
// @Tags elements
// @Accept json
// @Produce json
// @Router /admin/elements/text/{id} [put]
func (ec *ElementController) EditText(c *fiber.Ctx) error {
	return ec.editSimple(c, ec.Elements.EditTextElement)
}

// EditSimplified godoc
// @Summary Edit a scale question in place
// @Tags elements
// @Accept json
// @Produce json
// @Router /admin/elements/simplified/{id} [put]
func (ec *ElementController) EditSimplified(c *fiber.Ctx) error {
	return ec.editSimple(c, ec.Elements.EditSimplifiedElement)
}

// DeleteDetailed godoc
// @Summary Delete a multiple choice question and its options in place
// @Tags elements
// @Produce json
// @Router /admin/coreskills/{id}/elements/detailed/{elementId} [delete]
func (ec *ElementController) DeleteDetailed(c *fiber.Ctx) error {
	return ec.deleteElement(c, ec.Elements.DeleteDetailedElement)
}

// DeleteText godoc
// @Summary Delete a free text question in place
// @Tags elements
// @Produce json
// @Router /admin/coreskills/{id}/elements/text/{elementId} [delete]
func (ec *ElementController) DeleteText(c *fiber.Ctx) error {
	return ec.deleteElement(c, ec.Elements.DeleteTextElement)
}

// DeleteSimplified godoc
// @Summary Delete a scale question in place
// @Tags elements
// @Produce json
// @Router /admin/coreskills/{id}/elements/simplified/{elementId} [delete]
func (ec *ElementController) DeleteSimplified(c *fiber.Ctx) error {
	return ec.deleteElement(c, ec.Elements.DeleteSimplifiedElement)
}

func (ec *ElementController) editSimple(c *fiber.Ctx, edit func(uint, string) error) error {
	elementID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid element ID",
		})
	}

	type EditInput struct {
		Description string `json:"description"`
	}

	var input EditInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := edit(uint(elementID), input.Description); err != nil {
		return elementError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Element updated"})
}

func (ec *ElementController) deleteElement(c *fiber.Ctx, del func(uint, uint) error) error {
	coreSkillID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid core skill ID",
		})
	}
	elementID, err := c.ParamsInt("elementId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid element ID",
		})
	}

	if err := del(uint(coreSkillID), uint(elementID)); err != nil {
		return elementError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Element deleted"})
}

func (ec *ElementController) createdResponse(c *fiber.Ctx, newVersion bool) error {
	latestID, err := ec.Elements.GetLatestSelfAssessmentVersion()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not resolve latest version",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"new_version":        newVersion,
		"self_assessment_id": latestID,
	})
}

func elementError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	}
	if errors.Is(err, models.ErrValidation) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Could not apply schema change",
	})
}
