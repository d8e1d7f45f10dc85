package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/zanecat/Employability/backend/config"
	"github.com/zanecat/Employability/backend/models"
	"gorm.io/gorm"
)

type FeedbackController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewFeedbackController(db *gorm.DB, cfg *config.Config) *FeedbackController {
	return &FeedbackController{DB: db, Cfg: cfg}
}

// Create godoc
// @Summary Leave feedback on a self assessment
// @Tags feedbacks
// @Accept json
// @Produce json
// @Router /feedbacks [post]
func (fc *FeedbackController) Create(c *fiber.Ctx) error {
	user, err := currentUser(c, fc.DB, fc.Cfg)
	if err != nil {
		return err
	}

	type FeedbackInput struct {
		SelfAssessmentID uint   `json:"self_assessment_id"`
		Rating           int    `json:"rating"`
		Comment          string `json:"comment"`
	}

	var input FeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Rating < models.MinRating || input.Rating > models.MaxRating {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rating must be between 1 and 5",
		})
	}

	var selfAssessment models.SelfAssessment
	if err := fc.DB.First(&selfAssessment, input.SelfAssessmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Self assessment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	feedback := models.SaFeedback{
		Rating:           input.Rating,
		Comment:          input.Comment,
		BasicUserID:      user.ID,
		SelfAssessmentID: selfAssessment.ID,
	}
	if err := fc.DB.Create(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save feedback",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":                 feedback.ID,
		"rating":             feedback.Rating,
		"comment":            feedback.Comment,
		"self_assessment_id": feedback.SelfAssessmentID,
	})
}

// Index godoc
// @Summary List all feedback across self assessments
// @Tags feedbacks
// @Produce json
// @Router /admin/feedbacks [get]
func (fc *FeedbackController) Index(c *fiber.Ctx) error {
	var feedbacks []models.SaFeedback
	err := fc.DB.
		Preload("BasicUser").
		Preload("SelfAssessment").
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	result := make([]fiber.Map, 0, len(feedbacks))
	for i := range feedbacks {
		feedback := &feedbacks[i]
		result = append(result, fiber.Map{
			"id":                 feedback.ID,
			"rating":             feedback.Rating,
			"comment":            feedback.Comment,
			"user":               feedback.BasicUser.FullName(),
			"self_assessment":    feedback.SelfAssessment.Title,
			"self_assessment_id": feedback.SelfAssessmentID,
			"created_at":         feedback.CreatedAt,
		})
	}
	return c.JSON(result)
}
