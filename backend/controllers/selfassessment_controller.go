package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/zanecat/Employability/backend/config"
	"github.com/zanecat/Employability/backend/models"
	"github.com/zanecat/Employability/backend/services"
	"gorm.io/gorm"
)

type SelfAssessmentController struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Skills   *services.CoreSkillService
	Elements *services.ElementService
	Reports  *services.ReportService
}

func NewSelfAssessmentController(db *gorm.DB, cfg *config.Config) *SelfAssessmentController {
	return &SelfAssessmentController{
		DB:       db,
		Cfg:      cfg,
		Skills:   services.NewCoreSkillService(db),
		Elements: services.NewElementService(db),
		Reports:  services.NewReportService(),
	}
}

// Index godoc
// @Summary List all self assessment versions
// @Tags selfassessments
// @Produce json
// @Router /selfassessments [get]
func (sc *SelfAssessmentController) Index(c *fiber.Ctx) error {
	var selfAssessments []models.SelfAssessment
	if err := sc.DB.Order("id").Find(&selfAssessments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	result := make([]fiber.Map, 0, len(selfAssessments))
	for _, sa := range selfAssessments {
		result = append(result, fiber.Map{
			"id":          sa.ID,
			"title":       sa.Title,
			"description": sa.Description,
			"created_at":  sa.CreatedAt,
		})
	}
	return c.JSON(result)
}

// Details godoc
// @Summary Get a self assessment with its core skills and elements
// @Tags selfassessments
// @Produce json
// @Router /selfassessments/{id} [get]
func (sc *SelfAssessmentController) Details(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid self assessment ID",
		})
	}

	selfAssessment, err := sc.Skills.FindSelfAssessment(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	if selfAssessment == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Self assessment not found",
		})
	}

	return c.JSON(selfAssessmentJSON(selfAssessment))
}

// Create godoc
// @Summary Create a new self assessment version
// @Tags selfassessments
// @Accept json
// @Produce json
// @Router /selfassessments [post]
func (sc *SelfAssessmentController) Create(c *fiber.Ctx) error {
	type CreateInput struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	var input CreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	selfAssessment := models.SelfAssessment{
		Title:       input.Title,
		Description: input.Description,
	}
	if err := sc.DB.Create(&selfAssessment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create self assessment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          selfAssessment.ID,
		"title":       selfAssessment.Title,
		"description": selfAssessment.Description,
	})
}

// Edit godoc
// @Summary Update the title and description of a self assessment
// @Tags selfassessments
// @Accept json
// @Produce json
// @Router /selfassessments/{id} [put]
func (sc *SelfAssessmentController) Edit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid self assessment ID",
		})
	}

	var selfAssessment models.SelfAssessment
	if err := sc.DB.First(&selfAssessment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Self assessment not found",
		})
	}

	type EditInput struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}

	var input EditInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Title != "" {
		selfAssessment.Title = input.Title
	}
	selfAssessment.Description = input.Description

	if err := sc.DB.Save(&selfAssessment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update self assessment",
		})
	}

	return c.JSON(fiber.Map{
		"id":          selfAssessment.ID,
		"title":       selfAssessment.Title,
		"description": selfAssessment.Description,
	})
}

// Start godoc
// @Summary Start the latest self assessment version
// @Description Returns the newest survey version so the user always fills
// out the current schema.
// @Tags selfassessments
// @Produce json
// @Router /selfassessments/start [get]
func (sc *SelfAssessmentController) Start(c *fiber.Ctx) error {
	latestID, err := sc.Elements.GetLatestSelfAssessmentVersion()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	if latestID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No self assessment available",
		})
	}

	selfAssessment, err := sc.Skills.FindSelfAssessment(latestID)
	if err != nil || selfAssessment == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load self assessment",
		})
	}

	return c.JSON(selfAssessmentJSON(selfAssessment))
}

// SurveyReport godoc
// @Summary Download a PDF report of the user's own answers
// @Tags selfassessments
// @Produce application/pdf
// @Router /selfassessments/{id}/report [get]
func (sc *SelfAssessmentController) SurveyReport(c *fiber.Ctx) error {
	user, err := currentUser(c, sc.DB, sc.Cfg)
	if err != nil {
		return err
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid self assessment ID",
		})
	}

	selfAssessment, err := sc.Skills.FindSelfAssessment(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}
	if selfAssessment == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Self assessment not found",
		})
	}

	answer, err := sc.Skills.MostRecentAnswer(selfAssessment, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load answers",
		})
	}
	if answer.ID == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No answers for this self assessment yet",
		})
	}
	answer.SelfAssessment = *selfAssessment

	report, err := sc.Reports.GenerateSurveyReport(answer, user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate report",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="survey-report-%d.pdf"`, selfAssessment.ID))
	return c.Send(report)
}

// SummaryReport godoc
// @Summary Download a PDF summary of all answers across all versions
// @Tags selfassessments
// @Produce application/pdf
// @Router /selfassessments/summary-report [get]
func (sc *SelfAssessmentController) SummaryReport(c *fiber.Ctx) error {
	admin, err := currentUser(c, sc.DB, sc.Cfg)
	if err != nil {
		return err
	}

	var ids []uint
	if err := sc.DB.Model(&models.SelfAssessment{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not query database",
		})
	}

	selfAssessments := make([]models.SelfAssessment, 0, len(ids))
	for _, id := range ids {
		sa, err := sc.Skills.FindSelfAssessment(id)
		if err != nil || sa == nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not load self assessments",
			})
		}
		selfAssessments = append(selfAssessments, *sa)
	}

	answers, err := sc.Skills.AllAnswers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load answers",
		})
	}

	report, err := sc.Reports.GenerateSummaryReport(selfAssessments, answers, admin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate report",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="summary-report.pdf"`)
	return c.Send(report)
}

func selfAssessmentJSON(sa *models.SelfAssessment) fiber.Map {
	coreSkills := make([]fiber.Map, 0, len(sa.CoreSkills))
	for i := range sa.CoreSkills {
		coreSkills = append(coreSkills, coreSkillJSON(&sa.CoreSkills[i]))
	}
	return fiber.Map{
		"id":          sa.ID,
		"title":       sa.Title,
		"description": sa.Description,
		"core_skills": coreSkills,
	}
}
