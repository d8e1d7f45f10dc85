package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zanecat/Employability/backend/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A second pooled connection would see an empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SelfAssessment{},
		&models.CoreSkill{},
		&models.DetailedElement{},
		&models.DetailedOption{},
		&models.TextElement{},
		&models.SimplifiedElement{},
		&models.Answer{},
		&models.DetailedAnswer{},
		&models.TextAnswer{},
		&models.SimplifiedAnswer{},
		&models.SaFeedback{},
	))
	return db
}

// seedSurvey creates a self assessment with one core skill holding one
// element of each kind, plus a basic user.
func seedSurvey(t *testing.T, db *gorm.DB) (*models.SelfAssessment, *models.CoreSkill, *models.User) {
	t.Helper()

	selfAssessment := models.SelfAssessment{
		Title: "Employability Survey",
		CoreSkills: []models.CoreSkill{
			{
				Name: "Teamwork",
				DetailedElements: []models.DetailedElement{
					{
						Description: "How do you share credit?",
						Position:    1,
						DetailedOptions: []models.DetailedOption{
							{Description: "Rarely", Position: 1},
							{Description: "Always", Position: 2},
						},
					},
				},
				TextElements: []models.TextElement{
					{Description: "Describe a team success", Position: 2},
				},
				SimplifiedElements: []models.SimplifiedElement{
					{Description: "Rate your reliability", Position: 3},
				},
			},
		},
	}
	require.NoError(t, db.Create(&selfAssessment).Error)

	user := models.User{
		Username:     "worker",
		Email:        "worker@example.com",
		PasswordHash: "x",
		Role:         models.RoleBasic,
		GivenName:    "Wren",
		FamilyName:   "Worker",
	}
	require.NoError(t, db.Create(&user).Error)

	skills := NewCoreSkillService(db)
	coreSkill, err := skills.Find(selfAssessment.CoreSkills[0].ID)
	require.NoError(t, err)
	require.NotNil(t, coreSkill)

	return &selfAssessment, coreSkill, &user
}
