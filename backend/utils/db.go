package utils

import (
	"fmt"

	"github.com/zanecat/Employability/backend/config"
	"github.com/zanecat/Employability/backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection and migrates the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates or updates the tables for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
	)
}
