package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/zanecat/Employability/backend/config"
	"github.com/zanecat/Employability/backend/models"
	"github.com/zanecat/Employability/backend/utils"
	"gorm.io/gorm"
)

// currentUser resolves the authenticated user from the request token.
func currentUser(c *fiber.Ctx, db *gorm.DB, cfg *config.Config) (*models.User, error) {
	userID, err := utils.ExtractUserIDFromToken(c, cfg)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unknown user")
		}
		return nil, err
	}
	return &user, nil
}
