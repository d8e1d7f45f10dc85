package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zanecat/Employability/backend/config"
	"gorm.io/gorm"
)

type UserController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUserController(db *gorm.DB, cfg *config.Config) *UserController {
	return &UserController{DB: db, Cfg: cfg}
}

// GetProfile godoc
// @Summary Get current user profile
// @Tags users
// @Produce json
// @Router /users/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user, err := currentUser(c, uc.DB, uc.Cfg)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"role":        user.Role,
		"given_name":  user.GivenName,
		"family_name": user.FamilyName,
		"full_name":   user.FullName(),
	})
}

// UpdateProfile godoc
// @Summary Update current user profile
// @Tags users
// @Accept json
// @Produce json
// @Router /users/profile [put]
func (uc *UserController) UpdateProfile(c *fiber.Ctx) error {
	user, err := currentUser(c, uc.DB, uc.Cfg)
	if err != nil {
		return err
	}

	type ProfileInput struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}

	var input ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Email != "" {
		user.Email = input.Email
	}
	if input.GivenName != "" {
		user.GivenName = input.GivenName
	}
	if input.FamilyName != "" {
		user.FamilyName = input.FamilyName
	}

	if err := uc.DB.Save(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"given_name":  user.GivenName,
		"family_name": user.FamilyName,
	})
}
