// file: internals/features/users/user/controller/user_profile_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"scheduleku_backend/internals/features/users/user/dto"
	models "scheduleku_backend/internals/features/users/user/model"
	helpers "scheduleku_backend/internals/helpers"
)

type UserProfileController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserProfileController(db *gorm.DB) *UserProfileController {
	return &UserProfileController{DB: db, Validate: validator.New()}
}

func (ctl *UserProfileController) currentUser(c *fiber.Ctx) (*models.UserModel, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}
	var user models.UserModel
	if err := ctl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "User not found")
	}
	return &user, nil
}

// GET /api/auth/profile
func (ctl *UserProfileController) GetProfile(c *fiber.Ctx) error {
	user, err := ctl.currentUser(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helpers.JsonError(c, fe.Code, fe.Message)
	}
	return helpers.JsonOK(c, "ok", dto.NewUserProfileResponse(user))
}

// PUT /api/auth/profile
func (ctl *UserProfileController) UpdateProfile(c *fiber.Ctx) error {
	user, err := ctl.currentUser(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helpers.JsonError(c, fe.Code, fe.Message)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, validationFieldErrors(err))
	}

	req.Apply(user)
	if err := ctl.DB.Save(user).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			return helpers.JsonValidationError(c, map[string][]string{
				"email": {"A user with this email already exists."},
			})
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helpers.JsonUpdated(c, "Profile updated", dto.NewUserProfileResponse(user))
}

// PATCH /api/auth/profile
func (ctl *UserProfileController) PatchProfile(c *fiber.Ctx) error {
	user, err := ctl.currentUser(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helpers.JsonError(c, fe.Code, fe.Message)
	}

	var req dto.PatchProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helpers.JsonValidationError(c, validationFieldErrors(err))
	}

	req.Apply(user)
	if err := ctl.DB.Save(user).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			return helpers.JsonValidationError(c, map[string][]string{
				"email": {"A user with this email already exists."},
			})
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return helpers.JsonUpdated(c, "Profile updated", dto.NewUserProfileResponse(user))
}

func validationFieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	if ve, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range ve {
			field := strings.ToLower(fe.Field())
			out[field] = append(out[field], fe.Tag())
		}
	}
	return out
}
