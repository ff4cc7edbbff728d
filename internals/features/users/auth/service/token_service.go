// internals/features/users/auth/service/token_service.go
package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authRepo "scheduleku_backend/internals/features/users/auth/repository"
	helpers "scheduleku_backend/internals/helpers"
)

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/token/refresh
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Refresh = strings.TrimSpace(input.Refresh)
	if input.Refresh == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token is required")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		fe := err.(*fiber.Error)
		return helpers.JsonError(c, fe.Code, fe.Message)
	}

	// Parse & validate the refresh JWT
	tok, err := jwt.Parse(input.Refresh, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid or expired")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Not a refresh token")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// The hash must still be active in the DB
	hash := computeRefreshHash(input.Refresh, refreshSecret)
	if _, err := authRepo.FindActiveRefreshToken(db, hash); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token unknown or revoked")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User account is disabled")
	}

	// ROTATE: revoke the presented token before issuing a new pair
	if _, err := authRepo.RevokeRefreshToken(db, hash); err != nil {
		log.Printf("[refresh] revoke old token failed: %v", err)
	}

	access, refresh, err := signTokenPair(c, db, user)
	if err != nil {
		fe, ok := err.(*fiber.Error)
		if !ok {
			fe = fiber.ErrInternalServerError
		}
		return helpers.JsonError(c, fe.Code, fe.Message)
	}

	return helpers.JsonOK(c, "Token refreshed", fiber.Map{
		"access":  access,
		"refresh": refresh,
	})
}
