package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"scheduleku_backend/internals/configs"
	authHelper "scheduleku_backend/internals/features/users/auth/helper"
	authModel "scheduleku_backend/internals/features/users/auth/model"
	authRepo "scheduleku_backend/internals/features/users/auth/repository"
	userDto "scheduleku_backend/internals/features/users/user/dto"
	userModel "scheduleku_backend/internals/features/users/user/model"
	helpers "scheduleku_backend/internals/helpers"
)

/* ==========================
   Const & small helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// computeRefreshHash keeps only an HMAC of the refresh token in the DB.
func computeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

/* ==========================
   REGISTER
========================== */

type registerInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if fieldErrs := authHelper.ValidateRegisterInput(input.Username, input.Email, input.Password, input.PasswordConfirm); fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}

	passwordHash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}

	user := userModel.UserModel{
		UserName:  strings.TrimSpace(input.Username),
		Email:     strings.TrimSpace(input.Email),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Password:  passwordHash,
		IsActive:  true,
	}
	if fieldErrs := user.ValidateFields(); fieldErrs != nil {
		return helpers.JsonValidationError(c, fieldErrs)
	}

	if err := authRepo.CreateUser(db, &user); err != nil {
		if helpers.IsUniqueViolation(err) {
			return helpers.JsonValidationError(c, map[string][]string{
				"email": {"A user with this email or username already exists."},
			})
		}
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helpers.JsonCreated(c, "Registration successful", userDto.NewUserProfileResponse(&user))
}

/* ==========================
   LOGIN (username + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Username = strings.TrimSpace(input.Username)

	if err := authHelper.ValidateLoginInput(input.Username, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authRepo.FindUserByUsername(db, input.Username)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User account is disabled")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Invalid username or password")
	}

	return issueTokens(c, db, user)
}

/* ==========================
   ISSUE TOKENS + Response
========================== */

func buildAccessClaims(user *userModel.UserModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":      "access",
		"sub":      user.ID.String(),
		"id":       user.ID.String(),
		"username": user.UserName,
		"email":    user.Email,
		"is_staff": user.IsStaff,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"id":  userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

// signTokenPair signs an access+refresh pair and persists the refresh hash.
func signTokenPair(c *fiber.Ctx, db *gorm.DB, user *userModel.UserModel) (access, refresh string, err error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return "", "", err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return "", "", err
	}

	now := nowUTC()
	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now)).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user.ID, now)).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	ua, ip := c.Get("User-Agent"), c.IP()
	if err := authRepo.CreateRefreshToken(db, &authModel.RefreshTokenModel{
		UserID:    user.ID,
		TokenHash: computeRefreshHash(refresh, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(ua),
		IP:        strptr(ip),
	}); err != nil {
		return "", "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store refresh token")
	}
	return access, refresh, nil
}

func issueTokens(c *fiber.Ctx, db *gorm.DB, user *userModel.UserModel) error {
	access, refresh, err := signTokenPair(c, db, user)
	if err != nil {
		fe, ok := err.(*fiber.Error)
		if !ok {
			fe = fiber.ErrInternalServerError
		}
		return helpers.JsonError(c, fe.Code, fe.Message)
	}

	return helpers.JsonOK(c, "Login successful", fiber.Map{
		"access":  access,
		"refresh": refresh,
		"user":    userDto.NewUserProfileResponse(user),
	})
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Refresh string `json:"refresh"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Refresh = strings.TrimSpace(input.Refresh)
	if input.Refresh == "" {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Refresh token is required")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		fe := err.(*fiber.Error)
		return helpers.JsonError(c, fe.Code, fe.Message)
	}

	// the token must be a well-formed refresh JWT signed by us
	tok, err := jwt.Parse(input.Refresh, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid refresh token")
	}

	// revoking twice is an error: the row is already gone from the active view
	hash := computeRefreshHash(input.Refresh, refreshSecret)
	affected, err := authRepo.RevokeRefreshToken(db, hash)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke refresh token")
	}
	if affected == 0 {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Refresh token is already invalid")
	}

	// blacklist the presented access token for its remaining lifetime
	if accessToken := helpers.GetRawAccessToken(c); accessToken != "" {
		if err := authRepo.BlacklistToken(db, accessToken, resolveBlacklistTTL(accessToken)); err != nil {
			log.Printf("[WARN] failed to blacklist access token: %v", err)
		}
	}

	return helpers.JsonOK(c, "Logout successful", fiber.Map{
		"message": "Successfully logged out.",
	})
}

func resolveBlacklistTTL(accessToken string) time.Duration {
	ttl := 2 * time.Minute
	jwtSecret := strings.TrimSpace(configs.JWTSecret)
	if jwtSecret == "" || accessToken == "" {
		return ttl
	}
	if tok, err := jwt.Parse(accessToken, func(t *jwt.Token) (any, error) {
		return []byte(jwtSecret), nil
	}); err == nil {
		if claims, ok := tok.Claims.(jwt.MapClaims); ok && tok.Valid {
			if exp, ok := claims["exp"].(float64); ok {
				if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
					return until + time.Minute
				}
				return time.Minute
			}
		}
	}
	return ttl
}
