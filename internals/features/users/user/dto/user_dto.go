// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "scheduleku_backend/internals/features/users/user/model"
)

/* =======================================================
   Responses
   ======================================================= */

// UserProfileResponse mirrors the public profile shape.
// username, date_joined and is_staff are read-only.
type UserProfileResponse struct {
	ID         uuid.UUID `json:"id"`
	UserName   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
	IsStaff    bool      `json:"is_staff"`
}

func NewUserProfileResponse(u *m.UserModel) UserProfileResponse {
	return UserProfileResponse{
		ID:         u.ID,
		UserName:   u.UserName,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.DateJoined,
		IsStaff:    u.IsStaff,
	}
}

/* =======================================================
   Requests
   ======================================================= */

// UpdateProfileRequest — full update (PUT). Writable fields only.
type UpdateProfileRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// PatchProfileRequest — partial update (PATCH); only non-nil fields apply.
type PatchProfileRequest struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
}

func (r *UpdateProfileRequest) Apply(u *m.UserModel) {
	u.Email = r.Email
	u.FirstName = r.FirstName
	u.LastName = r.LastName
}

func (r *PatchProfileRequest) Apply(u *m.UserModel) {
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.FirstName != nil {
		u.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		u.LastName = *r.LastName
	}
}
