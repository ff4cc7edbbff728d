package model

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Validator instance
var validate = validator.New()

// UserModel maps the users table.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName  string    `gorm:"size:50;uniqueIndex;not null" json:"username" validate:"required,min=3,max=50"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required,email"`
	FirstName string    `gorm:"size:150" json:"first_name" validate:"max=150"`
	LastName  string    `gorm:"size:150" json:"last_name" validate:"max=150"`
	Password  string    `gorm:"not null" json:"-" validate:"required,min=8"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`

	DateJoined time.Time `gorm:"autoCreateTime" json:"date_joined"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// json field names for validation error keys
var jsonFieldNames = map[string]string{
	"UserName":  "username",
	"Email":     "email",
	"FirstName": "first_name",
	"LastName":  "last_name",
	"Password":  "password",
}

// ValidateFields checks the record against the struct tags and returns
// field-scoped messages, or nil when the record is valid.
func (u *UserModel) ValidateFields() map[string][]string {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string][]string{"non_field_errors": {err.Error()}}
	}
	out := make(map[string][]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		name := jsonFieldNames[fieldErr.Field()]
		if name == "" {
			name = strings.ToLower(fieldErr.Field())
		}
		out[name] = append(out[name], fieldMessage(fieldErr))
	}
	return out
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email format."
	case "min":
		return "Must be at least " + fieldErr.Param() + " characters."
	case "max":
		return "Must be at most " + fieldErr.Param() + " characters."
	default:
		return "This field is invalid."
	}
}
