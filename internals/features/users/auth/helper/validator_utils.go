package helpers

import (
	"errors"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// ValidateRegisterInput checks the register payload before hitting the DB
// and returns field-scoped messages, or nil when the payload is valid.
// All violations are collected so the caller can report them at once.
func ValidateRegisterInput(username, email, password, passwordConfirm string) map[string][]string {
	errs := map[string][]string{}

	switch {
	case strings.TrimSpace(username) == "":
		errs["username"] = append(errs["username"], "Username is required.")
	case len(username) < 3:
		errs["username"] = append(errs["username"], "Username must be at least 3 characters.")
	}
	if !isValidEmail(strings.TrimSpace(email)) {
		errs["email"] = append(errs["email"], "Invalid email format.")
	}
	if len(password) < 8 {
		errs["password"] = append(errs["password"], "Password must be at least 8 characters.")
	}
	if password != passwordConfirm {
		errs["password_confirm"] = append(errs["password_confirm"], "Passwords do not match.")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateLoginInput checks the login payload.
func ValidateLoginInput(username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return errors.New("must include username and password")
	}
	return nil
}

// ValidateChangePassword checks the change-password payload.
func ValidateChangePassword(oldPassword, newPassword, newPasswordConfirm string) error {
	if oldPassword == "" {
		return errors.New("old password is required")
	}
	if len(newPassword) < 8 {
		return errors.New("new password must be at least 8 characters")
	}
	if newPassword != newPasswordConfirm {
		return errors.New("new passwords do not match")
	}
	return nil
}
