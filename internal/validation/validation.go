// Package validation holds the field rules shared by the API services and the
// CLI forms. Submission is blocked until every rule passes.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/revxlabs/revx/internal/constants"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	upperRegex    = regexp.MustCompile(`[A-Z]`)
	lowerRegex    = regexp.MustCompile(`[a-z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
	specialRegex  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// Email checks shape only; deliverability is the mail provider's problem.
func Email(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("please enter a valid email address")
	}
	return nil
}

func Username(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if !usernameRegex.MatchString(username) {
		return errors.New("username must be 3-20 characters and can only contain letters, numbers, underscores and hyphens")
	}
	return nil
}

// Password applies the registration complexity rules.
func Password(password string) error {
	switch {
	case password == "":
		return errors.New("password is required")
	case len(password) < constants.MinPasswordLength:
		return fmt.Errorf("password must be at least %d characters long", constants.MinPasswordLength)
	case !upperRegex.MatchString(password):
		return errors.New("password must contain at least one uppercase letter")
	case !lowerRegex.MatchString(password):
		return errors.New("password must contain at least one lowercase letter")
	case !digitRegex.MatchString(password):
		return errors.New("password must contain at least one number")
	case !specialRegex.MatchString(password):
		return errors.New("password must contain at least one special character")
	}
	return nil
}

// LoginPassword only checks presence; complexity is enforced at registration.
func LoginPassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}

func FullName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}
	if len(name) < 2 {
		return errors.New("name must be at least 2 characters")
	}
	return nil
}

func ProjectTitle(title string) error {
	switch {
	case title == "":
		return errors.New("project title is required")
	case len(title) < 3:
		return errors.New("project title must be at least 3 characters")
	case len(title) > 100:
		return errors.New("project title must be less than 100 characters")
	}
	return nil
}

func ProjectDescription(description string) error {
	switch {
	case description == "":
		return errors.New("project description is required")
	case len(description) < 10:
		return errors.New("project description must be at least 10 characters")
	case len(description) > 2000:
		return errors.New("project description must be less than 2000 characters")
	}
	return nil
}

func ReviewText(review string) error {
	switch {
	case strings.TrimSpace(review) == "":
		return errors.New("review cannot be empty")
	case len(review) < 2:
		return errors.New("review must be at least 2 characters")
	case len(review) > 1000:
		return errors.New("review must be less than 1000 characters")
	}
	return nil
}

// Rating parses the wire-encoded rating ("1".."5") into its numeric value.
func Rating(rating string) (int, error) {
	value, err := strconv.Atoi(rating)
	if err != nil || value < 1 || value > 5 {
		return 0, errors.New("rating must be a number between 1 and 5")
	}
	return value, nil
}
