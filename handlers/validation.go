// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/diddle/models"
)

// fieldMessages maps a JSON field and a failed validator tag to the message
// shown to the user
type fieldMessages map[string]map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var pollInfoMessages = fieldMessages{
	"title": {
		"required": "Title is required",
		"max":      fmt.Sprintf("Title must be %d characters or fewer", models.TitleMaxLength),
	},
	"description": {
		"max": fmt.Sprintf("Description must be %d characters or fewer", models.DescriptionMaxLength),
	},
	"author_name": {
		"required": "Your name is required",
		"max":      fmt.Sprintf("Your name must be %d characters or fewer", models.AuthorNameMaxLength),
	},
	"author_email": {
		"max":   fmt.Sprintf("Email must be %d characters or fewer", models.AuthorEmailMaxLength),
		"email": "Email address is not valid",
	},
}

var choiceMessages = fieldMessages{
	"start_datetime": {"required": "Start date is required"},
	"end_datetime":   {"required": "End date is required"},
}

var voteMessages = fieldMessages{
	"voter_name": {
		"required": "Your name is required",
		"max":      fmt.Sprintf("Your name must be %d characters or fewer", models.VoterNameMaxLength),
	},
}

// validateRequest runs the struct tags of req and turns the first failure
// into a *models.ValidationError
func validateRequest(req any, messages fieldMessages) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	verr := verrs[0]
	if msg, ok := messages[verr.Field()][verr.Tag()]; ok {
		return &models.ValidationError{Field: verr.Field(), Message: msg}
	}
	return models.NewValidationError(verr.Field(), "%s is invalid", verr.Field())
}
