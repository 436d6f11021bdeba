package client

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tenancyjustice/clerk/pkg/constants"
	"github.com/tenancyjustice/clerk/pkg/serrors"
)

type CreateDTO struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
	DateOfBirth time.Time
}

func (d *CreateDTO) Normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = NormalizeEmail(d.Email)
	d.PhoneNumber = strings.TrimSpace(d.PhoneNumber)
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}

	validationErrors := make(serrors.ValidationErrors)
	for _, err := range errs.(validator.ValidationErrors) {
		validationErrors[err.Field()] = err.Tag()
	}
	return validationErrors, false
}
