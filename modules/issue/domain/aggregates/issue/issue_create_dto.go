package issue

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tenancyjustice/clerk/pkg/constants"
	"github.com/tenancyjustice/clerk/pkg/serrors"
)

type CreateDTO struct {
	Topic     Topic     `json:"topic" validate:"required"`
	ClientID  uuid.UUID `json:"client_id" validate:"required"`
	TenancyID uuid.UUID `json:"tenancy_id"`
}

func (d *CreateDTO) Ok() (serrors.ValidationErrors, bool) {
	validationErrors := make(serrors.ValidationErrors)

	if errs := constants.Validate.Struct(d); errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			validationErrors[err.Field()] = err.Tag()
		}
	}
	if _, err := ParseTopic(string(d.Topic)); err != nil && d.Topic != "" {
		validationErrors["Topic"] = "unknown topic"
	}

	return validationErrors, len(validationErrors) == 0
}
