package tenancy

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tenancyjustice/clerk/modules/tenancy/domain/reconcile"
	"github.com/tenancyjustice/clerk/pkg/constants"
	"github.com/tenancyjustice/clerk/pkg/serrors"
)

// ReconcileDTO carries the tenancy block of a submission after the raw
// answers have been parsed. StartDate is already a date here; parsing
// failures are the intake layer's validation errors.
type ReconcileDTO struct {
	Address                string `validate:"required"`
	Suburb                 string
	Postcode               string
	StartDate              time.Time
	IsOnLease              bool
	AgentIsPropertyManager bool
	Landlord               reconcile.ContactFields
	Agent                  reconcile.ContactFields
}

func (d *ReconcileDTO) Normalize() {
	d.Address = strings.TrimSpace(d.Address)
	d.Suburb = strings.TrimSpace(d.Suburb)
	d.Postcode = strings.TrimSpace(d.Postcode)
	d.Landlord = d.Landlord.Normalize()
	d.Agent = d.Agent.Normalize()
}

func (d *ReconcileDTO) Ok() (serrors.ValidationErrors, bool) {
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
