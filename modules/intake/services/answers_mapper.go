package services

import (
	"github.com/tenancyjustice/clerk/modules/client/domain/aggregates/client"
	"github.com/tenancyjustice/clerk/modules/intake/domain/aggregates/submission"
	"github.com/tenancyjustice/clerk/modules/tenancy/domain/aggregates/tenancy"
	"github.com/tenancyjustice/clerk/modules/tenancy/domain/reconcile"
)

func clientDTOFromAnswers(answers submission.Answers) (*client.CreateDTO, error) {
	dob, err := answers.Date(submission.KeyDateOfBirth)
	if err != nil {
		return nil, err
	}
	return &client.CreateDTO{
		FirstName:   answers.String(submission.KeyFirstName),
		LastName:    answers.String(submission.KeyLastName),
		Email:       answers.String(submission.KeyEmail),
		PhoneNumber: answers.String(submission.KeyPhone),
		DateOfBirth: dob,
	}, nil
}

func reconcileDTOFromAnswers(answers submission.Answers) (*tenancy.ReconcileDTO, error) {
	startDate, err := answers.Date(submission.KeyStartDate)
	if err != nil {
		return nil, err
	}
	return &tenancy.ReconcileDTO{
		Address:                answers.String(submission.KeyAddress),
		Suburb:                 answers.String(submission.KeySuburb),
		Postcode:               answers.String(submission.KeyPostcode),
		StartDate:              startDate,
		IsOnLease:              answers.Bool(submission.KeyIsOnLease),
		AgentIsPropertyManager: answers.Bool(submission.KeyPropertyManagerIsAgent),
		Landlord: reconcile.ContactFields{
			FullName:    answers.String(submission.KeyLandlordName),
			Email:       answers.String(submission.KeyLandlordEmail),
			Address:     answers.String(submission.KeyLandlordAddress),
			PhoneNumber: answers.String(submission.KeyLandlordPhone),
		},
		Agent: reconcile.ContactFields{
			FullName:    answers.String(submission.KeyAgentName),
			Email:       answers.String(submission.KeyAgentEmail),
			Address:     answers.String(submission.KeyAgentAddress),
			PhoneNumber: answers.String(submission.KeyAgentPhone),
		},
	}, nil
}
