package submission

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenancyjustice/clerk/pkg/serrors"
)

func TestAnswersStringCoercesNumbers(t *testing.T) {
	t.Parallel()

	// form backends send postcodes as JSON numbers
	var answers Answers
	require.NoError(t, json.Unmarshal([]byte(`{"POSTCODE": 3000, "SUBURB": " Melbourne "}`), &answers))

	assert.Equal(t, "3000", answers.String(KeyPostcode))
	assert.Equal(t, "Melbourne", answers.String(KeySuburb))
	assert.Equal(t, "", answers.String(KeyAddress), "absent keys read blank")
}

func TestAnswersBool(t *testing.T) {
	t.Parallel()

	answers := Answers{
		KeyIsOnLease:              true,
		KeyPropertyManagerIsAgent: "true",
		"SOMETHING_ELSE":          "maybe",
	}

	assert.True(t, answers.Bool(KeyIsOnLease))
	assert.True(t, answers.Bool(KeyPropertyManagerIsAgent))
	assert.False(t, answers.Bool("SOMETHING_ELSE"))
	assert.False(t, answers.Bool("MISSING"))
}

func TestAnswersDate(t *testing.T) {
	t.Parallel()

	answers := Answers{KeyStartDate: "2023-04-01"}
	got, err := answers.Date(KeyStartDate)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), got)

	got, err = answers.Date(KeyDateOfBirth)
	require.NoError(t, err, "absent date is not an error")
	assert.True(t, got.IsZero())
}

func TestAnswersDateMalformed(t *testing.T) {
	t.Parallel()

	answers := Answers{KeyStartDate: "01/04/2023"}
	_, err := answers.Date(KeyStartDate)
	require.Error(t, err)

	var base *serrors.Base
	require.ErrorAs(t, err, &base)
	assert.Equal(t, KeyStartDate, base.Field, "validation error names the offending key")
}

func TestSubmissionStatusTransitions(t *testing.T) {
	t.Parallel()

	sub := New("REPAIRS", Answers{KeyAddress: "1 Example St"})
	assert.Equal(t, StatusPending, sub.Status())

	failed := sub.MarkFailed("boom")
	assert.Equal(t, StatusFailed, failed.Status())
	assert.Equal(t, "boom", failed.FailureNote())

	processed := failed.MarkProcessed(failed.IssueID())
	assert.Equal(t, StatusProcessed, processed.Status())
	assert.Empty(t, processed.FailureNote(), "a successful run clears the failure note")
}
