package submission

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tenancyjustice/clerk/pkg/serrors"
)

// Intake answer keys. Missing optional keys read as blank values, never as
// errors.
const (
	KeyFirstName   = "FIRST_NAME"
	KeyLastName    = "LAST_NAME"
	KeyEmail       = "EMAIL"
	KeyPhone       = "PHONE"
	KeyDateOfBirth = "DATE_OF_BIRTH"

	KeyAddress   = "ADDRESS"
	KeySuburb    = "SUBURB"
	KeyPostcode  = "POSTCODE"
	KeyStartDate = "START_DATE"
	KeyIsOnLease = "IS_ON_LEASE"

	KeyPropertyManagerIsAgent = "PROPERTY_MANAGER_IS_AGENT"

	KeyLandlordName    = "LANDLORD_NAME"
	KeyLandlordEmail   = "LANDLORD_EMAIL"
	KeyLandlordAddress = "LANDLORD_ADDRESS"
	KeyLandlordPhone   = "LANDLORD_PHONE"

	KeyAgentName    = "AGENT_NAME"
	KeyAgentEmail   = "AGENT_EMAIL"
	KeyAgentAddress = "AGENT_ADDRESS"
	KeyAgentPhone   = "AGENT_PHONE"
)

const dateLayout = "2006-01-02"

// Answers is the raw intake form payload, decoded from JSON. Values are
// whatever the form sent: strings, numbers, booleans.
type Answers map[string]any

// String reads a key as text. Numeric answers are coerced to their string
// representation (postcodes arrive as JSON numbers from some form
// backends).
func (a Answers) String(key string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// Bool reads a key as a flag. Absent, blank, or unrecognized values are
// false.
func (a Answers) Bool(key string) bool {
	v, ok := a[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(strings.ToLower(t)))
		return err == nil && parsed
	default:
		return false
	}
}

// Date reads a key as an ISO date. An absent or blank value is the zero
// time; a malformed value is a validation error naming the key.
func (a Answers) Date(key string) (time.Time, error) {
	raw := a.String(key)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, serrors.NewValidationError(key, fmt.Sprintf("malformed date %q, expected YYYY-MM-DD", raw))
	}
	return parsed, nil
}
