package reconcile

import "strings"

// ContactFields is the raw landlord or agent contact block from an intake
// submission. Any field may be blank.
type ContactFields struct {
	FullName    string
	Email       string
	Address     string
	PhoneNumber string
}

func (c ContactFields) Normalize() ContactFields {
	return ContactFields{
		FullName:    strings.TrimSpace(c.FullName),
		Email:       strings.TrimSpace(c.Email),
		Address:     strings.TrimSpace(c.Address),
		PhoneNumber: strings.TrimSpace(c.PhoneNumber),
	}
}

func (c ContactFields) Named() bool {
	return strings.TrimSpace(c.FullName) != ""
}

// NameOnly strips everything but the name.
func (c ContactFields) NameOnly() ContactFields {
	return ContactFields{FullName: strings.TrimSpace(c.FullName)}
}

// ResolveContacts decides which Person records a tenancy submission
// produces.
//
//	agentIsPrimary | landlord named | agent named | landlord row        | agent row
//	false          | yes            | any         | full contact        | none
//	false          | no             | any         | none                | none
//	true           | yes            | yes         | name only           | full contact
//	true           | no             | yes         | none                | full contact
//	true           | any            | no          | as above            | none
//
// When the property manager is an agent, the agent is the primary contact
// and the landlord's non-name details are deliberately not captured, even
// if the form supplied them.
func ResolveContacts(agentIsPrimary bool, landlord, agent ContactFields) (landlordSpec, agentSpec *ContactFields) {
	if !agentIsPrimary {
		if landlord.Named() {
			full := landlord.Normalize()
			landlordSpec = &full
		}
		return landlordSpec, nil
	}

	if agent.Named() {
		full := agent.Normalize()
		agentSpec = &full
	}
	if landlord.Named() {
		nameOnly := landlord.NameOnly()
		landlordSpec = &nameOnly
	}
	return landlordSpec, agentSpec
}
