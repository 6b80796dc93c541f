package entity

import (
	"encoding/json"
	"time"

	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

// Account is a platform user account under moderation. Profile fields are the
// ones the dashboard renders; Interests is stored as raw JSON and passed
// through untouched.
type Account struct {
	ID        int64
	Email     string
	IsPremium bool
	IsActive  bool
	Status    moderation.Status
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile   AccountProfile
	Interests json.RawMessage
}

type AccountProfile struct {
	FirstName            string
	LastName             string
	ProfileImage         string
	DateOfBirth          string
	Address              string
	City                 string
	State                string
	YearsOfExperience    string
	Availability         string
	ProfessionalHeadshot string
	ProfessionalSummary  string
}

// Name composes the display name the way the dashboard does.
func (a *Account) Name() string {
	if a.Profile.FirstName == "" {
		return a.Profile.LastName
	}
	if a.Profile.LastName == "" {
		return a.Profile.FirstName
	}
	return a.Profile.FirstName + " " + a.Profile.LastName
}
