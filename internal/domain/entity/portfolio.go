package entity

import (
	"encoding/json"
	"time"

	"github.com/nasirhussainn/qwork-admin-dashboard/pkg/moderation"
)

// Portfolio is a user-submitted portfolio under moderation. Images and
// Keywords keep the source JSON shape ({id,url} / {id,keyword} arrays).
type Portfolio struct {
	ID                 int64
	UserID             int64
	Title              string
	Description        string
	Status             moderation.Status
	Video              *string
	SupportingDocument *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Images   json.RawMessage
	Keywords json.RawMessage
}
