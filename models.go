package main

import "time"

// User is the persisted account record. One row per registered phone
// number; sign-in with a known number returns the existing row.
type User struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	PhoneNumber string    `gorm:"uniqueIndex;size:32;not null" json:"phone_number"`
	Name        string    `gorm:"size:120;not null" json:"name"`
	Email       string    `gorm:"size:320" json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Contact is one user's annotation of a phone number. The phone number
// is deliberately NOT unique: many users may annotate the same number,
// and nothing stops one user adding it twice.
//
// SpamReportsCount caches the spam_reports tally for this number. It is
// bumped opportunistically when a report comes in and can drift from
// the true count; spam_reports is the ledger, this field is best-effort.
type Contact struct {
	ID               string    `gorm:"primaryKey;type:text" json:"id"`
	UserID           string    `gorm:"index;type:text;not null" json:"user_id"`
	PhoneNumber      string    `gorm:"index;size:32;not null" json:"phone_number"`
	Name             string    `gorm:"size:120;not null" json:"name"`
	Email            string    `gorm:"size:320" json:"email,omitempty"`
	IsSpam           bool      `gorm:"not null;default:false" json:"is_spam"`
	SpamReportsCount int       `gorm:"not null;default:0" json:"spam_reports_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Contact) TableName() string { return "contacts" }

// SpamReport is an immutable event: user X flagged number P. Rows are
// only ever inserted; the set of rows per number is the source of
// truth for "how often has this number been reported".
type SpamReport struct {
	ID             string    `gorm:"primaryKey;type:text" json:"id"`
	ReporterUserID string    `gorm:"index;type:text;not null" json:"reporter_user_id"`
	PhoneNumber    string    `gorm:"index;size:32;not null" json:"phone_number"`
	Reason         string    `gorm:"size:500" json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func (SpamReport) TableName() string { return "spam_reports" }
