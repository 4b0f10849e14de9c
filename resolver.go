package main

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// ErrValidation marks a request rejected before any store round trip.
// Handlers map it to 400; everything else on a fallible op is a 500.
var ErrValidation = errors.New("validation failed")

// phoneRe gates the character set only. Matching everywhere else is
// exact-string on the number as stored: "+1 555-000-999" and
// "5550009999" are different keys. Normalization is a product
// decision we have not taken (see DESIGN.md).
var phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

func validatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("%w: phone number required", ErrValidation)
	}
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("%w: malformed phone number", ErrValidation)
	}
	return nil
}

// Resolver answers "who/what is this phone number" and records spam
// complaints against the record store. Calls that act on behalf of a
// user take the actor id explicitly.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver { return &Resolver{db: db} }

// Verdict is the merged identity-and-risk answer for one number.
// Identified discriminates "we know a name" from "reports only";
// IsSpam is always derived as SpamCount > 0.
type Verdict struct {
	Identified bool   `json:"identified"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	IsSpam     bool   `json:"isSpam"`
	SpamCount  int    `json:"spamCount"`
}

/* ===================== Caller identification ====================== */

// Identify resolves a phone number with contact-first precedence:
//
//  1. a Contact row wins outright and its cached counter is the
//     spam count (users and the report ledger are not consulted);
//  2. else a User row supplies the identity and the ledger supplies
//     the live count;
//  3. else the ledger count alone.
//
// Identify never fails. Each lookup degrades to absence on a storage
// error, so the worst case is the zero verdict; callers cannot tell
// "no data" from "store unreachable" and that is accepted.
func (rs *Resolver) Identify(phone string) Verdict {
	phone = strings.TrimSpace(phone)

	if c := rs.contactByPhone(phone); c != nil {
		return Verdict{
			Identified: true,
			Name:       c.Name,
			Email:      c.Email,
			IsSpam:     c.SpamReportsCount > 0,
			SpamCount:  c.SpamReportsCount,
		}
	}

	count := rs.spamReportCount(phone)
	if u := rs.userByPhone(phone); u != nil {
		return Verdict{
			Identified: true,
			Name:       u.Name,
			Email:      u.Email,
			IsSpam:     count > 0,
			SpamCount:  count,
		}
	}
	return Verdict{IsSpam: count > 0, SpamCount: count}
}

// contactByPhone returns the first contact row for the number, any
// owner. Multiple rows may exist; no tie-break is defined.
func (rs *Resolver) contactByPhone(phone string) *Contact {
	var c Contact
	err := rs.db.Where("phone_number = ?", phone).First(&c).Error
	if err == nil {
		return &c
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[resolver] contact lookup %q: %v", phone, err)
	}
	return nil
}

func (rs *Resolver) userByPhone(phone string) *User {
	var u User
	err := rs.db.Where("phone_number = ?", phone).First(&u).Error
	if err == nil {
		return &u
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[resolver] user lookup %q: %v", phone, err)
	}
	return nil
}

func (rs *Resolver) spamReportCount(phone string) int {
	var n int64
	if err := rs.db.Model(&SpamReport{}).Where("phone_number = ?", phone).Count(&n).Error; err != nil {
		log.Printf("[resolver] spam count %q: %v", phone, err)
		return 0
	}
	return int(n)
}

// GetSpamReports lists the ledger for a number, newest first. Degrades
// to an empty list on storage failure.
func (rs *Resolver) GetSpamReports(phone string) []SpamReport {
	reps := []SpamReport{}
	err := rs.db.Where("phone_number = ?", strings.TrimSpace(phone)).
		Order("created_at DESC").
		Find(&reps).Error
	if err != nil {
		log.Printf("[resolver] spam reports %q: %v", phone, err)
		return []SpamReport{}
	}
	return reps
}

/* ===================== Spam reporting ====================== */

// ReportSpam appends to the spam_reports ledger, then opportunistically
// bumps the cached counter on one contact row for the number (any
// owner). The ledger insert is the operation: if it fails, nothing
// happened. The counter step is best-effort; its failure is logged and
// the call still succeeds, so the cache may lag the ledger forever.
func (rs *Resolver) ReportSpam(reporterID, phone, reason string) (*SpamReport, error) {
	phone = strings.TrimSpace(phone)
	if strings.TrimSpace(reporterID) == "" {
		return nil, fmt.Errorf("%w: reporter id required", ErrValidation)
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	rep := SpamReport{
		ID:             newID(),
		ReporterUserID: reporterID,
		PhoneNumber:    phone,
		Reason:         strings.TrimSpace(reason),
	}
	if err := rs.db.Create(&rep).Error; err != nil {
		return nil, err
	}

	// Read current count, add one, write back. Not transactional with
	// the insert above: concurrent reports can lose increments. The
	// ledger stays right regardless.
	if c := rs.contactByPhone(phone); c != nil {
		c.SpamReportsCount++
		c.IsSpam = true
		if err := rs.db.Save(c).Error; err != nil {
			log.Printf("[resolver] spam counter update %q: %v", phone, err)
		}
	}
	return &rep, nil
}

/* ===================== Users ====================== */

// CreateOrGetUser is the unified sign-in/registration path: lookup by
// phone, return the stored row on a hit (supplied name/email are
// ignored, even if they differ), create on a miss. Lookup-then-create
// is racy; the unique index on phone_number is the store-side backstop.
func (rs *Resolver) CreateOrGetUser(phone, name, email string) (*User, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	var u User
	err := rs.db.Where("phone_number = ?", phone).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u = User{
		ID:          newID(),
		PhoneNumber: phone,
		Name:        name,
		Email:       strings.TrimSpace(email),
	}
	if err := rs.db.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (rs *Resolver) GetUserByID(id string) (*User, error) {
	var u User
	if err := rs.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser edits the profile fields. Nil means "leave unchanged".
func (rs *Resolver) UpdateUser(id string, name, email *string) (*User, error) {
	var u User
	if err := rs.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		u.Name = n
	}
	if email != nil {
		u.Email = strings.TrimSpace(*email)
	}
	if err := rs.db.Save(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

/* ===================== Contacts ====================== */

// AddContact inserts a new annotation for the owner. No dedup against
// existing contacts with the same number; adding twice makes two rows.
func (rs *Resolver) AddContact(ownerID, phone, name, email string) (*Contact, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id required", ErrValidation)
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	c := Contact{
		ID:          newID(),
		UserID:      ownerID,
		PhoneNumber: phone,
		Name:        name,
		Email:       strings.TrimSpace(email),
	}
	if err := rs.db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetContactsByUser lists one owner's contacts ordered by name.
func (rs *Resolver) GetContactsByUser(ownerID string) ([]Contact, error) {
	cs := []Contact{}
	err := rs.db.Where("user_id = ?", ownerID).Order("name").Find(&cs).Error
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// ContactUpdate carries a partial edit; nil fields stay unchanged.
type ContactUpdate struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

func (rs *Resolver) UpdateContact(id string, upd ContactUpdate) (*Contact, error) {
	var c Contact
	if err := rs.db.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if upd.Name != nil {
		n := strings.TrimSpace(*upd.Name)
		if n == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		c.Name = n
	}
	if upd.Email != nil {
		c.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.PhoneNumber != nil {
		p := strings.TrimSpace(*upd.PhoneNumber)
		if err := validatePhone(p); err != nil {
			return nil, err
		}
		c.PhoneNumber = p
	}
	if err := rs.db.Save(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (rs *Resolver) DeleteContact(id string) error {
	res := rs.db.Delete(&Contact{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
