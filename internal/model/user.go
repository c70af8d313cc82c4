package model

import "gorm.io/gorm"

// User is the back-office admin account. The service runs with a single
// seeded admin; the model still carries profile fields the settings
// screen edits.
type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`

	Name          string `json:"name"`
	AgencyName    string `json:"agency_name"`
	PhoneNumber   string `json:"phone_number"`
	BusinessEmail string `json:"business_email"`
	About         string `json:"about" gorm:"type:text"`
	LogoURL       string `json:"logo_url"`
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":             u.ID,
		"email":          u.Email,
		"name":           u.Name,
		"agency_name":    u.AgencyName,
		"phone_number":   u.PhoneNumber,
		"business_email": u.BusinessEmail,
		"about":          u.About,
		"logo_url":       u.LogoURL,
	}
}
