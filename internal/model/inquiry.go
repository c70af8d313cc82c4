package model

import "gorm.io/gorm"

// Inquiry Status
const (
	InquiryStatusNew       = "new"
	InquiryStatusContacted = "contacted"
	InquiryStatusClosed    = "closed"
)

// Inquiry is a visitor message sent from a property page.
type Inquiry struct {
	gorm.Model
	PropertyID uint   `json:"property_id" gorm:"index"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message" gorm:"type:text"`
	Status     string `json:"status" gorm:"default:'new'"`
	ReadStatus bool   `json:"read_status" gorm:"default:false"`

	Property Property `json:"property" gorm:"foreignKey:PropertyID"`
}
