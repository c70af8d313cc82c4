package model

import "gorm.io/gorm"

// Amenity is a named feature shared across properties ("Balcony", "Gym").
// Names are globally unique; amenities are looked up by name and created
// on first use.
type Amenity struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex;not null"`

	Properties []Property `json:"-" gorm:"many2many:property_amenities;"`
}
