package model

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Property Types
type PropertyType string

const (
	PropertyTypeApartment PropertyType = "Apartment"
	PropertyTypeHouse     PropertyType = "House"
	PropertyTypeVilla     PropertyType = "Villa"
	PropertyTypeStudio    PropertyType = "Studio"
	PropertyTypePenthouse PropertyType = "Penthouse"
	PropertyTypePlot      PropertyType = "Plot"
	PropertyTypeOffice    PropertyType = "Office"
)

// Price Period. Empty string marks a one-time sale price.
type PricePeriod string

const (
	PeriodSale    PricePeriod = ""
	PeriodMonthly PricePeriod = "/month"
)

// Badge Colors
type BadgeColor string

const (
	BadgeGreen  BadgeColor = "green"
	BadgeOrange BadgeColor = "orange"
	BadgeBlue   BadgeColor = "blue"
)

// Parking codes. Canonical encoding for the parking attribute.
type ParkingType int

const (
	ParkingNone ParkingType = iota
	ParkingAvailable
	ParkingStreet
	ParkingGarage
)

type Property struct {
	gorm.Model
	Title       string      `json:"title" gorm:"not null"`
	Slug        string      `json:"slug" gorm:"uniqueIndex;not null"`
	Location    string      `json:"location" gorm:"not null"`
	Price       float64     `json:"price" gorm:"not null"`
	Period      PricePeriod `json:"period"`
	Badge       string      `json:"badge"`
	BadgeColor  BadgeColor  `json:"badge_color" gorm:"default:'green'"`
	Description string      `json:"description" gorm:"type:text"`

	// Features fields
	Bedrooms  int          `json:"bedrooms" gorm:"not null"`
	Bathrooms int          `json:"bathrooms" gorm:"not null"`
	Area      float64      `json:"area"`
	AreaUnit  string       `json:"area_unit" gorm:"default:'sq.ft'"`
	Type      PropertyType `json:"type" gorm:"not null"`
	Parking   ParkingType  `json:"parking" gorm:"default:0"`
	YearBuilt int          `json:"year_built"`

	Images    []PropertyImage `json:"images" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	Amenities []Amenity       `json:"amenities" gorm:"many2many:property_amenities;"`
}

type PropertyImage struct {
	gorm.Model
	PropertyID   uint   `json:"property_id" gorm:"index"`
	URL          string `json:"url" gorm:"not null"`
	ThumbnailURL string `json:"thumbnail_url"`
	MediumURL    string `json:"medium_url"`
	LargeURL     string `json:"large_url"`
	PublicID     string `json:"public_id" gorm:"index"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Format       string `json:"format"`
	Bytes        int64  `json:"bytes"`
	IsPrimary    bool   `json:"is_primary" gorm:"default:false"`
	SortOrder    int    `json:"sort_order" gorm:"default:0"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

// DeriveSlug builds the URL-safe identifier used for property pages:
// lower-cased, every run of characters outside [a-z0-9] becomes a single
// hyphen, leading and trailing hyphens stripped. The reduction is literal
// character-class work, so "&" and "@" drop out instead of turning into
// words, and an already valid slug passes through unchanged.
func DeriveSlug(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// BeforeCreate fills the slug from the title when none was supplied.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Slug == "" {
		base := DeriveSlug(p.Title)
		if base == "" {
			base = "property"
		}

		// Keep the slug unique; append a counter on collision.
		candidate := base
		for i := 2; ; i++ {
			var count int64
			tx.Model(&Property{}).Where("slug = ?", candidate).Count(&count)
			if count == 0 {
				break
			}
			candidate = fmt.Sprintf("%s-%d", base, i)
		}

		p.Slug = candidate
	}
	return nil
}

// PrimaryImage returns the image flagged as primary, falling back to the
// first image when none is flagged.
func (p *Property) PrimaryImage() *PropertyImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}
