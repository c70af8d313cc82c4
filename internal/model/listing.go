package model

import (
	"strconv"

	"homevista_backend/pkg/aggregate"
)

// ToListing maps a property row into the display-shaped record the
// aggregation package works on.
func (p *Property) ToListing() aggregate.Listing {
	return aggregate.Listing{
		ID:          p.ID,
		Title:       p.Title,
		Location:    p.Location,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', 0, 64),
		Period:      string(p.Period),
		Type:        string(p.Type),
		Bedrooms:    p.Bedrooms,
		Area:        p.Area,
		CreatedAt:   p.CreatedAt,
	}
}

func ToListings(properties []Property) []aggregate.Listing {
	listings := make([]aggregate.Listing, 0, len(properties))
	for i := range properties {
		listings = append(listings, properties[i].ToListing())
	}
	return listings
}
