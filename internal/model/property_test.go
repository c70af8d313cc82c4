package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	assert.Equal(t, "3bhk-apartment", DeriveSlug("3BHK Apartment!!"))
	assert.Equal(t, "a-b", DeriveSlug("  A/B  "))
	assert.Equal(t, "cozy-studio", DeriveSlug("Cozy Studio"))
	assert.Equal(t, "sea-view-penthouse-mumbai", DeriveSlug("Sea View Penthouse, Mumbai"))

	// Symbols reduce to separators, they never expand into words.
	assert.Equal(t, "rooms-suites", DeriveSlug("Rooms & Suites"))
	assert.Equal(t, "flat-2a", DeriveSlug("Flat @2A"))
	assert.Equal(t, "2bhk-45-000-1150-sq-ft", DeriveSlug("2BHK @ ₹45,000 -- 1150 sq.ft"))

	// A valid slug is a fixed point.
	assert.Equal(t, "rooms-suites", DeriveSlug("rooms-suites"))
	assert.Equal(t, "cozy-studio-2", DeriveSlug("cozy-studio-2"))

	assert.Equal(t, "", DeriveSlug("!!!"))
	assert.Equal(t, "", DeriveSlug(""))
}

func TestPrimaryImage(t *testing.T) {
	var empty Property
	assert.Nil(t, empty.PrimaryImage())

	p := Property{Images: []PropertyImage{
		{URL: "first"},
		{URL: "second", IsPrimary: true},
	}}
	assert.Equal(t, "second", p.PrimaryImage().URL)

	// No flagged image falls back to the first.
	p.Images[1].IsPrimary = false
	assert.Equal(t, "first", p.PrimaryImage().URL)
}
