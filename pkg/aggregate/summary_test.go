package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_EmptyInput(t *testing.T) {
	s := Summarize(nil, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, s.TotalCount)
	assert.Equal(t, 0.0, s.TotalValue)
	assert.Equal(t, 0.0, s.AveragePrice)
	assert.Empty(t, s.ByType)
	assert.Empty(t, s.TopLocations)
	assert.Empty(t, s.Bedrooms)

	assert.Len(t, s.PriceRanges, 5)
	for _, b := range s.PriceRanges {
		assert.Equal(t, 0, b.Count)
	}
	assert.Len(t, s.AreaRanges, 5)
	for _, b := range s.AreaRanges {
		assert.Equal(t, 0, b.Count)
	}
	assert.Len(t, s.MonthlyTrends, 6)
}

func TestSummarize_Totals(t *testing.T) {
	listings := []Listing{
		{Price: "40000", Type: "Apartment", Period: "/month"},
		{Price: "60000", Type: "Apartment", Period: ""},
		{Price: "", Type: "", Period: ""},
	}

	s := Summarize(listings, time.Now())

	assert.Equal(t, 3, s.TotalCount)
	assert.Equal(t, 100000.0, s.TotalValue)
	assert.InDelta(t, 33333.33, s.AveragePrice, 0.01)
	assert.Equal(t, 2, s.ByType["Apartment"])
	assert.Equal(t, 1, s.ByType["Unknown"])
	assert.Equal(t, 1, s.ForRent)
	assert.Equal(t, 2, s.ForSale)
}

func TestSummarize_PriceBoundaryIsLowerInclusive(t *testing.T) {
	s := Summarize([]Listing{{Price: "50000"}}, time.Now())

	counts := map[string]int{}
	for _, b := range s.PriceRanges {
		counts[b.Label] = b.Count
	}
	assert.Equal(t, 0, counts["Under ₹50K"])
	assert.Equal(t, 1, counts["₹50K - ₹1L"])
}

func TestSummarize_PriceBuckets(t *testing.T) {
	listings := []Listing{
		{Price: "49999"},
		{Price: "99999"},
		{Price: "1,50,000"},
		{Price: "4,99,999"},
		{Price: "5,00,000"},
	}

	s := Summarize(listings, time.Now())

	assert.Equal(t, BucketCount{"Under ₹50K", 1}, s.PriceRanges[0])
	assert.Equal(t, BucketCount{"₹50K - ₹1L", 1}, s.PriceRanges[1])
	assert.Equal(t, BucketCount{"₹1L - ₹2L", 1}, s.PriceRanges[2])
	assert.Equal(t, BucketCount{"₹2L - ₹5L", 1}, s.PriceRanges[3])
	assert.Equal(t, BucketCount{"Above ₹5L", 1}, s.PriceRanges[4])
}

func TestSummarize_AreaBuckets(t *testing.T) {
	listings := []Listing{
		{Area: 199},
		{Area: 200},
		{Area: 420},
		{Area: 799},
		{Area: 800},
	}

	s := Summarize(listings, time.Now())

	assert.Equal(t, BucketCount{"Under 200", 1}, s.AreaRanges[0])
	assert.Equal(t, BucketCount{"200 - 400", 1}, s.AreaRanges[1])
	assert.Equal(t, BucketCount{"400 - 600", 1}, s.AreaRanges[2])
	assert.Equal(t, BucketCount{"600 - 800", 1}, s.AreaRanges[3])
	assert.Equal(t, BucketCount{"Above 800", 1}, s.AreaRanges[4])
}

func TestSummarize_TopLocationsGroupByCommaPrefix(t *testing.T) {
	listings := []Listing{
		{Location: "Koramangala, Bangalore"},
		{Location: "Koramangala , Bangalore"},
		{Location: "Whitefield, Bangalore"},
		{Location: "Indiranagar"},
		{Location: "HSR Layout, Bangalore"},
		{Location: "BTM Layout, Bangalore"},
		{Location: "Jayanagar, Bangalore"},
	}

	s := Summarize(listings, time.Now())

	assert.Len(t, s.TopLocations, 5)
	assert.Equal(t, BucketCount{"Koramangala", 2}, s.TopLocations[0])
	// ties keep first-insertion order
	assert.Equal(t, "Whitefield", s.TopLocations[1].Label)
	assert.Equal(t, "Indiranagar", s.TopLocations[2].Label)
}

func TestSummarize_BedroomBuckets(t *testing.T) {
	listings := []Listing{
		{Bedrooms: 0},
		{Bedrooms: 0},
		{Bedrooms: 2},
		{Bedrooms: 3},
	}

	s := Summarize(listings, time.Now())

	assert.Equal(t, []BucketCount{
		{"Studio", 2},
		{"2 BHK", 1},
		{"3 BHK", 1},
	}, s.Bedrooms)
}

func TestSummarize_MonthlyTrends(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	listings := []Listing{
		{CreatedAt: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2025, time.June, 30, 23, 59, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)}, // outside window
	}

	s := Summarize(listings, now)

	labels := make([]string, 0, len(s.MonthlyTrends))
	for _, b := range s.MonthlyTrends {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"Jan 2025", "Feb 2025", "Mar 2025", "Apr 2025", "May 2025", "Jun 2025"}, labels)

	assert.Equal(t, 1, s.MonthlyTrends[0].Count)
	assert.Equal(t, 2, s.MonthlyTrends[5].Count)

	total := 0
	for _, b := range s.MonthlyTrends {
		total += b.Count
	}
	assert.Equal(t, 3, total)
}
