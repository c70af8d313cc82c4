package aggregate

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Summary is the dashboard analytics payload. It is recomputed on demand
// and never persisted directly (the nightly job stores a serialized copy).
type Summary struct {
	TotalCount   int     `json:"total_count"`
	TotalValue   float64 `json:"total_value"`
	AveragePrice float64 `json:"average_price"`

	ByType        map[string]int `json:"by_type"`
	ForRent       int            `json:"for_rent"`
	ForSale       int            `json:"for_sale"`
	TopLocations  []BucketCount  `json:"top_locations"`
	PriceRanges   []BucketCount  `json:"price_ranges"`
	Bedrooms      []BucketCount  `json:"bedrooms"`
	AreaRanges    []BucketCount  `json:"area_ranges"`
	MonthlyTrends []BucketCount  `json:"monthly_trends"`
}

// BucketCount is one labelled histogram bucket.
type BucketCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

var priceBuckets = []struct {
	label string
	bound int64 // exclusive upper bound; 0 on the last bucket
}{
	{"Under ₹50K", 50_000},
	{"₹50K - ₹1L", 100_000},
	{"₹1L - ₹2L", 200_000},
	{"₹2L - ₹5L", 500_000},
	{"Above ₹5L", 0},
}

var areaBuckets = []struct {
	label string
	bound float64
}{
	{"Under 200", 200},
	{"200 - 400", 400},
	{"400 - 600", 600},
	{"600 - 800", 800},
	{"Above 800", 0},
}

// Summarize computes the dashboard summary for the given listings. The
// monthly trend covers the calendar month of now and the five preceding
// months, oldest first. An empty input returns a zeroed summary.
func Summarize(listings []Listing, now time.Time) Summary {
	s := Summary{
		ByType:        map[string]int{},
		TopLocations:  []BucketCount{},
		PriceRanges:   make([]BucketCount, len(priceBuckets)),
		Bedrooms:      []BucketCount{},
		AreaRanges:    make([]BucketCount, len(areaBuckets)),
		MonthlyTrends: make([]BucketCount, 0, 6),
	}
	for i, b := range priceBuckets {
		s.PriceRanges[i] = BucketCount{Label: b.label}
	}
	for i, b := range areaBuckets {
		s.AreaRanges[i] = BucketCount{Label: b.label}
	}

	locationCounts := map[string]int{}
	locationOrder := []string{}
	bedroomCounts := map[int]int{}

	for _, l := range listings {
		price := float64(PriceValue(l.Price))
		s.TotalValue += price

		typ := l.Type
		if typ == "" {
			typ = "Unknown"
		}
		s.ByType[typ]++

		if l.Period == PeriodMonthly {
			s.ForRent++
		} else {
			s.ForSale++
		}

		loc := locationPrefix(l.Location)
		if _, seen := locationCounts[loc]; !seen {
			locationOrder = append(locationOrder, loc)
		}
		locationCounts[loc]++

		s.PriceRanges[priceBucketIndex(PriceValue(l.Price))].Count++
		s.AreaRanges[areaBucketIndex(l.Area)].Count++
		bedroomCounts[l.Bedrooms]++
	}

	s.TotalCount = len(listings)
	if s.TotalCount > 0 {
		s.AveragePrice = s.TotalValue / float64(s.TotalCount)
	}

	s.TopLocations = topLocations(locationCounts, locationOrder, 5)
	s.Bedrooms = bedroomBuckets(bedroomCounts)
	s.MonthlyTrends = monthlyTrends(listings, now)

	return s
}

// locationPrefix groups locations by the part before the first comma.
func locationPrefix(location string) string {
	if i := strings.Index(location, ","); i >= 0 {
		location = location[:i]
	}
	return strings.TrimSpace(location)
}

// priceBucketIndex places a price exactly on a boundary into the bucket
// whose lower bound it equals (buckets are [lower, upper)).
func priceBucketIndex(price int64) int {
	for i, b := range priceBuckets {
		if b.bound == 0 || price < b.bound {
			return i
		}
	}
	return len(priceBuckets) - 1
}

func areaBucketIndex(area float64) int {
	for i, b := range areaBuckets {
		if b.bound == 0 || area < b.bound {
			return i
		}
	}
	return len(areaBuckets) - 1
}

func topLocations(counts map[string]int, order []string, n int) []BucketCount {
	out := make([]BucketCount, 0, len(order))
	for _, loc := range order {
		out = append(out, BucketCount{Label: loc, Count: counts[loc]})
	}
	// Stable sort keeps first-insertion order on equal counts.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func bedroomBuckets(counts map[int]int) []BucketCount {
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]BucketCount, 0, len(keys))
	for _, k := range keys {
		label := "Studio"
		if k > 0 {
			label = fmt.Sprintf("%d BHK", k)
		}
		out = append(out, BucketCount{Label: label, Count: counts[k]})
	}
	return out
}

func monthlyTrends(listings []Listing, now time.Time) []BucketCount {
	out := make([]BucketCount, 0, 6)
	for i := 5; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		count := 0
		for _, l := range listings {
			if !l.CreatedAt.Before(start) && l.CreatedAt.Before(end) {
				count++
			}
		}
		out = append(out, BucketCount{Label: start.Format("Jan 2006"), Count: count})
	}
	return out
}
