// Package aggregate shapes property lists for the admin table, the public
// listing page and the dashboard: filtering, sorting, pagination and the
// statistical summaries. Everything here is pure and operates on
// display-shaped Listing rows; callers map their rows in and keep the
// originals untouched.
package aggregate

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Listing is the display-shaped view of a property the admin table works
// on. Price is kept as the formatted string shown on screen; numeric
// comparisons strip everything but digits first, so currency formatting
// never changes sort or summary results.
type Listing struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Period      string    `json:"period"` // "/month" for rentals, "" for sale
	Type        string    `json:"type"`
	Bedrooms    int       `json:"bedrooms"`
	Area        float64   `json:"area"`
	CreatedAt   time.Time `json:"created_at"`
}

// Type filter values.
const (
	FilterAll  = "all"
	FilterRent = "rent"
	FilterSale = "sale"
)

// PeriodMonthly is the rental marker on Listing.Period.
const PeriodMonthly = "/month"

// Query drives FilterAndSort.
type Query struct {
	Search    string
	Type      string // all | rent | sale
	SortBy    string // title | price | location | created_at
	SortOrder string // asc | desc
}

// PriceValue reduces a formatted price string to an integer by dropping
// every non-digit rune. "₹1,00,000" and "100000" compare equal. Strings
// without digits reduce to 0.
func PriceValue(price string) int64 {
	var b strings.Builder
	for _, r := range price {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func matchesType(l Listing, filter string) bool {
	switch filter {
	case FilterRent:
		return l.Period == PeriodMonthly
	case FilterSale:
		return l.Period == ""
	default:
		return true
	}
}

func matchesSearch(l Listing, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(l.Title), term) ||
		strings.Contains(strings.ToLower(l.Location), term) ||
		strings.Contains(strings.ToLower(l.Description), term)
}

// FilterAndSort returns a new slice holding the listings matching the
// query, ordered by the requested field. The input is never mutated.
// An empty SortBy keeps the incoming order.
func FilterAndSort(listings []Listing, q Query) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if matchesType(l, q.Type) && matchesSearch(l, q.Search) {
			out = append(out, l)
		}
	}

	if q.SortBy == "" {
		return out
	}

	desc := q.SortOrder == "desc"
	sort.SliceStable(out, func(i, j int) bool {
		c := compareBy(out[i], out[j], q.SortBy)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareBy(a, b Listing, field string) int {
	switch field {
	case "price":
		return compareInt64(PriceValue(a.Price), PriceValue(b.Price))
	case "location":
		return strings.Compare(strings.ToLower(a.Location), strings.ToLower(b.Location))
	case "bedrooms":
		return compareInt64(int64(a.Bedrooms), int64(b.Bedrooms))
	case "created_at":
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
		return 0
	default: // title
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Paginate returns the 1-based page of the given size. Out-of-range pages
// yield an empty slice rather than panicking.
func Paginate(listings []Listing, pageSize, page int) []Listing {
	if pageSize <= 0 || page <= 0 {
		return []Listing{}
	}
	start := (page - 1) * pageSize
	if start >= len(listings) {
		return []Listing{}
	}
	end := start + pageSize
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}
