package controller

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"homevista_backend/internal/model"
	"homevista_backend/pkg/aggregate"
	"homevista_backend/pkg/database"
	"homevista_backend/pkg/media/cloudinary"
)

const MaxPropertyImages = 16

type ImageInput struct {
	URL       string `json:"url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
	IsPrimary bool   `json:"is_primary"`
}

type PropertyInput struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Location    string `json:"location"`
	Price       string `json:"price"` // free text; reduced to a non-negative number
	Period      string `json:"period"`
	Badge       string `json:"badge"`
	BadgeColor  string `json:"badge_color"`
	Description string `json:"description"`

	Bedrooms  int    `json:"bedrooms"`
	Bathrooms int    `json:"bathrooms"`
	Area      string `json:"area"` // free text, same rule as price
	AreaUnit  string `json:"area_unit"`
	Type      string `json:"type"`
	Parking   int    `json:"parking"`
	YearBuilt int    `json:"year_built"`

	Images    []ImageInput `json:"images"`
	Amenities []string     `json:"amenities"`
}

// parseAmount reduces free-text numeric input ("₹45,000", " 1150 ") to a
// non-negative number, defaulting to 0.
func parseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// normalizeAmenities trims, drops empties and dedups while preserving
// first-insertion order.
func normalizeAmenities(names []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

var validBadgeColors = map[string]bool{
	"":       true, // defaults to green
	"green":  true,
	"orange": true,
	"blue":   true,
}

// validatePropertyInput is the client-side required-field check moved to
// the API boundary. It reports every failing field at once; no write is
// attempted when the map is non-empty.
func validatePropertyInput(input *PropertyInput, requireSlug, requireImages bool) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(input.Title) == "" {
		errs["title"] = "Title is required"
	}
	if strings.TrimSpace(input.Location) == "" {
		errs["location"] = "Location is required"
	}
	if strings.TrimSpace(input.Price) == "" {
		errs["price"] = "Price is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		errs["description"] = "Description is required"
	}
	if input.Bedrooms < 1 {
		errs["bedrooms"] = "Bedrooms must be at least 1"
	}
	if input.Bathrooms < 1 {
		errs["bathrooms"] = "Bathrooms must be at least 1"
	}
	if requireSlug && strings.TrimSpace(input.Slug) == "" {
		errs["slug"] = "Slug is required"
	}
	if requireImages && len(input.Images) == 0 {
		errs["images"] = "At least one image is required"
	}
	if !validBadgeColors[input.BadgeColor] {
		errs["badge_color"] = "Badge color must be green, orange or blue"
	}
	if input.Parking < int(model.ParkingNone) || input.Parking > int(model.ParkingGarage) {
		errs["parking"] = "Invalid parking code"
	}

	return errs
}

func applyPropertyInput(property *model.Property, input *PropertyInput) {
	property.Title = input.Title
	property.Location = input.Location
	property.Price = parseAmount(input.Price)
	property.Period = model.PricePeriod(input.Period)
	property.Badge = input.Badge
	property.BadgeColor = model.BadgeColor(input.BadgeColor)
	if property.BadgeColor == "" {
		property.BadgeColor = model.BadgeGreen
	}
	property.Description = input.Description
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.Area = parseAmount(input.Area)
	if input.AreaUnit != "" {
		property.AreaUnit = input.AreaUnit
	}
	property.Type = model.PropertyType(input.Type)
	property.Parking = model.ParkingType(input.Parking)
	property.YearBuilt = input.YearBuilt
}

// buildImageRows maps upload results into image rows. Exactly one row is
// primary: the first explicitly flagged input wins, otherwise the first
// image. Index position becomes the sort order.
func buildImageRows(propertyID uint, inputs []ImageInput) []model.PropertyImage {
	primaryIndex := 0
	for i, img := range inputs {
		if img.IsPrimary {
			primaryIndex = i
			break
		}
	}

	rows := make([]model.PropertyImage, 0, len(inputs))
	for i, img := range inputs {
		rows = append(rows, model.PropertyImage{
			PropertyID:   propertyID,
			URL:          img.URL,
			ThumbnailURL: cloudinary.Thumbnail(img.URL),
			MediumURL:    cloudinary.Medium(img.URL),
			LargeURL:     cloudinary.Large(img.URL),
			PublicID:     img.PublicID,
			Width:        img.Width,
			Height:       img.Height,
			Format:       img.Format,
			Bytes:        img.Bytes,
			IsPrimary:    i == primaryIndex,
			SortOrder:    i,
		})
	}
	return rows
}

// resolveAmenities looks each name up, creating it on first use.
func resolveAmenities(tx *gorm.DB, names []string) ([]model.Amenity, error) {
	amenities := make([]model.Amenity, 0, len(names))
	for _, name := range names {
		var amenity model.Amenity
		if err := tx.Where("name = ?", name).FirstOrCreate(&amenity, model.Amenity{Name: name}).Error; err != nil {
			return nil, err
		}
		amenities = append(amenities, amenity)
	}
	return amenities, nil
}

func preloadProperty(db *gorm.DB) *gorm.DB {
	return db.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("property_images.sort_order ASC")
	}).Preload("Amenities")
}

// CreateProperty persists a new listing with its images and amenities in
// one transaction.
func CreateProperty(c *fiber.Ctx) error {
	input := new(PropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if fieldErrs := validatePropertyInput(input, false, true); len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrs,
		})
	}

	if len(input.Images) > MaxPropertyImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Maximum 16 images allowed",
		})
	}

	// On create the slug always derives from the title (BeforeCreate);
	// a client-supplied slug is only honored on edit.
	property := model.Property{}
	applyPropertyInput(&property, input)

	tx := database.GetDB().Begin()

	if err := tx.Create(&property).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	for _, image := range buildImageRows(property.ID, input.Images) {
		if err := tx.Create(&image).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": database.MapError(err),
			})
		}
	}

	amenities, err := resolveAmenities(tx, normalizeAmenities(input.Amenities))
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}
	if len(amenities) > 0 {
		if err := tx.Model(&property).Association("Amenities").Append(amenities); err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": database.MapError(err),
			})
		}
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete the property creation",
		})
	}

	preloadProperty(database.GetDB()).First(&property, property.ID)

	return c.Status(fiber.StatusCreated).JSON(property)
}

// UpdateProperty applies an edit. Image rows are fully replaced only when
// the payload carries images; amenity links are always fully replaced,
// including the empty list, which intentionally clears all associations.
func UpdateProperty(c *fiber.Ctx) error {
	id := c.Params("id")
	input := new(PropertyInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if fieldErrs := validatePropertyInput(input, true, false); len(fieldErrs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fieldErrs,
		})
	}

	if len(input.Images) > MaxPropertyImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Maximum 16 images allowed",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	tx := database.GetDB().Begin()

	applyPropertyInput(&property, input)
	property.Slug = model.DeriveSlug(input.Slug)

	if err := tx.Save(&property).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	if len(input.Images) > 0 {
		if err := tx.Unscoped().Where("property_id = ?", property.ID).Delete(&model.PropertyImage{}).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": database.MapError(err),
			})
		}
		for _, image := range buildImageRows(property.ID, input.Images) {
			if err := tx.Create(&image).Error; err != nil {
				tx.Rollback()
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": database.MapError(err),
				})
			}
		}
	}

	amenities, err := resolveAmenities(tx, normalizeAmenities(input.Amenities))
	if err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}
	if err := tx.Model(&property).Association("Amenities").Replace(amenities); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete the update",
		})
	}

	preloadProperty(database.GetDB()).First(&property, property.ID)

	return c.JSON(property)
}

// DeleteProperty removes the listing, its image rows and amenity links,
// then best-effort deletes the CDN assets.
func DeleteProperty(c *fiber.Ctx) error {
	id := c.Params("id")

	var property model.Property
	if err := preloadProperty(database.GetDB()).First(&property, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	tx := database.GetDB().Begin()

	if err := tx.Model(&property).Association("Amenities").Clear(); err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}
	if err := tx.Unscoped().Where("property_id = ?", property.ID).Delete(&model.PropertyImage{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}
	if err := tx.Delete(&property).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete deletion",
		})
	}

	// CDN cleanup never blocks the delete; a leaked asset is only logged.
	if mediaClient != nil {
		for _, image := range property.Images {
			if image.PublicID == "" {
				continue
			}
			if err := mediaClient.Destroy(context.Background(), image.PublicID); err != nil {
				log.Printf("Could not delete media asset %s: %v", image.PublicID, err)
			}
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListProperties is the public listing endpoint with filtering, sorting
// and pagination.
func ListProperties(c *fiber.Ctx) error {
	query := aggregate.Query{
		Search:    c.Query("search"),
		Type:      c.Query("type", aggregate.FilterAll),
		SortBy:    c.Query("sort_by", "created_at"),
		SortOrder: c.Query("sort_order", "desc"),
	}
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 9)
	if perPage < 1 || perPage > 50 {
		perPage = 9
	}
	if page < 1 {
		page = 1
	}

	var properties []model.Property
	if err := preloadProperty(database.GetDB()).Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	filtered := aggregate.FilterAndSort(model.ToListings(properties), query)
	pageItems := aggregate.Paginate(filtered, perPage, page)

	// Map the page back to full rows, preserving the aggregated order.
	byID := make(map[uint]model.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}
	results := make([]model.Property, 0, len(pageItems))
	for _, item := range pageItems {
		results = append(results, byID[item.ID])
	}

	return c.JSON(fiber.Map{
		"properties": results,
		"total":      len(filtered),
		"page":       page,
		"per_page":   perPage,
	})
}

// ListAdminProperties returns the full catalogue for the admin table,
// newest first. Filtering and sorting happen on the admin's query, same
// contract as the public endpoint.
func ListAdminProperties(c *fiber.Ctx) error {
	var properties []model.Property
	if err := preloadProperty(database.GetDB()).
		Order("created_at desc").
		Find(&properties).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	return c.JSON(properties)
}

// GetPropertyBySlug serves the public detail page.
func GetPropertyBySlug(c *fiber.Ctx) error {
	propertySlug := c.Params("slug")

	var property model.Property
	if err := preloadProperty(database.GetDB()).
		Where("slug = ?", propertySlug).
		First(&property).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	return c.JSON(property)
}
