package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"homevista_backend/internal/model"
)

// SeedAdminUser creates the single back-office account when it does not
// exist yet. An empty password leaves the table untouched so a fresh
// deployment fails loudly at login instead of silently accepting "".
func SeedAdminUser(db *gorm.DB, email, password string) {
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Could not hash admin password: %v", err)
		return
	}

	admin := model.User{
		Email:      email,
		Password:   string(hashed),
		Name:       "Administrator",
		AgencyName: "HomeVista",
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return
	}

	log.Println("Admin user seeded successfully!")
}

// SeedDefaultProperties fills an empty catalogue with the default
// listings shown before the admin has created any. Existing rows always
// win; the seed never touches a non-empty table.
func SeedDefaultProperties(db *gorm.DB) {
	var count int64
	db.Model(&model.Property{}).Count(&count)
	if count > 0 {
		return
	}

	properties := []model.Property{
		{
			Title:       "Modern 2BHK Apartment in Koramangala",
			Location:    "Koramangala, Bangalore",
			Price:       45000,
			Period:      model.PeriodMonthly,
			Badge:       "For Rent",
			BadgeColor:  model.BadgeGreen,
			Description: "Bright two bedroom apartment close to the tech corridor, with covered parking and a shared gym.",
			Bedrooms:    2,
			Bathrooms:   2,
			Area:        1150,
			AreaUnit:    "sq.ft",
			Type:        model.PropertyTypeApartment,
			Parking:     model.ParkingGarage,
			YearBuilt:   2019,
		},
		{
			Title:       "Independent Villa with Garden",
			Location:    "Whitefield, Bangalore",
			Price:       21500000,
			Period:      model.PeriodSale,
			Badge:       "For Sale",
			BadgeColor:  model.BadgeBlue,
			Description: "Four bedroom villa on a quiet lane, east facing, with a private garden and two car garage.",
			Bedrooms:    4,
			Bathrooms:   4,
			Area:        2800,
			AreaUnit:    "sq.ft",
			Type:        model.PropertyTypeVilla,
			Parking:     model.ParkingGarage,
			YearBuilt:   2016,
		},
		{
			Title:       "Compact Studio near Metro",
			Location:    "Indiranagar, Bangalore",
			Price:       18000,
			Period:      model.PeriodMonthly,
			Badge:       "For Rent",
			BadgeColor:  model.BadgeOrange,
			Description: "Furnished studio two minutes from the metro station, ideal for a single professional.",
			Bedrooms:    0,
			Bathrooms:   1,
			Area:        420,
			AreaUnit:    "sq.ft",
			Type:        model.PropertyTypeStudio,
			Parking:     model.ParkingStreet,
			YearBuilt:   2021,
		},
	}

	for _, property := range properties {
		if err := db.Create(&property).Error; err != nil {
			log.Printf("Error seeding property %q: %v", property.Title, err)
		}
	}

	log.Println("Default properties seeded successfully!")
}
