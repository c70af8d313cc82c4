package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"homevista_backend/internal/model"
	"homevista_backend/pkg/database"
	"homevista_backend/pkg/utils/image"
	"homevista_backend/pkg/utils/jwt"
	"homevista_backend/pkg/utils/storage"
	"homevista_backend/pkg/utils/validation"
)

var brandingStore *storage.BrandingStore

func InitSettingsController(store *storage.BrandingStore) {
	brandingStore = store
}

type ProfileUpdateInput struct {
	Name          string `json:"name"`
	AgencyName    string `json:"agency_name"`
	PhoneNumber   string `json:"phone_number"`
	BusinessEmail string `json:"business_email"`
	About         string `json:"about"`
}

func GetProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(user.GetPublicProfile())
}

func UpdateProfile(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	input := new(ProfileUpdateInput)

	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	updates := map[string]interface{}{
		"name":           input.Name,
		"agency_name":    input.AgencyName,
		"phone_number":   input.PhoneNumber,
		"business_email": input.BusinessEmail,
		"about":          input.About,
	}

	if err := database.GetDB().Model(&user).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user.GetPublicProfile(),
	})
}

// UploadLogo validates, re-encodes and stores the agency logo, replacing
// the previous one.
func UploadLogo(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	file, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if err := validation.ValidateImage(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var user model.User
	if err := database.GetDB().First(&user, claims.UserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	logoURL, err := brandingStore.UploadLogo(buf, contentType, user.AgencyName, file.Filename)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload logo",
		})
	}

	oldLogo := user.LogoURL
	if err := database.GetDB().Model(&user).Update("logo_url", logoURL).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	if oldLogo != "" {
		if err := brandingStore.DeleteLogo(oldLogo); err != nil {
			log.Printf("Could not delete previous logo: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"message":  "Logo uploaded successfully",
		"logo_url": logoURL,
	})
}
