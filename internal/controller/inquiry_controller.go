package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"homevista_backend/internal/model"
	"homevista_backend/pkg/database"
)

type InquiryInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// CreateInquiry records a visitor message for a property.
func CreateInquiry(c *fiber.Ctx) error {
	propertyIDStr := c.Params("property_id")
	propertyID, err := strconv.ParseUint(propertyIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	var property model.Property
	if err := database.GetDB().First(&property, propertyID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Property not found",
		})
	}

	input := new(InquiryInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.Name == "" || input.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and email are required",
		})
	}

	inquiry := model.Inquiry{
		PropertyID: uint(propertyID),
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Message:    input.Message,
		Status:     model.InquiryStatusNew,
	}

	if err := database.GetDB().Create(&inquiry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(inquiry)
}

// GetInquiries lists inquiries for the admin, optionally by status.
func GetInquiries(c *fiber.Ctx) error {
	db := database.GetDB().Preload("Property").Order("created_at desc")

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var inquiries []model.Inquiry
	if err := db.Find(&inquiries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	return c.JSON(inquiries)
}

var validInquiryStatuses = map[string]bool{
	model.InquiryStatusNew:       true,
	model.InquiryStatusContacted: true,
	model.InquiryStatusClosed:    true,
}

// UpdateInquiryStatus moves an inquiry through the triage states.
func UpdateInquiryStatus(c *fiber.Ctx) error {
	id := c.Params("id")

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil || !validInquiryStatuses[input.Status] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be new, contacted or closed",
		})
	}

	var inquiry model.Inquiry
	if err := database.GetDB().First(&inquiry, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Inquiry not found",
		})
	}

	if err := database.GetDB().Model(&inquiry).Update("status", input.Status).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	return c.JSON(inquiry)
}

// MarkInquiryAsRead flags an inquiry as seen by the admin.
func MarkInquiryAsRead(c *fiber.Ctx) error {
	id := c.Params("id")

	var inquiry model.Inquiry
	if err := database.GetDB().First(&inquiry, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Inquiry not found",
		})
	}

	if err := database.GetDB().Model(&inquiry).Update("read_status", true).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": database.MapError(err),
		})
	}

	return c.JSON(inquiry)
}
