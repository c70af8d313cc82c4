package controller

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"

	"homevista_backend/pkg/media/cloudinary"
	"homevista_backend/pkg/utils/validation"
)

var mediaClient *cloudinary.Client

// InitUploadController injects the media-host client shared by the
// upload endpoints and the property delete cleanup.
func InitUploadController(client *cloudinary.Client) {
	mediaClient = client
}

type uploadFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// UploadImages accepts up to 10 files under the "images" field and
// forwards them to the media host concurrently. Files succeed and fail
// independently; the response always reports both sides so the form can
// keep partial results.
func UploadImages(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid multipart form",
		})
	}

	files := form.File["images"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded",
		})
	}

	var (
		mu       sync.Mutex
		uploaded []*cloudinary.UploadedImage
		failed   []uploadFailure
		upstream bool // at least one failure came from the media host
	)

	_, err = mediaClient.UploadMultiple(c.Context(), files, nil, func(r cloudinary.FileResult) {
		mu.Lock()
		defer mu.Unlock()
		if r.Err != nil {
			if !isValidationError(r.Err) {
				upstream = true
			}
			failed = append(failed, uploadFailure{Filename: r.Filename, Error: r.Err.Error()})
			return
		}
		uploaded = append(uploaded, r.Image)
	})

	if errors.Is(err, cloudinary.ErrTooManyFiles) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	// A batch where nothing made it through is the caller's fault unless
	// the media host itself turned something down.
	status := fiber.StatusOK
	if len(uploaded) == 0 {
		status = fiber.StatusBadRequest
		if upstream {
			status = fiber.StatusBadGateway
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"uploaded": uploaded,
		"failed":   failed,
	})
}

func isValidationError(err error) bool {
	return errors.Is(err, validation.ErrFileSize) ||
		errors.Is(err, validation.ErrFileType) ||
		errors.Is(err, validation.ErrNotAnImage) ||
		errors.Is(err, validation.ErrFileRequired)
}

type DeleteImageInput struct {
	PublicID string `json:"public_id"`
}

// DeleteImage removes an asset from the media host by public id.
func DeleteImage(c *fiber.Ctx) error {
	input := new(DeleteImageInput)
	if err := c.BodyParser(input); err != nil || input.PublicID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "public_id is required",
		})
	}

	if err := mediaClient.Destroy(c.Context(), input.PublicID); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
