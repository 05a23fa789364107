package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/MijaMange/showreel-saas/internal/middleware"
	"github.com/MijaMange/showreel-saas/pkg/objectstore"
)

// UploadHandler handles hero image uploads. The stored profile only ever
// references the returned URL; binary content stays in object storage.
type UploadHandler struct {
	uploader objectstore.Uploader
}

// NewUploadHandler creates a new UploadHandler. A nil uploader disables the
// endpoint.
func NewUploadHandler(uploader objectstore.Uploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
	}
}

// RegisterRoutes registers the upload routes; requires a viewer identity.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/me/hero-image", h.HandleUploadHeroImage)
}

// HandleUploadHeroImage stores the multipart "file" field and returns its
// public URL.
func (h *UploadHandler) HandleUploadHeroImage(c *fiber.Ctx) error {
	if h.uploader == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Image uploads are not available",
		})
	}

	viewer := middleware.Viewer(c)
	if viewer == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A 'file' form field is required",
			"error":   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Error opening uploaded file: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	url, err := h.uploader.UploadHeroImage(
		c.Context(), viewer.ID, fileHeader.Filename,
		file, fileHeader.Size, fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		log.Printf("Error uploading hero image for user %s: %v", viewer.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Upload failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}
