package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/MijaMange/showreel-saas/internal/middleware"
	"github.com/MijaMange/showreel-saas/internal/models"
	"github.com/MijaMange/showreel-saas/internal/services"
	"github.com/MijaMange/showreel-saas/pkg/apperr"
)

// ProfileHandler handles HTTP requests for profile viewing and editing.
type ProfileHandler struct {
	resolver *services.ResolverService
	profiles *services.ProfileService
	validate *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(resolver *services.ResolverService, profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		resolver: resolver,
		profiles: profiles,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the viewing routes. The optional-auth
// middleware should already be applied to the router so owner viewing works.
func (h *ProfileHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/profiles/:slug", h.HandleResolveProfile)
	router.Get("/discover", h.HandleDiscover)
}

// RegisterOwnerRoutes registers the editing routes, which require a viewer
// identity.
func (h *ProfileHandler) RegisterOwnerRoutes(router fiber.Router) {
	meRoutes := router.Group("/me")
	meRoutes.Post("/profile/ensure", h.HandleEnsureProfile)
	meRoutes.Put("/profile", h.HandleSaveProfile)
	meRoutes.Patch("/profile", h.HandleUpdateProfile)
	meRoutes.Put("/works", h.HandleSaveWorks)
	meRoutes.Post("/publish", h.HandleTogglePublish)
}

// HandleResolveProfile answers a profile-view request: which record to show
// and from which source, for this slug and viewer.
func (h *ProfileHandler) HandleResolveProfile(c *fiber.Ctx) error {
	slug := c.Params("slug")
	mode := services.ResolveModePublic
	if c.Query("mode") == string(services.ResolveModeApp) {
		mode = services.ResolveModeApp
	}

	resolved, err := h.resolver.Resolve(slug, mode, middleware.Viewer(c))
	if err != nil {
		return writeResolveError(c, slug, err)
	}
	return c.JSON(resolved)
}

// HandleDiscover lists the demo catalog for the discover surface.
func (h *ProfileHandler) HandleDiscover(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"profiles": h.resolver.ListSeeds(),
	})
}

// HandleEnsureProfile returns the viewer's profile, creating one on first
// call.
func (h *ProfileHandler) HandleEnsureProfile(c *fiber.Ctx) error {
	profile, err := h.profiles.EnsureOwnerProfile(middleware.Viewer(c))
	if err != nil {
		return writeSaveError(c, err)
	}
	return c.JSON(profile)
}

// ProfileRequest is the editor's full profile payload. The theme palette and
// the tag/link limits are enforced here, at the editing surface.
type ProfileRequest struct {
	Slug         string               `json:"slug" validate:"required,min=1,max=100"`
	Name         string               `json:"name" validate:"max=100"`
	Role         string               `json:"role" validate:"max=100"`
	Bio          string               `json:"bio" validate:"max=2000"`
	Theme        string               `json:"theme" validate:"omitempty,oneof=Cinematic Editorial Minimal Fashion"`
	HeroImage    string               `json:"hero_image" validate:"omitempty,url"`
	HeroStyle    string               `json:"hero_style" validate:"omitempty,oneof=cover split minimal"`
	WorksLayout  string               `json:"works_layout" validate:"omitempty,oneof=grid masonry featured"`
	Location     string               `json:"location" validate:"max=100"`
	Availability string               `json:"availability" validate:"max=100"`
	Tags         []string             `json:"tags" validate:"max=3,dive,max=30"`
	Links        []models.ProfileLink `json:"links" validate:"max=4,dive"`
	IsPublished  bool                 `json:"is_published"`
}

// HandleSaveProfile persists a full profile payload for the viewer.
func (h *ProfileHandler) HandleSaveProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing profile request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	saved, err := h.profiles.SaveProfile(middleware.Viewer(c), &models.Profile{
		Slug:         req.Slug,
		Name:         req.Name,
		Role:         req.Role,
		Bio:          req.Bio,
		Theme:        req.Theme,
		HeroImage:    req.HeroImage,
		HeroStyle:    req.HeroStyle,
		WorksLayout:  req.WorksLayout,
		Location:     req.Location,
		Availability: req.Availability,
		Tags:         req.Tags,
		Links:        req.Links,
		IsPublished:  req.IsPublished,
	})
	if err != nil {
		return writeSaveError(c, err)
	}
	return c.JSON(saved)
}

// HandleUpdateProfile applies a partial change to the viewer's profile.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var fields models.ProfileUpdate
	if err := c.BodyParser(&fields); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	updated, err := h.profiles.UpdateProfile(middleware.Viewer(c), fields)
	if err != nil {
		return writeSaveError(c, err)
	}
	return c.JSON(updated)
}

// WorksRequest is the editor's full works payload: the stored list is
// replaced as a batch, never incrementally.
type WorksRequest struct {
	ProfileID string             `json:"profile_id" validate:"required"`
	Works     []models.WorkInput `json:"works" validate:"dive"`
}

// HandleSaveWorks replaces the full works list of the viewer's profile.
func (h *ProfileHandler) HandleSaveWorks(c *fiber.Ctx) error {
	var req WorksRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing works request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return writeValidationError(c, err)
	}

	works, err := h.profiles.SaveWorks(middleware.Viewer(c), req.ProfileID, req.Works)
	if err != nil {
		return writeSaveError(c, err)
	}
	return c.JSON(fiber.Map{
		"works": works,
	})
}

// HandleTogglePublish flips the viewer's profile visibility.
func (h *ProfileHandler) HandleTogglePublish(c *fiber.Ctx) error {
	var req struct {
		IsPublished bool `json:"is_published"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing publish request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.profiles.TogglePublish(middleware.Viewer(c), req.IsPublished); err != nil {
		return writeSaveError(c, err)
	}
	return c.JSON(fiber.Map{
		"message":      "Publish state updated",
		"is_published": req.IsPublished,
	})
}

// writeResolveError maps resolver outcomes onto HTTP statuses: absence is
// 404, a backend outage is 503 so the client can offer a retry.
func writeResolveError(c *fiber.Ctx, slug string, err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Profile %s not found", slug),
		})
	}
	log.Printf("Error resolving profile %s: %v", slug, err)
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"message": "Profile could not be loaded",
		"error":   err.Error(),
	})
}

// writeSaveError maps write-path failures onto HTTP statuses.
func writeSaveError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
			"error":   err.Error(),
		})
	case errors.Is(err, apperr.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Profile not found",
			"error":   err.Error(),
		})
	case errors.Is(err, apperr.ErrWriteRejected):
		log.Printf("Write rejected by backend: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "The backend rejected the write",
			"error":   err.Error(),
		})
	default:
		log.Printf("Error saving profile data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save profile data",
			"error":   err.Error(),
		})
	}
}

// writeValidationError renders validator errors field by field.
func writeValidationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
