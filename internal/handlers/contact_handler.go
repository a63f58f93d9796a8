package handlers

import (
	"mangoadmi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles HTTP requests for contact-form submissions.
type ContactHandler struct {
	service *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{
		service: service,
	}
}

// RegisterRoutes registers the contact routes with the Fiber app.
func (h *ContactHandler) RegisterRoutes(router fiber.Router) {
	contactRoutes := router.Group("/contact")
	contactRoutes.Post("/submit", h.HandleSubmit)
	contactRoutes.Get("/", h.HandleGetContactForms)
	contactRoutes.Get("/:id", h.HandleGetContactForm)
	contactRoutes.Delete("/:id", h.HandleDeleteContactForm)
}

// HandleSubmit stores a new submission and acknowledges it.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var req services.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	form, err := h.service.SubmitContactForm(req)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thank you for contacting us. We have received your message and will get back to you soon!",
		"data":    form,
	})
}

// HandleGetContactForms lists every submission, newest first.
func (h *ContactHandler) HandleGetContactForms(c *fiber.Ctx) error {
	forms, err := h.service.GetContactForms()
	if err != nil {
		return err
	}
	return c.JSON(forms)
}

// HandleGetContactForm retrieves a single submission by id.
func (h *ContactHandler) HandleGetContactForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	form, err := h.service.GetContactForm(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(form)
}

// HandleDeleteContactForm removes a submission by id.
func (h *ContactHandler) HandleDeleteContactForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.service.DeleteContactForm(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Contact form deleted successfully",
	})
}
