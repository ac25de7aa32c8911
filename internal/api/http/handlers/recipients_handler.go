package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifematch-service/internal/api/dto"
	"github.com/spec-kit/lifematch-service/internal/matcher"
	"github.com/spec-kit/lifematch-service/internal/service"
	"github.com/spec-kit/lifematch-service/internal/validation"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

// RecipientsHandler exposes recipient requests and their donor matches.
type RecipientsHandler struct {
	registration *service.RegistrationService
	matching     *service.MatchService
}

// NewRecipientsHandler constructs handler.
func NewRecipientsHandler(registration *service.RegistrationService, matching *service.MatchService) *RecipientsHandler {
	return &RecipientsHandler{registration: registration, matching: matching}
}

// Register POST /api/v1/recipients.
func (h *RecipientsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRecipientRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	recipient, err := h.registration.RegisterRecipient(c.UserContext(), validation.RecipientInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		BloodType:    req.BloodType,
		Hospital:     req.Hospital,
		Location:     req.Location,
		Urgency:      req.Urgency,
		OrganType:    req.OrganType,
		AmountNeeded: req.AmountNeeded,
		Condition:    req.Condition,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRecipientResponse(recipient)})
}

// List GET /api/v1/recipients?blood_type=&urgency=&status=&location=.
func (h *RecipientsHandler) List(c *fiber.Ctx) error {
	filter, err := parseRecipientQuery(c)
	if err != nil {
		return err
	}
	recipients, err := h.matching.ListRecipients(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRecipientList(recipients)})
}

// Get GET /api/v1/recipients/:id.
func (h *RecipientsHandler) Get(c *fiber.Ctx) error {
	recipient, err := h.matching.GetRecipient(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRecipientResponse(recipient)})
}

// Matches GET /api/v1/recipients/:id/matches.
func (h *RecipientsHandler) Matches(c *fiber.Ctx) error {
	ctx := c.UserContext()
	recipient, donors, err := h.matching.FindMatches(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	contacts, err := h.matching.ListMatches(ctx, recipient.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RecipientMatchesResponse{
		Recipient:        dto.NewRecipientResponse(recipient),
		CompatibleTypes:  matcher.CompatibleDonorTypes(recipient.BloodType),
		CompatibleDonors: dto.NewDonorList(donors),
		Contacts:         dto.NewMatchList(contacts),
	}})
}
