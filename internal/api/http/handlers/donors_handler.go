package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifematch-service/internal/api/dto"
	"github.com/spec-kit/lifematch-service/internal/service"
	"github.com/spec-kit/lifematch-service/internal/validation"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

// DonorsHandler exposes donor registration and the donor directory.
type DonorsHandler struct {
	registration *service.RegistrationService
	matching     *service.MatchService
}

// NewDonorsHandler constructs handler.
func NewDonorsHandler(registration *service.RegistrationService, matching *service.MatchService) *DonorsHandler {
	return &DonorsHandler{registration: registration, matching: matching}
}

// Register POST /api/v1/donors.
func (h *DonorsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterDonorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	donor, err := h.registration.RegisterDonor(c.UserContext(), validation.DonorInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		BloodType:     req.BloodType,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		DonationTypes: req.DonationTypes,
		OrganType:     req.OrganType,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDonorResponse(donor)})
}

// List GET /api/v1/donors?blood_type=&status=&location=&page=&page_size=.
func (h *DonorsHandler) List(c *fiber.Ctx) error {
	filter, err := parseDonorQuery(c)
	if err != nil {
		return err
	}
	donors, err := h.matching.ListDonors(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDonorList(donors)})
}

// Get GET /api/v1/donors/:id.
func (h *DonorsHandler) Get(c *fiber.Ctx) error {
	donor, err := h.matching.GetDonor(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDonorResponse(donor)})
}

// UpdateStatus PATCH /api/v1/donors/:id/status.
func (h *DonorsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateDonorStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	donor, err := h.registration.SetDonorStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDonorResponse(donor)})
}
