package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifematch-service/internal/api/dto"
	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/service"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

// MatchesHandler records donor outreach.
type MatchesHandler struct {
	matching *service.MatchService
}

// NewMatchesHandler constructs handler.
func NewMatchesHandler(matching *service.MatchService) *MatchesHandler {
	return &MatchesHandler{matching: matching}
}

// Contact POST /api/v1/matches.
func (h *MatchesHandler) Contact(c *fiber.Ctx) error {
	var req dto.ContactDonorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.RecipientID) == "" || strings.TrimSpace(req.DonorID) == "" {
		return apperrors.NewValidationError("recipient_id and donor_id required", nil)
	}
	match, err := h.matching.ContactDonor(c.UserContext(), req.RecipientID, req.DonorID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMatchResponse(match)})
}

// UpdateStatus PATCH /api/v1/matches/:id/status.
func (h *MatchesHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateMatchStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status := domain.MatchStatus(strings.ToLower(strings.TrimSpace(string(req.Status))))
	match, err := h.matching.UpdateMatchStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMatchResponse(match)})
}
