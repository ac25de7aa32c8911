package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifematch-service/internal/api/dto"
	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/matcher"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

// CompatibilityHandler answers blood type lookups without touching storage.
type CompatibilityHandler struct{}

// NewCompatibilityHandler constructs handler.
func NewCompatibilityHandler() *CompatibilityHandler {
	return &CompatibilityHandler{}
}

// Get handles GET /api/v1/blood-types/:type/compatibility. The "+" in a
// type must be sent percent-encoded as %2B.
func (h *CompatibilityHandler) Get(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("type"))
	if err != nil {
		raw = c.Params("type")
	}
	bloodType, ok := parseBloodTypeParam(raw)
	if !ok {
		return apperrors.NewValidationError("unknown blood type", map[string]any{"blood_type": raw})
	}

	resp := dto.CompatibilityResponse{
		BloodType:   bloodType,
		CanReceive:  matcher.CompatibleDonorTypes(bloodType),
		CanDonateTo: matcher.CompatibleRecipientTypes(bloodType),
	}
	switch bloodType {
	case domain.BloodTypeONeg:
		resp.Note = "universal donor"
	case domain.BloodTypeABPos:
		resp.Note = "universal recipient"
	}
	return c.JSON(fiber.Map{"data": resp})
}
