package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/repository"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

func parseDonorQuery(c *fiber.Ctx) (repository.DonorFilter, error) {
	filter := repository.DonorFilter{Location: strings.TrimSpace(c.Query("location"))}
	if raw := c.Query("blood_type"); raw != "" {
		bt, ok := parseBloodTypeParam(raw)
		if !ok {
			return filter, apperrors.NewValidationError("unknown blood type", map[string]any{"blood_type": raw})
		}
		filter.BloodType = &bt
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.DonorStatus(strings.ToLower(strings.TrimSpace(raw)))
		if !status.Valid() {
			return filter, apperrors.NewValidationError("status must be available or unavailable", map[string]any{"status": raw})
		}
		filter.Status = &status
	}
	filter.Limit, filter.Offset = parsePage(c)
	return filter, nil
}

func parseRecipientQuery(c *fiber.Ctx) (repository.RecipientFilter, error) {
	filter := repository.RecipientFilter{Location: strings.TrimSpace(c.Query("location"))}
	if raw := c.Query("blood_type"); raw != "" {
		bt, ok := parseBloodTypeParam(raw)
		if !ok {
			return filter, apperrors.NewValidationError("unknown blood type", map[string]any{"blood_type": raw})
		}
		filter.BloodType = &bt
	}
	if raw := c.Query("urgency"); raw != "" {
		urgency, ok := domain.ParseUrgency(raw)
		if !ok {
			return filter, apperrors.NewValidationError("urgency must be critical, high or standard", map[string]any{"urgency": raw})
		}
		filter.Urgency = &urgency
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.RecipientStatus(strings.ToLower(strings.TrimSpace(raw)))
		filter.Status = &status
	}
	filter.Limit, filter.Offset = parsePage(c)
	return filter, nil
}

// parsePage returns limit and offset; no page_size means no limit.
func parsePage(c *fiber.Ctx) (int, int) {
	pageSize := parseInt(c.Query("page_size"), 0)
	if pageSize == 0 {
		return 0, 0
	}
	page := parseInt(c.Query("page"), 1)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// parseBloodTypeParam accepts "A+" even when form decoding turned the plus into a space.
func parseBloodTypeParam(raw string) (domain.BloodType, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed != raw && !strings.HasSuffix(trimmed, "+") && !strings.HasSuffix(trimmed, "-") {
		trimmed += "+"
	}
	return domain.ParseBloodType(trimmed)
}
