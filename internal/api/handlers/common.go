package handlers

import (
	"Aahar-Backend/domain"
	"github.com/gofiber/fiber/v2"
	"strconv"
	"time"
)

func actorFrom(c *fiber.Ctx) domain.Actor {
	userID, _ := c.Locals("user_id").(string)
	role, _ := c.Locals("role").(string)
	return domain.Actor{ID: userID, Role: role}
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultPageLimit)))
	if err != nil || limit < 1 {
		limit = domain.DefaultPageLimit
	}
	return page, limit
}

// queryTime accepts RFC 3339 timestamps or plain dates. The flag reports
// whether raw was a plain date.
func queryTime(c *fiber.Ctx, key string) (*time.Time, bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, false, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return &t, true, nil
	}
	return nil, false, domain.Wrapf(domain.ErrValidation, "invalid %s %q", key, raw)
}
