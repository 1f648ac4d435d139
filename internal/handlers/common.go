package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam parses a positive integer route parameter. Returns 0 and
// false when the value is not a valid positive number.
func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Params(name)
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || val == 0 {
		return 0, false
	}
	return uint(val), true
}

// queryBool parses an optional boolean query filter. Absent or
// unparseable values are omitted rather than erroring.
func queryBool(c *fiber.Ctx, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &val
}

// queryInt parses an optional integer query filter, ignoring invalid
// values.
func queryInt(c *fiber.Ctx, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &val
}

// queryFloat parses an optional float query filter, ignoring invalid
// values.
func queryFloat(c *fiber.Ctx, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &val
}
