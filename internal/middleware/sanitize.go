package middleware

import (
	"bytes"
	"encoding/json"
	"html"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

// SanitizeInput strips markup from every string in a JSON request body,
// including nested objects and arrays. Entities produced by the sanitizer are
// decoded again so plain text like "R&B" survives unchanged.
func SanitizeInput() fiber.Handler {
	policy := bluemonday.StrictPolicy()
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch:
		default:
			return c.Next()
		}
		body := c.Body()
		if len(bytes.TrimSpace(body)) == 0 || !c.Is("json") {
			return c.Next()
		}

		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var payload interface{}
		if err := dec.Decode(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Malformed JSON",
				"error":   err.Error(),
			})
		}

		cleaned, err := json.Marshal(sanitizeValue(policy, payload))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Malformed JSON",
				"error":   err.Error(),
			})
		}
		c.Request().SetBody(cleaned)
		return c.Next()
	}
}

func sanitizeValue(policy *bluemonday.Policy, v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return html.UnescapeString(policy.Sanitize(val))
	case map[string]interface{}:
		for k, inner := range val {
			val[k] = sanitizeValue(policy, inner)
		}
		return val
	case []interface{}:
		for i, inner := range val {
			val[i] = sanitizeValue(policy, inner)
		}
		return val
	default:
		return v
	}
}
