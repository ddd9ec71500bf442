package handlers

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"artshop/internal/notify"
	"artshop/internal/services"
)

// newValidator reports field errors under their wire names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// bind parses the JSON body into dst and validates it. It writes the 400
// response itself and reports false when the caller should stop.
func bind(c *fiber.Ctx, validate *validator.Validate, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	return check(c, validate, dst)
}

// bindQuery is bind for GET procedures, reading query parameters.
func bindQuery(c *fiber.Ctx, validate *validator.Validate, dst interface{}) (bool, error) {
	if err := c.QueryParser(dst); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}
	return check(c, validate, dst)
}

func check(c *fiber.Ctx, validate *validator.Validate, dst interface{}) (bool, error) {
	err := validate.Struct(dst)
	if err == nil {
		return true, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// respondError maps service errors onto status codes.
func respondError(c *fiber.Ctx, procedure string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, notify.ErrInvalidNotification):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Please login", "error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Unauthorized", "error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Not found", "error": err.Error()})
	}
	log.Printf("Error in %s: %v", procedure, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": fmt.Sprintf("%s failed", procedure),
		"error":   err.Error(),
	})
}

func success(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}

// nullable writes JSON null for a nil pointer instead of an empty body.
func nullable[T any](c *fiber.Ctx, v *T) error {
	if v == nil {
		return c.Type("json").SendString("null")
	}
	return c.JSON(v)
}
