package middlewares

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"invoice-portal/theme"
)

var validate = validator.New()

// BindAndValidate parses the request body into dst and validates it.
// Returns fiber.ErrBadRequest for parse errors and validator.ValidationErrors
// for validation issues; both are turned into responses by ErrorHandler.
func BindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return validate.Struct(dst)
}

// ValidateTokenMap rejects override maps that name unknown design tokens.
func ValidateTokenMap(tokens map[string]string) error {
	for name := range tokens {
		if !theme.ValidToken(name) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "unknown theme token: "+name)
		}
	}
	return nil
}
