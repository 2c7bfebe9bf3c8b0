package controllers

import (
	"github.com/gofiber/fiber/v2"

	"invoice-portal/metrics"
	"invoice-portal/middlewares"
	"invoice-portal/theme"
)

// GetThemeCSS serves the live stylesheet generated by the application
// engine: a :root block plus the dark-scope block.
func GetThemeCSS(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/css; charset=utf-8")
	return c.SendString(themeCSS.CSS())
}

// GetTheme reports the current mode and overrides.
func GetTheme(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"mode":      themeStore.Mode(),
		"overrides": themeStore.Overrides(),
	})
}

// ToggleTheme flips dark mode. The change persists and takes effect on
// the next stylesheet fetch.
func ToggleTheme(c *fiber.Ctx) error {
	dark := themeStore.Toggle()
	metrics.ThemeMutations.WithLabelValues("toggle").Inc()
	return c.JSON(fiber.Map{"mode": modeString(dark)})
}

// PutOverrides replaces the user token overrides wholesale.
func PutOverrides(c *fiber.Ctx) error {
	var ov theme.Overrides
	if err := middlewares.BindAndValidate(c, &ov); err != nil {
		return err
	}
	if err := middlewares.ValidateTokenMap(ov.Light); err != nil {
		return err
	}
	if err := middlewares.ValidateTokenMap(ov.Dark); err != nil {
		return err
	}

	themeStore.SetOverrides(ov)
	metrics.ThemeMutations.WithLabelValues("set_overrides").Inc()
	return c.JSON(fiber.Map{"overrides": themeStore.Overrides()})
}

// DeleteOverrides clears persisted overrides.
func DeleteOverrides(c *fiber.Ctx) error {
	themeStore.ResetOverrides()
	metrics.ThemeMutations.WithLabelValues("reset_overrides").Inc()
	return c.JSON(fiber.Map{"overrides": themeStore.Overrides()})
}

func modeString(dark bool) string {
	if dark {
		return theme.ModeDark
	}
	return theme.ModeLight
}
