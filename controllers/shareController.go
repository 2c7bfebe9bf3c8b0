package controllers

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"invoice-portal/database"
	"invoice-portal/invoice"
	"invoice-portal/middlewares"
	"invoice-portal/models"
)

const shareTokenTTL = 30 * 24 * time.Hour

type createShareLinkDTO struct {
	TransactionNumber string `json:"no_transaksi" validate:"required,max=64"`
}

type shareClaims struct {
	TransactionNumber string `json:"no_transaksi"`
	jwt.RegisteredClaims
}

func shareSecret() []byte {
	return []byte(os.Getenv("SHARE_TOKEN_SECRET"))
}

// CreateShareLink resolves an invoice by transaction number and mints two
// public links for it: a static link embedding the raw bundle, and a
// token link carrying a signed access token. Idempotency-Key is honored
// by the middleware, so retries return the same response.
func CreateShareLink(c *fiber.Ctx) error {
	var dto createShareLinkDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	res := invoice.Resolve(c.Context(), invoice.RouteParams{
		TransactionNumber: dto.TransactionNumber,
	}, api, nil)
	if res.Message != "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": res.Message})
	}

	bundle := map[string]any{
		"order":         res.Order,
		"order_details": res.Details,
		"payments":      res.Payments,
	}
	raw, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	staticPayload := base64.RawURLEncoding.EncodeToString(raw)

	expiresAt := time.Now().Add(shareTokenTTL)
	claims := shareClaims{
		TransactionNumber: dto.TransactionNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   dto.TransactionNumber,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(shareSecret())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not sign share token")
	}

	link := models.ShareLink{
		LinkID:            uuid.NewString(),
		TransactionNumber: dto.TransactionNumber,
		StaticPayload:     staticPayload,
		Token:             token,
		Bundle:            raw,
		ExpiresAt:         expiresAt,
	}
	if err := database.DB.Create(&link).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not store share link")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"link_id":    link.LinkID,
		"static_url": "/invoice/static/" + staticPayload,
		"token_url":  "/invoice/token/" + token,
		"expires_at": expiresAt,
	})
}

// GetInvoiceByToken serves the token-resolution endpoint consumed by the
// fetcher: it verifies the signed token and responds with the raw bundle
// in the standard {data: ...} envelope.
func GetInvoiceByToken(c *fiber.Ctx) error {
	tokenStr := c.Params("token")

	var claims shareClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return shareSecret(), nil
	})
	if err != nil || claims.TransactionNumber == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid invoice token"})
	}

	res := invoice.Resolve(c.Context(), invoice.RouteParams{
		TransactionNumber: claims.TransactionNumber,
	}, api, nil)
	if res.Message != "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": res.Message})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"order":         res.Order,
		"order_details": res.Details,
		"payments":      res.Payments,
	}})
}
