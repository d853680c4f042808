package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mtfsantos/task-manager/modules/auth"
)

const (
	// SubjectContextKey is the key under which the authenticated subject is
	// stored in the Fiber context.
	SubjectContextKey = "subject"

	detailNotAuthenticated  = "Not authenticated"
	detailInvalidCredential = "Could not validate credentials"
)

// AuthMiddleware gates requests on a valid bearer token. An absent or
// non-Bearer Authorization header yields "Not authenticated"; a Bearer token
// that fails verification yields "Could not validate credentials". Expired
// and malformed tokens are not distinguished.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)

		if header == "" || !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return unauthorized(c, detailNotAuthenticated)
		}

		subject, err := authPort.VerifyToken(c.UserContext(), token)
		if err != nil {
			return unauthorized(c, detailInvalidCredential)
		}

		c.Locals(SubjectContextKey, subject)
		return c.Next()
	}
}

// unauthorized writes a 401 with the bearer challenge header.
func unauthorized(c *fiber.Ctx, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Detail: detail})
}
