package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/profile-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/profile-service/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

const (
	basicRealm = "profiles"

	// LocalsUsername holds the authenticated basic-auth username.
	LocalsUsername = "username"
)

// BasicAuth checks HTTP basic credentials against the configured admin.
func BasicAuth(auth *services.AuthService) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm:           basicRealm,
		Authorizer:      auth.Verify,
		ContextUsername: LocalsUsername,
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+basicRealm+`"`)
			return unauthorized(c, "Unauthorized: valid credentials required")
		},
	})
}

// JWTProtected validates HS256 bearer tokens issued by AuthService.
func JWTProtected(auth *services.AuthService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: auth.SigningKey()},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c, "Unauthorized: invalid or expired token")
		},
	})
}

// AdminRequired guards write routes. Basic credentials always work; bearer
// tokens are accepted only when token issuance is enabled.
func AdminRequired(auth *services.AuthService) fiber.Handler {
	basic := BasicAuth(auth)
	if !auth.TokensEnabled() {
		return basic
	}
	bearer := JWTProtected(auth)

	return func(c *fiber.Ctx) error {
		if isBearer(c.Get(fiber.HeaderAuthorization)) {
			return bearer(c)
		}
		return basic(c)
	}
}

func isBearer(header string) bool {
	return len(header) > 7 && strings.EqualFold(header[:7], "bearer ")
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: msg,
	})
}
