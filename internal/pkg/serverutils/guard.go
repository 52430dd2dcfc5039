package serverutils

import (
	"os"

	"civicvoice-be/internal/entity"
	"civicvoice-be/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionLocal = "session"
	UserIdLocal  = "user_id"

	loginPath = "/login"
)

// BearerToken extracts the bearer token from the Authorization header, or
// "" when absent.
func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	return authHeader[7:]
}

// RequireRole guards protected routes. It loads the cached session record
// and checks the stored role; an absent, malformed or mismatched session
// answers 401 with a redirect to the login route. This is a UX-level check
// only: the stored role is trusted as-is, real authorization stays
// server-side on every data endpoint.
func RequireRole(store session.Store, role entity.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := BearerToken(ctx)
		if token == "" {
			return redirectToLogin(ctx)
		}

		rec := store.Load(ctx.Context(), token)
		if !rec.HasRole(role) {
			return redirectToLogin(ctx)
		}

		ctx.Locals(SessionLocal, rec)
		ctx.Locals(UserIdLocal, rec.User.Id.String())
		return ctx.Next()
	}
}

// RequireSession admits any authenticated session regardless of role.
func RequireSession(store session.Store) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := BearerToken(ctx)
		if token == "" {
			return redirectToLogin(ctx)
		}

		rec := store.Load(ctx.Context(), token)
		if rec == nil || rec.User == nil {
			return redirectToLogin(ctx)
		}

		ctx.Locals(SessionLocal, rec)
		ctx.Locals(UserIdLocal, rec.User.Id.String())
		return ctx.Next()
	}
}

func redirectToLogin(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"code":    401,
		"message": "authentication required",
		"data":    fiber.Map{"redirect": loginPath},
	})
}

// SessionFromLocals returns the record stashed by RequireRole.
func SessionFromLocals(ctx *fiber.Ctx) *session.Record {
	rec, _ := ctx.Locals(SessionLocal).(*session.Record)
	return rec
}

// ParseUserToken validates a signed JWT and returns its user_id claim.
// Used by the websocket handshake, which cannot rely on middleware locals.
func ParseUserToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(jwtSecret()), nil
	})
	if err != nil || !token.Valid {
		return "", fiber.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	userId, ok := claims["user_id"].(string)
	if !ok {
		return "", fiber.ErrUnauthorized
	}
	return userId, nil
}

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return secret
}
