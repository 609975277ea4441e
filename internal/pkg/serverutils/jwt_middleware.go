package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// userClaimKeys are tried in order; tokens from different issuers name the
// subject differently.
var userClaimKeys = []string{"user_id", "sub", "id"}

// JwtMiddleware verifies an HMAC signed bearer token and stores the caller's
// id in ctx.Locals("user_id").
func JwtMiddleware(secret string) fiber.Handler {
	return jwtMiddleware(secret, false)
}

// JwtStreamMiddleware also accepts the token as a "token" query parameter,
// since browsers cannot set headers on a websocket handshake.
func JwtStreamMiddleware(secret string) fiber.Handler {
	return jwtMiddleware(secret, true)
}

func jwtMiddleware(secret string, allowQuery bool) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := ""
		if authHeader := ctx.Get("Authorization"); len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		} else if allowQuery {
			tokenStr = ctx.Query("token")
		}
		if tokenStr == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Missing token"))
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid claims"))
		}

		userId, ok := userFromClaims(claims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse("Invalid claims"))
		}

		ctx.Locals("user_id", userId)
		return ctx.Next()
	}
}

func userFromClaims(claims jwt.MapClaims) (string, bool) {
	for _, key := range userClaimKeys {
		if raw, ok := claims[key].(string); ok {
			if _, err := uuid.Parse(raw); err == nil {
				return raw, true
			}
		}
	}
	return "", false
}

// UserID reads the id stored by JwtMiddleware.
func UserID(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return userId, nil
}
