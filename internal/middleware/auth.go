package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mithuan2002/dropenote-sub000/internal/config"
	"github.com/mithuan2002/dropenote-sub000/internal/dto"
	"github.com/mithuan2002/dropenote-sub000/internal/models"
	"github.com/mithuan2002/dropenote-sub000/internal/services"
)

const identityKey = "identity"

// Identity is the authenticated caller bound to the request. Handlers pass its
// UserID explicitly into services; there is no ambient current-user state below the
// middleware. SessionID names the session the request rode in on, regardless of
// channel, so logout can revoke it.
type Identity struct {
	UserID    uuid.UUID
	SessionID uuid.UUID
	Username  string
	Role      string
}

// SessionProtected resolves the caller from the session cookie, or from a bearer
// access token for programmatic clients, and stores the Identity in locals. Runs
// before any role or ownership check so unauthenticated callers always get a plain
// 401.
func SessionProtected(auth *services.AuthService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user *models.User
		var session *models.Session

		if token := c.Cookies(cfg.Auth.CookieName); token != "" {
			if u, s, err := auth.CurrentUser(token); err == nil {
				user, session = u, s
			}
		}
		if user == nil {
			if bearer := strings.TrimPrefix(c.Get("Authorization"), "Bearer "); bearer != "" && bearer != c.Get("Authorization") {
				if u, s, err := auth.UserFromAccessToken(bearer); err == nil {
					user, session = u, s
				}
			}
		}

		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthenticated",
			})
		}

		c.Locals(identityKey, Identity{
			UserID:    user.ID,
			SessionID: session.ID,
			Username:  user.Username,
			Role:      user.Role,
		})
		return c.Next()
	}
}

// GetIdentity extracts the authenticated Identity from Fiber context locals.
func GetIdentity(c *fiber.Ctx) (Identity, bool) {
	id, ok := c.Locals(identityKey).(Identity)
	return id, ok
}
