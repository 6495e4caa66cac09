package http

import (
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Role is the kind of caller.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleBrand    Role = "brand"
	RoleAdmin    Role = "admin"
)

const actorContextKey = "storefront.actor"

// Actor is the authenticated caller. BrandID is set only for brands.
type Actor struct {
	Role    Role
	BrandID kernel.UUID
}

// Claims is the JWT payload issued to storefront callers.
type Claims struct {
	Role    string `json:"role"`
	BrandID string `json:"brand_id,omitempty"`
	jwt.RegisteredClaims
}

// Authenticate reads an optional HS256 bearer token. Requests without a token go on
// anonymously; a malformed or invalid token is rejected with 401.
func Authenticate(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				return errors.Wrap(ErrUnauthenticated, "authorization header is not a bearer token")
			}

			actor, err := parseActor(parser, secret, raw)
			if err != nil {
				return err
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func parseActor(parser *jwt.Parser, secret []byte, raw string) (Actor, error) {
	var claims Claims
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return Actor{}, errors.Wrapf(ErrUnauthenticated, "invalid token: %v", err)
	}

	actor := Actor{Role: Role(claims.Role)}
	switch actor.Role {
	case RoleCustomer, RoleAdmin:
	case RoleBrand:
		brandID, err := kernel.UUIDFromString(claims.BrandID)
		if err != nil {
			return Actor{}, errors.Wrap(ErrUnauthenticated, "brand token without a valid brand_id")
		}
		actor.BrandID = brandID
	default:
		return Actor{}, errors.Wrapf(ErrUnauthenticated, "unknown role %q", claims.Role)
	}
	return actor, nil
}

// requireRole returns the caller if it has role. Anonymous callers get 401, others 403.
func requireRole(c echo.Context, role Role, action string) (Actor, error) {
	actor, found := c.Get(actorContextKey).(Actor)
	if !found {
		return Actor{}, ErrUnauthenticated
	}
	if actor.Role != role {
		return Actor{}, errs.NewForbiddenError(string(actor.Role), action)
	}
	return actor, nil
}
