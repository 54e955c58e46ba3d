package auth

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"warehouse.GO/config"
	authRepo "warehouse.GO/model/repository/auth"
)

const actorKey = "actor"

// Actor is whoever authenticated the request. OperatorID is nil for the static
// API credentials, which act as managers.
type Actor struct {
	OperatorID *uint
	Username   string
	Group      string
}

// Can reports whether the actor's group grants perm.
func (a *Actor) Can(perm string) bool {
	return a != nil && Allowed(a.Group, perm)
}

// Middleware returns the auth middleware based on AUTH_TYPE env var.
func Middleware(db *gorm.DB) echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch os.Getenv("AUTH_TYPE") {
	case "key":
		return keyAuth(skipper)
	case "token":
		return tokenAuth(authRepo.NewAuthRepository(db), skipper)
	default:
		return basicAuth(skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func staticActor(name string) *Actor {
	return &Actor{Username: name, Group: GroupManagers}
}

func basicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if username == os.Getenv("API_USER") && password == os.Getenv("API_PASS") {
				c.Set(actorKey, staticActor(username))
				return true, nil
			}
			return false, nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			if apiKey != "" && key == apiKey {
				c.Set(actorKey, staticActor("api-key"))
				return true, nil
			}
			return false, nil
		},
		Skipper: skipper,
	})
}

func tokenAuth(repo *authRepo.AuthRepository, skipper middleware.Skipper) echo.MiddlewareFunc {
	staticKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(token string, c echo.Context) (bool, error) {
			if staticKey != "" && token == staticKey {
				c.Set(actorKey, staticActor("api-key"))
				return true, nil
			}
			accessToken, err := repo.FindActiveToken(token)
			if err != nil {
				return false, nil
			}
			op, err := repo.FindOperator(accessToken.OperatorID)
			if err != nil {
				return false, nil
			}
			id := op.OperatorID
			c.Set(actorKey, &Actor{OperatorID: &id, Username: op.Username, Group: op.GroupName})
			return true, nil
		},
		Skipper: skipper,
	})
}

// ActorFrom returns the authenticated actor, or nil.
func ActorFrom(c echo.Context) *Actor {
	a, _ := c.Get(actorKey).(*Actor)
	return a
}

// WithActor stores a on the request context. Used by tests and by routes that
// authenticate by other means.
func WithActor(c echo.Context, a *Actor) {
	c.Set(actorKey, a)
}

// Require rejects requests whose actor lacks perm.
func Require(perm string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFrom(c)
			if actor == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !actor.Can(perm) {
				return echo.NewHTTPError(http.StatusForbidden, "permission denied: "+perm)
			}
			return next(c)
		}
	}
}
