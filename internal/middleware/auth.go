package middleware

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/tilemart/catalog-gateway/pkg/errs"
	"github.com/tilemart/catalog-gateway/pkg/response"
)

// AdminOnly guards the admin mutation routes. Tokens are issued by the login
// endpoint after the shared admin password check.
func AdminOnly(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" || tokenString == authHeader {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn)
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || claims["role"] != "admin" {
				return response.WriteErrorResponse(c, errs.ErrNotLoggedIn)
			}

			return next(c)
		}
	}
}
