package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"traveldesk/internal/model"
)

// actorFrom rebuilds the acting identity from the JWT the middleware already
// verified and stashed on the context.
func actorFrom(c echo.Context) (model.Actor, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return model.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return model.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return model.Actor{ID: uint(id), Email: email, Role: model.Role(role)}, nil
}
