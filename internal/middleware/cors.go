package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const corsAllowHeaders = "authorization, x-client-info, apikey, content-type"

// CORS adds permissive CORS headers to every response and answers preflight
// requests with 200 "ok".
func CORS(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Response().Header()
		header.Set(echo.HeaderAccessControlAllowOrigin, "*")
		header.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)

		if c.Request().Method == http.MethodOptions {
			return c.String(http.StatusOK, "ok")
		}

		return next(c)
	}
}
