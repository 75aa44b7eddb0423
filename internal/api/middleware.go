package api

import (
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/duacyd/analitica/internal/pkg/logger"
	"github.com/duacyd/analitica/internal/pkg/utils"
	"github.com/duacyd/analitica/internal/service/access"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the acting user from the auth cookie. Authentication
// itself (login, password handling) lives outside this core; the token is
// minted by that layer.
func (svc *APIService) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeyAuthToken)
		if err != nil {
			return constants.ErrMissingAuthCookie
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		ctx.Set(constants.CtxKeyUserID, token.UserID)

		return next(ctx)
	}
}

// requestContextMiddleware threads the request id into the logger and installs
// the per-request grant cache used by access checks.
func requestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()

		requestID := ctx.Response().Header().Get(echo.HeaderXRequestID)
		reqCtx := logger.WithRequestID(req.Context(), requestID)
		reqCtx = access.WithCache(reqCtx)

		ctx.SetRequest(req.WithContext(reqCtx))
		return next(ctx)
	}
}
