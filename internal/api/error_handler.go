package api

import (
	"errors"
	"net/http"

	"github.com/duacyd/analitica/internal/domain"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/labstack/echo/v4"
)

func httpErrorHandler(err error, c echo.Context) {
	msg := err.Error()
	code := http.StatusInternalServerError
	for err != nil {
		if ce, ok := err.(*constants.CodedError); ok {
			code = ce.Code()
			break
		}
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			break
		}
		err = errors.Unwrap(err)
	}

	_ = c.JSON(code, domain.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}
