package api

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/labstack/echo/v4"
)

// Binder decodes JSON request bodies with sonic. Path and query parameters are
// read explicitly in the controllers.
type Binder struct{}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.ContentLength == 0 {
		return nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return constants.NewCodedError(http.StatusBadRequest, "failed to read request body")
	}

	if err = sonic.Unmarshal(body, i); err != nil {
		return constants.NewCodedError(http.StatusBadRequest, "malformed json: "+err.Error())
	}

	return nil
}
