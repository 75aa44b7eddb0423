package api

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
)

// Serializer renders JSON responses with sonic.
type Serializer struct{}

func NewSerializer() *Serializer {
	return &Serializer{}
}

func (s *Serializer) Serialize(c echo.Context, i interface{}, indent string) error {
	var (
		data []byte
		err  error
	)
	if indent != "" {
		data, err = sonic.ConfigDefault.MarshalIndent(i, "", indent)
	} else {
		data, err = sonic.Marshal(i)
	}
	if err != nil {
		return err
	}

	_, err = c.Response().Write(data)
	return err
}

func (s *Serializer) Deserialize(c echo.Context, i interface{}) error {
	err := sonic.ConfigDefault.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
