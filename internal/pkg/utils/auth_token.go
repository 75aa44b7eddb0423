package utils

import (
	"fmt"
	"time"

	"github.com/duacyd/analitica/internal/pkg/constants"
	"github.com/golang-jwt/jwt"
	"github.com/spf13/viper"
)

// AuthTokenWrapper is the claim set carried in the auth cookie.
type AuthTokenWrapper struct {
	UserID int64  `json:"user_id"`
	Secret string `json:"secret,omitempty"`
	jwt.StandardClaims
}

func GenerateAuthToken(wrapper *AuthTokenWrapper) (string, error) {
	wrapper.ExpiresAt = time.Now().Add(8 * time.Hour).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper)
	signed, err := token.SignedString([]byte(viper.GetString(constants.ViperSecretKey)))
	if err != nil {
		return "", fmt.Errorf("sign auth token: %w", err)
	}

	return signed, nil
}

func ParseAuthToken(tokenStr string) (*AuthTokenWrapper, error) {
	wrapper := new(AuthTokenWrapper)
	token, err := jwt.ParseWithClaims(tokenStr, wrapper, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(viper.GetString(constants.ViperSecretKey)), nil
	})
	if err != nil || !token.Valid {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
