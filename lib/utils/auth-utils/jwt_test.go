package authutils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"hrm-backend/config"
	"hrm-backend/models"
)

func initTestConfig() {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 3600
	config.Conf.Auth.JWTRefreshExpireInSec = 86400
}

func TestJwt(t *testing.T) {
	initTestConfig()

	t.Run(`токен содержит пользователя и роль`, func(t *testing.T) {
		tokenString, err := GetToken("user-1", "Иван Иванов", models.UserRoleEmployee)
		require.Nil(t, err)
		require.NotEmpty(t, tokenString)

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return []byte(config.Conf.Auth.JWTSecret), nil
		})
		require.Nil(t, err)
		require.True(t, token.Valid)
		claims := token.Claims.(jwt.MapClaims)
		require.Equal(t, "user-1", claims["sub"])
		require.Equal(t, "Иван Иванов", claims["name"])
		require.Equal(t, string(models.UserRoleEmployee), claims["role"])
	})

	t.Run(`refresh токен возвращает пользователя`, func(t *testing.T) {
		tokenString, err := GetRefreshToken("user-2", "Петр Петров")
		require.Nil(t, err)

		userID, err := ParseRefreshToken(tokenString)
		require.Nil(t, err)
		require.Equal(t, "user-2", userID)
	})

	t.Run(`refresh токен с чужой подписью`, func(t *testing.T) {
		tokenString, err := GetRefreshToken("user-3", "Петр Петров")
		require.Nil(t, err)

		config.Conf.Auth.JWTSecret = "other-secret"
		defer func() { config.Conf.Auth.JWTSecret = "test-secret" }()
		_, err = ParseRefreshToken(tokenString)
		require.NotNil(t, err)
	})

	t.Run(`не jwt строка`, func(t *testing.T) {
		_, err := ParseRefreshToken("not-a-token")
		require.NotNil(t, err)
	})

	t.Run(`md5 хеш пароля`, func(t *testing.T) {
		require.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", GetMD5Hash("password"))
		require.Equal(t, GetMD5Hash("qwerty"), GetMD5Hash("qwerty"))
	})
}
