package main

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/gofiber/contrib/swagger"
	"github.com/stretchr/testify/require"
)

func TestSwaggerSpec(t *testing.T) {
	t.Run(`файл спеки читается и регистрируется в middleware`, func(t *testing.T) {
		require.NotPanics(t, func() {
			swagger.New(swagger.Config{
				Path:     "/swagger",
				FilePath: "./docs/swagger.json",
			})
		})
	})
	t.Run(`файл спеки валидный json с путями`, func(t *testing.T) {
		raw, err := os.ReadFile("./docs/swagger.json")
		require.Nil(t, err)

		var doc struct {
			Swagger string                 `json:"swagger"`
			Paths   map[string]interface{} `json:"paths"`
		}
		require.Nil(t, json.Unmarshal(raw, &doc))
		require.Equal(t, "2.0", doc.Swagger)
		require.NotEmpty(t, doc.Paths)
	})
}
