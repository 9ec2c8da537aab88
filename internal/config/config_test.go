package config

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("GIN_MODE", "")
		t.Setenv("JWT_SECRET", "")
		t.Setenv("IMPORT_SHEET_NAME", "")
		t.Setenv("IMPORT_HEADER_ROWS", "")
		t.Setenv("PORT", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "8080", cfg.Port)
		require.Equal(t, "Recibos", cfg.Import.SheetName)
		require.Equal(t, 1, cfg.Import.HeaderRows)
		require.Equal(t, devJWTSecret, cfg.JWTSecret)
	})

	t.Run("builds postgres DSN", func(t *testing.T) {
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_PORT", "6543")
		t.Setenv("DB_USER", "recibos")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("DB_NAME", "gestion")
		t.Setenv("DB_SSLMODE", "require")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "postgres://recibos:secret@db:6543/gestion?sslmode=require", cfg.DSN())
	})

	t.Run("escapes credentials in DSN", func(t *testing.T) {
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("DB_NAME", "gestion")
		t.Setenv("DB_SSLMODE", "disable")
		t.Setenv("DB_USER", "app:rw")
		t.Setenv("DB_PASSWORD", "p@ss/w:rd?1")

		cfg, err := Load()
		require.NoError(t, err)

		u, err := url.Parse(cfg.DSN())
		require.NoError(t, err)
		require.Equal(t, "app:rw", u.User.Username())
		password, ok := u.User.Password()
		require.True(t, ok)
		require.Equal(t, "p@ss/w:rd?1", password)
		require.Equal(t, "db:5432", u.Host)
		require.Equal(t, "/gestion", u.Path)
		require.Equal(t, "disable", u.Query().Get("sslmode"))
	})

	t.Run("parses CORS origins", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example,")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	})

	t.Run("reads import template settings", func(t *testing.T) {
		t.Setenv("IMPORT_SHEET_NAME", "Carga")
		t.Setenv("IMPORT_HEADER_ROWS", "3")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "Carga", cfg.Import.SheetName)
		require.Equal(t, 3, cfg.Import.HeaderRows)
	})

	t.Run("rejects invalid header rows", func(t *testing.T) {
		for _, rows := range []string{"-1", "0", "uno"} {
			t.Setenv("IMPORT_HEADER_ROWS", rows)

			_, err := Load()
			require.Error(t, err, rows)
			require.Contains(t, err.Error(), "IMPORT_HEADER_ROWS")
		}
	})

	t.Run("requires JWT secret in release mode", func(t *testing.T) {
		t.Setenv("GIN_MODE", "release")
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "JWT_SECRET is required")
	})

	t.Run("keeps explicit JWT secret", func(t *testing.T) {
		t.Setenv("GIN_MODE", "release")
		t.Setenv("JWT_SECRET", "s3cret")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "s3cret", cfg.JWTSecret)
	})
}
