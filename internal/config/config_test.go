package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validYAML = `
general_params:
  env: "test"
  secret_key: "s3cret"
  http_server_address: ":8080"

telegram_params:
  token: "123:abc"

main_db_params:
  db_username: "fonoteka"
  db_password: "fonoteka"
  db_name: "fonoteka"
  db_port: 5432
  db_host: "localhost"
  db_timeout: 3

valkey_params:
  host: "localhost:6379"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cm, err := NewConfigManager(writeConfig(t, validYAML))
	require.NoError(t, err)

	c := cm.GetConfig()
	require.NoError(t, c.Validate())

	require.Equal(t, "test", c.GeneralParams.Env)
	require.Equal(t, "123:abc", c.TelegramParams.Token)
	require.Equal(t, 5432, c.MainDBParams.Port)
}

func TestSearchDefaults(t *testing.T) {
	cm, err := NewConfigManager(writeConfig(t, validYAML))
	require.NoError(t, err)

	c := cm.GetConfig()
	require.Equal(t, 3, c.SearchParams.PageSize)
	require.Equal(t, 2.0, c.SearchParams.ExactMatchScore)
}

func TestValidateRejectsMissingToken(t *testing.T) {
	yaml := `
general_params:
  env: "test"
  secret_key: "s3cret"
  http_server_address: ":8080"

main_db_params:
  db_username: "fonoteka"
  db_password: "fonoteka"
  db_name: "fonoteka"
  db_port: 5432
  db_host: "localhost"

valkey_params:
  host: "localhost:6379"
`
	cm, err := NewConfigManager(writeConfig(t, yaml))
	require.NoError(t, err)

	require.ErrorContains(t, cm.GetConfig().Validate(), "telegram token")
}

func TestValidateRejectsBadEnv(t *testing.T) {
	cm, err := NewConfigManager(writeConfig(t, validYAML))
	require.NoError(t, err)

	c := cm.GetConfig()
	c.GeneralParams.Env = "staging"

	require.Error(t, c.Validate())
}

func TestGetDSN(t *testing.T) {
	db := MainDBParams{
		Username: "u",
		Password: "p",
		Name:     "catalog",
		Port:     5432,
		Host:     "db",
		Timeout:  3,
	}

	require.Equal(t,
		"postgres://u:p@db:5432/catalog?connect_timeout=3&sslmode=disable",
		db.GetDSN(),
	)
}
