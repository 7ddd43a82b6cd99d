package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestLoadConfig(t *testing.T) {
	configContent := `
default_category = "Test Category"
currency = "USD"

[log]
level = "debug"
format = "json"

[server]
addr = "127.0.0.1:9000"
max_upload_mb = 5

[[categories]]
category = "Rent"
keywords = ["landlord", "rent"]

[[categories]]
category = "Groceries"
keywords = ["bhatbhateni"]
`

	config, err := LoadConfig(writeConfig(t, configContent))
	require.NoError(t, err)

	assert.Equal(t, "Test Category", config.DefaultCategory)
	assert.Equal(t, "USD", config.Currency)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "127.0.0.1:9000", config.Server.Addr)
	assert.Equal(t, int64(5), config.Server.MaxUploadMB)

	assert.Len(t, config.Categories, 2)
	assert.Equal(t, "Rent", config.Categories[0].Category)
	assert.Equal(t, []string{"landlord", "rent"}, config.Categories[0].Keywords)

	c := config.Categorizer()
	assert.Equal(t, "Rent", c.Categorize("MONTHLY RENT"))
	assert.Equal(t, "Groceries", c.Categorize("BHATBHATENI SUPERMARKET"))
	assert.Equal(t, "Test Category", c.Categorize("ATM CASH"))
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "Others", config.DefaultCategory)
	assert.Equal(t, "NPR", config.Currency)
	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "console", config.Log.Format)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, int64(20), config.Server.MaxUploadMB)
	assert.Empty(t, config.Categories)

	assert.Equal(t, "Cash Withdrawal", config.Categorizer().Categorize("ATM CASH"))
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("STATEMENT_SERVER_ADDR", ":9999")
	t.Setenv("STATEMENT_LOG_LEVEL", "warn")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":9999", config.Server.Addr)
	assert.Equal(t, "warn", config.Log.Level)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("nonexistent.toml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidRule(t *testing.T) {
	configContent := `
[[categories]]
category = "Rent"
`
	config, err := LoadConfig(writeConfig(t, configContent))
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "at least one keyword")
}

func TestLoadConfig_InvalidLogFormat(t *testing.T) {
	t.Setenv("STATEMENT_LOG_FORMAT", "xml")

	config, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "log.format")
}
