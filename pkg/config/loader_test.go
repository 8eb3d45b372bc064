package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/vanitystore/pkg/config"
)

type storeConfig struct {
	URI        string `env:"TEST_STORE_URI,required"`
	Database   string `env:"TEST_STORE_DATABASE" envDefault:"vanity"`
	Collection string `env:"TEST_STORE_COLLECTION" envDefault:"addresses"`
}

type defaultsConfig struct {
	Name    string `env:"TEST_DEFAULTS_NAME" envDefault:"default_value"`
	Workers int    `env:"TEST_DEFAULTS_WORKERS" envDefault:"42"`
	Enabled bool   `env:"TEST_DEFAULTS_ENABLED" envDefault:"true"`
}

type customEnvConfig struct {
	TestString    string   `env:"TEST_CUSTOM_STRING"`
	TestInt       int      `env:"TEST_CUSTOM_INT"`
	TestBool      bool     `env:"TEST_CUSTOM_BOOL"`
	TestArray     []string `env:"TEST_CUSTOM_ARRAY" envSeparator:","`
	TestWithQuote string   `env:"TEST_CUSTOM_WITH_QUOTES"`
	TestEmpty     string   `env:"TEST_CUSTOM_EMPTY"`
	TestPriority  string   `env:"TEST_PRIORITY"`
	TestUnique    string   `env:"TEST_OVERRIDE_UNIQUE"`
}

var envFileKeys = []string{
	"TEST_CUSTOM_STRING", "TEST_CUSTOM_INT", "TEST_CUSTOM_BOOL", "TEST_CUSTOM_ARRAY",
	"TEST_CUSTOM_WITH_QUOTES", "TEST_CUSTOM_EMPTY", "TEST_PRIORITY", "TEST_OVERRIDE_UNIQUE",
}

// unsetAfter clears keys now and again when the test ends, since LoadEnv
// writes straight into the process environment.
func unsetAfter(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})
}

func TestParse_Success(t *testing.T) {
	t.Setenv("TEST_STORE_URI", "mongodb://localhost:27017")
	t.Setenv("TEST_STORE_COLLECTION", "found")

	var cfg storeConfig
	require.NoError(t, config.Parse(&cfg, nil))
	assert.Equal(t, "mongodb://localhost:27017", cfg.URI)
	assert.Equal(t, "vanity", cfg.Database)
	assert.Equal(t, "found", cfg.Collection)
}

func TestParse_DefaultValues(t *testing.T) {
	unsetAfter(t, "TEST_DEFAULTS_NAME", "TEST_DEFAULTS_WORKERS", "TEST_DEFAULTS_ENABLED")

	var cfg defaultsConfig
	require.NoError(t, config.Parse(&cfg, nil))
	assert.Equal(t, "default_value", cfg.Name)
	assert.Equal(t, 42, cfg.Workers)
	assert.True(t, cfg.Enabled)
}

func TestParse_InvalidValue(t *testing.T) {
	t.Setenv("TEST_DEFAULTS_WORKERS", "many")

	var cfg defaultsConfig
	err := config.Parse(&cfg, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestParse_ReadsCurrentEnvironment(t *testing.T) {
	t.Setenv("TEST_DEFAULTS_NAME", "first")

	var first defaultsConfig
	require.NoError(t, config.Parse(&first, nil))
	assert.Equal(t, "first", first.Name)

	t.Setenv("TEST_DEFAULTS_NAME", "second")

	var second defaultsConfig
	require.NoError(t, config.Parse(&second, nil))
	assert.Equal(t, "second", second.Name)
}

func TestLoadEnv_CustomPath(t *testing.T) {
	unsetAfter(t, envFileKeys...)

	require.NoError(t, config.LoadEnv("testdata/.env.custom"))

	var cfg customEnvConfig
	require.NoError(t, config.Parse(&cfg, nil))
	assert.Equal(t, "custom_value", cfg.TestString)
	assert.Equal(t, 1234, cfg.TestInt)
	assert.True(t, cfg.TestBool)
	assert.Equal(t, []string{"item1", "item2", "item3"}, cfg.TestArray)
	assert.Equal(t, "quoted value", cfg.TestWithQuote)
	assert.Equal(t, "", cfg.TestEmpty)
	assert.Equal(t, "custom_file_value", cfg.TestPriority)
}

func TestLoadEnv_LaterFilesWin(t *testing.T) {
	unsetAfter(t, envFileKeys...)

	require.NoError(t, config.LoadEnv("testdata/.env.custom", "testdata/.env.override"))

	var cfg customEnvConfig
	require.NoError(t, config.Parse(&cfg, nil))
	assert.Equal(t, "override_value", cfg.TestString)
	assert.Equal(t, 9999, cfg.TestInt)
	assert.Equal(t, "override_value", cfg.TestPriority)
	assert.Equal(t, "unique_to_override", cfg.TestUnique)
	assert.Equal(t, "quoted value", cfg.TestWithQuote)
}

func TestLoadEnv_ProcessEnvWins(t *testing.T) {
	unsetAfter(t, envFileKeys...)
	os.Setenv("TEST_PRIORITY", "from_process")

	require.NoError(t, config.LoadEnv("testdata/.env.custom"))
	assert.Equal(t, "from_process", os.Getenv("TEST_PRIORITY"))
	assert.Equal(t, "custom_value", os.Getenv("TEST_CUSTOM_STRING"))
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv("testdata/non_existent_file.env")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLoadDefaultEnv(t *testing.T) {
	t.Run("missing file is ignored", func(t *testing.T) {
		t.Chdir(t.TempDir())
		assert.NoError(t, config.LoadDefaultEnv())
	})

	t.Run("reads .env from the working directory", func(t *testing.T) {
		unsetAfter(t, "TEST_CUSTOM_STRING")
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TEST_CUSTOM_STRING=from_dotenv\n"), 0o600))
		t.Chdir(dir)

		require.NoError(t, config.LoadDefaultEnv())
		assert.Equal(t, "from_dotenv", os.Getenv("TEST_CUSTOM_STRING"))
	})

	t.Run("unreadable file is reported", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o700))
		t.Chdir(dir)

		assert.ErrorIs(t, config.LoadDefaultEnv(), config.ErrLoadingEnvFile)
	})
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("TEST_STORE_URI", "mongodb://env:27017")
	t.Setenv("TEST_STORE_DATABASE", "from_env")

	var cfg storeConfig
	require.NoError(t, config.Parse(&cfg, map[string]string{
		"TEST_STORE_DATABASE": "from_flag",
	}))
	assert.Equal(t, "mongodb://env:27017", cfg.URI)
	assert.Equal(t, "from_flag", cfg.Database)
	assert.Equal(t, "addresses", cfg.Collection)
}

func TestParse_RequiredFromOverride(t *testing.T) {
	unsetAfter(t, "TEST_STORE_URI")

	var cfg storeConfig
	err := config.Parse(&cfg, nil)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	require.NoError(t, config.Parse(&cfg, map[string]string{"TEST_STORE_URI": "mongodb://flag:27017"}))
	assert.Equal(t, "mongodb://flag:27017", cfg.URI)
	assert.ErrorIs(t, config.Parse[storeConfig](nil, nil), config.ErrNilPointer)
}
