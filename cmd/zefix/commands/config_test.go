package commands

import (
	"os"
	"testing"

	"github.com/fivetwenty-io/zefix/internal/constants"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func readConfigFile(t *testing.T, path string) Config {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var config Config
	require.NoError(t, yaml.Unmarshal(data, &config))

	return config
}

func TestNewConfigCommand(t *testing.T) {
	cmd := NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.Equal(t, "Manage CLI configuration", cmd.Short)
	assert.Len(t, cmd.Commands(), 3)
	assert.NotNil(t, findSubcommand(cmd, "show"))
	assert.NotNil(t, findSubcommand(cmd, "set"))
	assert.NotNil(t, findSubcommand(cmd, "unset"))
}

func TestConfigSet(t *testing.T) {
	configFile := setupViper(t)

	_, _, err := execute(t, NewConfigCommand(), "set", "base_url", "https://zefix.example.test/ZefixPublicREST")
	require.NoError(t, err)

	_, _, err = execute(t, NewConfigCommand(), "set", "THROTTLE", "250ms")
	require.NoError(t, err)

	_, _, err = execute(t, NewConfigCommand(), "set", "output", "JSON")
	require.NoError(t, err)

	// Values starting with '-' are not parsed as flags.
	_, _, err = execute(t, NewConfigCommand(), "set", "password", "-s3cret")
	require.NoError(t, err)

	config := readConfigFile(t, configFile)
	assert.Equal(t, "https://zefix.example.test/ZefixPublicREST", config.BaseURL)
	assert.Equal(t, "250ms", config.Throttle)
	assert.Equal(t, constants.FormatJSON, config.Output)
	assert.Equal(t, "-s3cret", config.Password)

	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	// The saved file is read back into viper.
	assert.Equal(t, "https://zefix.example.test/ZefixPublicREST", viper.GetString(KeyBaseURL))
}

func TestConfigSet_Errors(t *testing.T) {
	configFile := setupViper(t)

	tests := []struct {
		name     string
		key      string
		value    string
		expected error
	}{
		{"unknown key", "colour", "red", constants.ErrUnknownConfigKey},
		{"bad throttle", "throttle", "soon", constants.ErrInvalidThrottle},
		{"negative throttle", "throttle", "-1s", constants.ErrInvalidThrottle},
		{"bad output", "output", "xml", constants.ErrUnsupportedOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, NewConfigCommand(), "set", tt.key, tt.value)
			require.ErrorIs(t, err, tt.expected)
		})
	}

	t.Run("negative throttle after --", func(t *testing.T) {
		_, _, err := execute(t, NewConfigCommand(), "set", "--", "throttle", "-1s")
		require.ErrorIs(t, err, constants.ErrInvalidThrottle)
	})

	t.Run("bad base url", func(t *testing.T) {
		_, _, err := execute(t, NewConfigCommand(), "set", "base_url", "not a url")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid base_url")
	})

	_, err := os.Stat(configFile)
	assert.True(t, os.IsNotExist(err), "nothing should have been written")
}

func TestConfigUnset(t *testing.T) {
	configFile := setupViper(t)

	_, _, err := execute(t, NewConfigCommand(), "set", "username", "alice")
	require.NoError(t, err)

	_, _, err = execute(t, NewConfigCommand(), "set", "password", "s3cret")
	require.NoError(t, err)

	_, _, err = execute(t, NewConfigCommand(), "unset", "password")
	require.NoError(t, err)

	config := readConfigFile(t, configFile)
	assert.Equal(t, "alice", config.Username)
	assert.Empty(t, config.Password)

	_, _, err = execute(t, NewConfigCommand(), "unset", "colour")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)
}

func TestConfigShow_MasksPassword(t *testing.T) {
	setupViper(t)
	viper.Set(KeyOutput, "json")
	viper.Set(KeyUsername, "alice")
	viper.Set(KeyPassword, "s3cret")
	viper.Set(KeyThrottle, "500ms")

	stdout, _, err := execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "s3cret")

	var config Config
	decodeJSON(t, stdout, &config)
	assert.Equal(t, "alice", config.Username)
	assert.Equal(t, constants.MaskedSecret, config.Password)
	assert.Equal(t, "500ms", config.Throttle)
}

func TestConfigSet_KeepsOtherSources(t *testing.T) {
	configFile := setupViper(t)

	// Values from flags or the environment must not end up in the file.
	viper.Set(KeyPassword, "from-env")

	_, _, err := execute(t, NewConfigCommand(), "set", "username", "alice")
	require.NoError(t, err)

	config := readConfigFile(t, configFile)
	assert.Equal(t, "alice", config.Username)
	assert.Empty(t, config.Password)
}
