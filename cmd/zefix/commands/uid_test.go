package commands

import (
	"testing"

	"github.com/fivetwenty-io/zefix/pkg/zefix"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUIDCommand(t *testing.T) {
	cmd := NewUIDCommand()
	assert.Equal(t, "uid", cmd.Use)
	assert.Equal(t, "Work with Swiss business identification numbers", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	for _, name := range []string{"normalize", "format", "validate", "equals"} {
		subcmd := findSubcommand(cmd, name)
		require.NotNil(t, subcmd, "subcommand %s should exist", name)
		assert.NotNil(t, subcmd.RunE)
		assert.NotNil(t, subcmd.Args)
	}
}

func TestUIDNormalize(t *testing.T) {
	setupViper(t)
	viper.Set(KeyOutput, "json")

	stdout, _, err := execute(t, NewUIDCommand(), "normalize", "CHE-123.456.789", "che123456789 MWST")
	require.NoError(t, err)

	var results []uidResult
	decodeJSON(t, stdout, &results)

	require.Len(t, results, 2)

	for _, result := range results {
		assert.True(t, result.Valid)
		assert.Equal(t, "123456789", result.UID)
		assert.Equal(t, "CHE-123.456.789", result.Formatted)
		assert.Equal(t, "CHE123456789", result.Compact)
	}

	assert.Equal(t, "che123456789 MWST", results[1].Input)
}

func TestUIDNormalize_Invalid(t *testing.T) {
	setupViper(t)

	_, _, err := execute(t, NewUIDCommand(), "normalize", "CHE-123.456.789", "CHE-12")
	require.ErrorIs(t, err, zefix.ErrInvalidUID)
	assert.Contains(t, err.Error(), "CHE-12")
}

func TestUIDFormat(t *testing.T) {
	setupViper(t)

	stdout, _, err := execute(t, NewUIDCommand(), "format", "123456789", "not-a-uid")
	require.NoError(t, err)
	assert.Equal(t, "CHE-123.456.789\nnot-a-uid\n", stdout)
}

func TestUIDValidate(t *testing.T) {
	setupViper(t)
	viper.Set(KeyOutput, "yaml")

	t.Run("all valid", func(t *testing.T) {
		stdout, _, err := execute(t, NewUIDCommand(), "validate", "CHE-123.456.789")
		require.NoError(t, err)
		assert.Contains(t, stdout, "valid: true")
	})

	t.Run("reports invalid inputs", func(t *testing.T) {
		stdout, _, err := execute(t, NewUIDCommand(), "validate", "CHE-123.456.789", "CHE-123")
		require.ErrorIs(t, err, zefix.ErrInvalidUID)
		assert.Contains(t, err.Error(), "1 of 2")
		assert.Contains(t, stdout, "valid: false")
	})
}

func TestUIDEquals(t *testing.T) {
	setupViper(t)

	tests := []struct {
		name     string
		a, b     string
		expected string
	}{
		{"different notations", "CHE-123.456.789", "che123456789", "true\n"},
		{"different numbers", "CHE-123.456.789", "CHE-123.456.788", "false\n"},
		{"both invalid", "foo", "foo", "false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, NewUIDCommand(), "equals", tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stdout)
		})
	}
}

func TestUIDNormalize_Table(t *testing.T) {
	setupViper(t)

	stdout, _, err := execute(t, NewUIDCommand(), "normalize", "123.456.789")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CHE-123.456.789")
	assert.Contains(t, stdout, "CHE123456789")
}
