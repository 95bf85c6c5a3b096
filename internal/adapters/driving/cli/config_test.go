package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_SetGetUnset(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "", "config", "set", "server.addr", "0.0.0.0:9000")
	require.NoError(t, err)
	assert.Equal(t, "server.addr = 0.0.0.0:9000\n", out)
	assert.Equal(t, "0.0.0.0:9000", env.config.GetString("server.addr"))

	out, err = execute(t, "", "config", "get", "server.addr")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000\n", out)

	out, err = execute(t, "", "config", "unset", "server.addr")
	require.NoError(t, err)
	assert.Equal(t, "server.addr unset\n", out)

	_, err = execute(t, "", "config", "get", "server.addr")
	assert.ErrorContains(t, err, "is not set")
}

func TestConfigCmd_List(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "No configuration set")

	require.NoError(t, env.config.Set("store.backend", "file"))
	require.NoError(t, env.config.Set("server.rate_limit", 5))

	out, err = execute(t, "", "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "store.backend = file")
	assert.Contains(t, out, "server.rate_limit = 5")
}

func TestConfigCmd_ArgCount(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "config", "set", "only-key")
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{input: "20", want: 20},
		{input: "-3", want: -3},
		{input: "true", want: true},
		{input: "false", want: false},
		{input: "5s", want: "5s"},
		{input: "127.0.0.1:7474", want: "127.0.0.1:7474"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.input))
		})
	}
}
