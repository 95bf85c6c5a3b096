package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/revisify/internal/adapters/driving/web"
)

func TestServeCmd_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, "a", flag.Shorthand)
	assert.Equal(t, "", flag.DefValue)
}

func TestSetServeConfig(t *testing.T) {
	original := serveConfig
	defer func() { serveConfig = original }()

	assert.Equal(t, web.DefaultAddr, serveConfig.Addr)

	SetServeConfig(nil)
	assert.Same(t, original, serveConfig, "nil keeps the current config")

	config := &ServeConfig{Addr: "127.0.0.1:9999", Web: web.Config{RateLimit: 3}}
	SetServeConfig(config)
	assert.Same(t, config, serveConfig)
}

func TestServeCmd_InvalidAddr(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "serve", "--addr", "256.0.0.1:-1")
	assert.Error(t, err)
	assert.Contains(t, out, "Editor: http://256.0.0.1:-1/")
}

func TestMCPCmd_Structure(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Equal(t, "serve", mcpServeCmd.Use)

	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPCmd_NotConfigured(t *testing.T) {
	defer resetFlags()

	_, err := execute(t, "", "mcp", "serve")
	assert.Error(t, err)
}

func TestServeCmd_FindPortInvalidAddr(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "serve", "--find-port", "--addr", "no-port")
	assert.ErrorContains(t, err, "invalid address")
}
