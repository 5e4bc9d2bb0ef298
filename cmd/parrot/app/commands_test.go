package app_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/parrotdev/parrot/cmd/parrot/app"
)

// execute runs the CLI with the given args and returns captured stdout.
// Commands share package-level state, so tests run sequentially.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := app.NewRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestEchoCommand(t *testing.T) {
	out, err := execute(t, "echo", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)
}

func TestEchoCommandDefaultText(t *testing.T) {
	out, err := execute(t, "echo")
	require.NoError(t, err)
	assert.Equal(t, "Lorem ipsum dolor sit amet, consectetur adipiscing elit.\n", out)
}

func TestEchoCommandJSON(t *testing.T) {
	out, err := execute(t, "echo", "hi", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"text": "hi"}`, out)
}

func TestHelloWorldCommand(t *testing.T) {
	out, err := execute(t, "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!\n", out)
}

func TestOpenAPICommandJSON(t *testing.T) {
	out, err := execute(t, "openapi", "--api-version", "v1", "--output-format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/echo")

	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "1.0.0", info["version"])
}

func TestOpenAPICommandYAML(t *testing.T) {
	out, err := execute(t, "openapi", "--api-version", "v2", "--output-format", "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))

	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/echo")

	info, ok := doc["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2.0.0", info["version"])
}

func TestOpenAPICommandRejectsUnknownVersion(t *testing.T) {
	_, err := execute(t, "openapi", "--api-version", "v3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestOpenAPICommandRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "openapi", "--api-version", "v1", "--output-format", "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestHelpCarriesVersionBanner(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "parrot")
	assert.Contains(t, out, "polly wants a versioned API")
}
