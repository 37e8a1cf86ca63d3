package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"cookbook/internal/recipes"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestListText(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 56)
	assert.Contains(t, lines[0], "CATEGORY")
	assert.Contains(t, lines[1], "Hello World")
	assert.Contains(t, lines[55], "Caching")
}

func TestListJSON(t *testing.T) {
	out, err := execute(t, "list", "--format", "json")
	require.NoError(t, err)

	var got []recipes.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 55)
	assert.Equal(t, 45, got[44].Number)
	assert.Equal(t, "realtime", got[44].Category)
}

func TestListYAML(t *testing.T) {
	out, err := execute(t, "list", "-f", "yaml")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	require.Len(t, got, 55)
	assert.Equal(t, "FizzBuzz", got[3]["title"])
}

func TestListUnknownFormat(t *testing.T) {
	_, err := execute(t, "list", "--format", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestShow(t *testing.T) {
	out, err := execute(t, "show", "43")
	require.NoError(t, err)
	assert.Contains(t, out, "43. Basic Rate Limiting Middleware")
	assert.Contains(t, out, "category: web")
}

func TestShowErrors(t *testing.T) {
	_, err := execute(t, "show", "abc")
	assert.ErrorContains(t, err, "must be an integer")

	_, err = execute(t, "show", "99")
	assert.ErrorIs(t, err, recipes.ErrUnknownRecipe)
}

func TestRun(t *testing.T) {
	t.Setenv("USER_STORE", "sqlite")
	out, err := execute(t, "run", "2", "--workdir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)
}

func TestRunWritesIntoWorkdir(t *testing.T) {
	t.Setenv("USER_STORE", "sqlite")
	dir := t.TempDir()
	out, err := execute(t, "run", "10", "--workdir", dir)
	require.NoError(t, err)
	assert.Equal(t, "File has been saved!\n", out)
}
