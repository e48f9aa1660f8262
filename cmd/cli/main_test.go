package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate(t *testing.T) {
	seed := writeFile(t, "seed.yaml", `
activities:
  Chess Club:
    description: Chess
    schedule: Fridays
    max_participants: 2
    participants: [a@mergington.edu]
`)
	cfg := writeFile(t, "server.yaml", "seed_file: "+seed+"\n")

	var out bytes.Buffer
	require.NoError(t, validate(&out, []string{"-config", cfg}))
	assert.Contains(t, out.String(), "Configuration validation successful")
	assert.Contains(t, out.String(), "Seed validation successful")
	assert.Contains(t, out.String(), "(1 activities)")
}

func TestValidate_InvalidSeed(t *testing.T) {
	seed := writeFile(t, "seed.yaml", `
activities:
  Chess Club:
    max_participants: 1
    participants: [a@mergington.edu, b@mergington.edu]
`)

	var out bytes.Buffer
	assert.Error(t, validate(&out, []string{"-seed", seed}))
}

func TestValidate_NoFiles(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, validate(&out, nil))
}

func TestShowVersion(t *testing.T) {
	var out bytes.Buffer
	showVersion(&out)
	assert.Contains(t, out.String(), "mergington dev")
}
