package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultSeed(t *testing.T) {
	seed := DefaultSeed()
	assert.Len(t, seed, 14)

	chess := seed["Chess Club"]
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)

	_, err := New(seed)
	assert.NoError(t, err)
}

func TestDefaultSeed_FreshEachCall(t *testing.T) {
	a := DefaultSeed()
	a["Chess Club"].Participants[0] = "changed"
	assert.Equal(t, "michael@mergington.edu", DefaultSeed()["Chess Club"].Participants[0])
}

func TestLoadSeed(t *testing.T) {
	path := writeSeed(t, `
activities:
  Chess Club:
    description: Learn strategies
    schedule: Fridays
    max_participants: 2
    participants:
      - a@mergington.edu
  Choir:
    description: Sing
    schedule: Mondays
    max_participants: 30
`)

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed, 2)
	assert.Equal(t, 2, seed["Chess Club"].MaxParticipants)
	assert.Equal(t, []string{"a@mergington.edu"}, seed["Chess Club"].Participants)

	reg, err := New(seed)
	require.NoError(t, err)
	choir, err := reg.Get("Choir")
	require.NoError(t, err)
	assert.Empty(t, choir.Participants)
}

func TestLoadSeed_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "no activities",
			content: "activities: {}\n",
			wantErr: ErrInvalidSeed,
		},
		{
			name:    "unknown field",
			content: "activities:\n  A:\n    capacity: 3\n",
		},
		{
			name:    "malformed yaml",
			content: "activities: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSeed(writeSeed(t, tt.content))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
