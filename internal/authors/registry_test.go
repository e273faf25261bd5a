package authors

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()
	require.NotEmpty(t, r.All())

	a, ok := r.Get("DevMaster")
	require.True(t, ok)
	assert.Equal(t, "Frontend wizard.", a.Bio)
	assert.Equal(t, "2023-11-15", a.JoinedDate)
}

func TestLoadMissingFile(t *testing.T) {
	r, err := Load("/nonexistent/path/that/does/not/exist.yml")
	require.NoError(t, err)
	assert.Equal(t, Default().Names(), r.Names())
}

func TestLoadValidYAML(t *testing.T) {
	const yamlContent = `
authors:
  - name: zeta
    bio: Last letter
    joined_date: "2024-01-01"
  - name: alpha
    bio: First letter
    joined_date: "2023-01-01"
    avatar_color: from-red-500 to-red-700
  - name: "  "
    bio: skipped
`
	path := filepath.Join(t.TempDir(), "authors.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0600))

	r, err := Load(path)
	require.NoError(t, err)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "zeta", all[0].Name)
	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())

	a, ok := r.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "from-red-500 to-red-700", a.AvatarColor)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("authors: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLookup_Fallback(t *testing.T) {
	r := Default()
	r.now = func() time.Time { return time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC) }

	p := r.Lookup("Brand New Author")
	assert.Equal(t, "Brand New Author", p.Name)
	assert.Equal(t, FallbackBio, p.Bio)
	assert.Equal(t, "2025-03-09", p.JoinedDate)
	assert.Equal(t, FallbackAvatarColor, p.AvatarColor)
	assert.Equal(t, "https://api.dicebear.com/9.x/shapes/svg?seed=Brand+New+Author", p.AvatarURL)

	known := r.Lookup("TeacherAI")
	assert.Equal(t, "Passionate educator.", known.Bio)
}
