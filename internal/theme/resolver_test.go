package theme

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testThemesRoot builds a themes directory with a flat default theme and a
// folder-form paper theme with a sibling asset.
func testThemesRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(root, "default.css"), []byte("body { background: #1a1a1a; }"), 0644))

	paperDir := filepath.Join(root, "paper")
	require.NoError(t, os.MkdirAll(paperDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(paperDir, "theme.css"), []byte("body { background: url(background.jpg); }"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(paperDir, "background.jpg"), []byte("not-a-real-jpeg"), 0644))

	return root
}

func TestResolve_FlatForm(t *testing.T) {
	root := testThemesRoot(t)

	thm, err := Resolve(root, "default")
	require.NoError(t, err)

	assert.Equal(t, "default", thm.Name)
	assert.Equal(t, "body { background: #1a1a1a; }", thm.CSS)
	assert.Equal(t, root, thm.BaseDir)
}

func TestResolve_FolderForm(t *testing.T) {
	root := testThemesRoot(t)

	thm, err := Resolve(root, "paper")
	require.NoError(t, err)

	assert.Equal(t, "paper", thm.Name)
	assert.Equal(t, "body { background: url(background.jpg); }", thm.CSS)
	assert.Equal(t, filepath.Join(root, "paper"), thm.BaseDir)
}

func TestResolve_FolderFormWinsOverFlatForm(t *testing.T) {
	root := testThemesRoot(t)

	// Same name in both forms: the folder form must be selected.
	require.NoError(t, os.WriteFile(filepath.Join(root, "paper.css"), []byte("/* flat */"), 0644))

	thm, err := Resolve(root, "paper")
	require.NoError(t, err)

	assert.Equal(t, "body { background: url(background.jpg); }", thm.CSS)
	assert.Equal(t, filepath.Join(root, "paper"), thm.BaseDir)
}

func TestResolve_NotFoundListsAvailableThemes(t *testing.T) {
	root := testThemesRoot(t)

	_, err := Resolve(root, "missing")
	require.Error(t, err)

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.Name)
	assert.Equal(t, []string{"default", "paper"}, notFound.Available)
	assert.Contains(t, err.Error(), "default")
	assert.Contains(t, err.Error(), "paper")
}

func TestResolve_RejectsPathTraversal(t *testing.T) {
	root := testThemesRoot(t)

	// A theme.css reachable outside the root must not be resolvable.
	outside := filepath.Join(filepath.Dir(root), "outside")
	require.NoError(t, os.MkdirAll(outside, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "theme.css"), []byte("/* escaped */"), 0644))

	for _, name := range []string{"../outside", "..", "a/b", "./default"} {
		_, err := Resolve(root, name)

		var notFound *NotFoundError
		require.True(t, errors.As(err, &notFound), "name %q must fail as not found", name)
	}
}

func TestResolve_EmptyName(t *testing.T) {
	root := testThemesRoot(t)

	_, err := Resolve(root, "")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, []string{"default", "paper"}, notFound.Available)
}

func TestResolve_MissingRoot(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope"), "default")

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Empty(t, notFound.Available)
	assert.Contains(t, err.Error(), "no themes available")
}

func TestAvailable(t *testing.T) {
	root := testThemesRoot(t)

	// Directories without a theme.css and non-CSS files are not themes.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "partial"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644))

	assert.Equal(t, []string{"default", "paper"}, Available(root))
}

func TestResolveAndRewrite_EndToEnd(t *testing.T) {
	root := testThemesRoot(t)

	thm, err := Resolve(root, "paper")
	require.NoError(t, err)

	css := RewriteAssetURLs(thm.CSS, thm.BaseDir)
	assert.Contains(t, css, "url("+filepath.Join(root, "paper", "background.jpg")+")")

	_, err = Resolve(root, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default")
	assert.Contains(t, err.Error(), "paper")
}

func TestAvailable_Dedupes(t *testing.T) {
	root := testThemesRoot(t)

	// Both forms under the same name count once.
	require.NoError(t, os.WriteFile(filepath.Join(root, "paper.css"), []byte("/* flat */"), 0644))

	assert.Equal(t, []string{"default", "paper"}, Available(root))
}
