package theme

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// themeCSSName is the stylesheet filename for folder-form themes.
const themeCSSName = "theme.css"

// validName restricts theme names to characters that cannot escape the
// themes root. Anything else (including empty names) resolves as not found.
var validName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Resolve locates the theme with the given name under root. The folder form
// <root>/<name>/theme.css is checked first, then the flat form
// <root>/<name>.css; folder form wins when both exist.
func Resolve(root, name string) (*Theme, error) {
	if !validName.MatchString(name) {
		return nil, &NotFoundError{Name: name, Available: Available(root)}
	}

	if data, err := os.ReadFile(filepath.Join(root, name, themeCSSName)); err == nil {
		return &Theme{
			Name:    name,
			CSS:     string(data),
			BaseDir: filepath.Join(root, name),
		}, nil
	}

	if data, err := os.ReadFile(filepath.Join(root, name+".css")); err == nil {
		return &Theme{
			Name:    name,
			CSS:     string(data),
			BaseDir: root,
		}, nil
	}

	return nil, &NotFoundError{Name: name, Available: Available(root)}
}

// Available lists the theme names present under root: stems of *.css files
// plus subdirectories containing theme.css, sorted and deduplicated. A
// missing or unreadable root yields an empty list.
func Available(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		var name string
		switch {
		case entry.IsDir():
			if _, err := os.Stat(filepath.Join(root, entry.Name(), themeCSSName)); err != nil {
				continue
			}
			name = entry.Name()
		case strings.HasSuffix(entry.Name(), ".css"):
			name = strings.TrimSuffix(entry.Name(), ".css")
		default:
			continue
		}
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}
