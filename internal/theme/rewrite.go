package theme

import (
	"path/filepath"
	"regexp"
	"strings"
)

// urlToken matches a CSS url(...) token with an optionally quoted argument.
// Arguments containing quotes or parentheses beyond this shape are left for
// the pass-through path below.
var urlToken = regexp.MustCompile(`url\(\s*(['"]?)([^'")]*)(['"]?)\s*\)`)

// schemePrefix matches url arguments that carry a scheme (http:, https:,
// data:, file:, ...).
var schemePrefix = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// RewriteAssetURLs rewrites every relative url(...) argument in css into an
// absolute path rooted at baseDir, so the rendering engine can load theme
// assets regardless of working directory. Scheme-prefixed, protocol-relative,
// fragment-only, empty, and already-absolute arguments pass through
// unchanged, which also makes the rewrite idempotent. Quoting style is
// preserved; text outside matched tokens is untouched.
func RewriteAssetURLs(css, baseDir string) string {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		absBase = baseDir
	}

	return urlToken.ReplaceAllStringFunc(css, func(token string) string {
		m := urlToken.FindStringSubmatch(token)
		open, arg, closing := m[1], m[2], m[3]
		// Mismatched quotes are an unrecognized form: don't touch them.
		if open != closing {
			return token
		}
		if !isRelativeAsset(arg) {
			return token
		}
		resolved := filepath.Clean(filepath.Join(absBase, arg))
		return "url(" + open + resolved + closing + ")"
	})
}

// isRelativeAsset reports whether a url(...) argument is a relative path
// that should be resolved against the theme's base directory.
func isRelativeAsset(arg string) bool {
	switch {
	case arg == "":
		return false
	case strings.HasPrefix(arg, "#"):
		return false
	case strings.HasPrefix(arg, "//"):
		return false
	case filepath.IsAbs(arg):
		return false
	case schemePrefix.MatchString(arg):
		return false
	}
	return true
}
