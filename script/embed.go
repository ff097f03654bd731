package script

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// Load returns the named script. A copy under dir/scripts takes precedence
// over the embedded one so scripts can be edited without rebuilding.
func Load(dir, name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if dir != "" {
		if data, err := os.ReadFile(diskScriptPath(dir, clean)); err == nil {
			return data, nil
		}
	}
	return ScriptsFS.ReadFile(clean)
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)
	if i := strings.LastIndex(s, "scripts/"); i >= 0 {
		s = s[i+len("scripts/"):]
	}
	if filepath.Ext(s) == "" {
		s += ".tengo"
	}
	return "scripts/" + s
}

func diskScriptPath(dir, clean string) string {
	return filepath.Join(dir, filepath.FromSlash(clean))
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
