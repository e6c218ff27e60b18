package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk prefab directory. A file there shadows the embedded
// copy of the same name, which is what hot reload edits.
var Dir = "prefabs"

var (
	//go:embed *.yaml encounters/*.yaml
	PrefabsFS embed.FS

	//go:embed scripts/*.tengo
	ScriptsFS embed.FS
)

// Load reads a prefab or encounter file. Names may carry a leading
// "prefabs/".
func Load(name string) ([]byte, error) {
	return readThrough(PrefabsFS, relPath(name))
}

// LoadScript reads a Tengo script by bare name or by its path under
// prefabs/scripts.
func LoadScript(name string) ([]byte, error) {
	return readThrough(ScriptsFS, scriptPath(name))
}

func readThrough(embedded fs.FS, rel string) ([]byte, error) {
	if rel == "" {
		return nil, &fs.PathError{Op: "open", Path: rel, Err: fs.ErrNotExist}
	}
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, rel)
}

// relPath is name as a slash path relative to Dir.
func relPath(name string) string {
	if name == "" {
		return ""
	}
	rel := path.Clean(filepath.ToSlash(name))
	return strings.TrimPrefix(rel, "prefabs/")
}

func scriptPath(name string) string {
	rel := strings.TrimPrefix(relPath(name), "scripts/")
	if rel == "" {
		return ""
	}
	return "scripts/" + rel
}
