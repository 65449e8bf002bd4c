package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var builtin embed.FS

// Dir shadows the built-in prefabs: a file found here wins, which is what
// makes hot reload work without a rebuild.
var Dir = "prefabs"

// Load returns the named prefab, preferring the copy in Dir.
func Load(name string) ([]byte, error) {
	name = Name(name)
	data, err := fs.ReadFile(os.DirFS(Dir), name)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return data, err
	}
	return fs.ReadFile(builtin, name)
}

// Name reduces a path, such as one reported by the watcher, to the prefab
// name Load expects.
func Name(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if rest, ok := strings.CutPrefix(s, filepath.ToSlash(Dir)+"/"); ok {
		return path.Clean(rest)
	}
	return path.Base(s)
}
