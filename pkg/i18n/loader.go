package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

type decodeFunc func([]byte, any) error

// WithYAMLDir loads translations laid out as {lang}/{namespace}.yaml (or .yml)
// from the root of fsys.
//
//	en/emails.yaml
//	fr/emails.yml
func WithYAMLDir(fsys fs.FS) Option {
	return func(i *I18n) error {
		return loadDir(i, fsys, yaml.Unmarshal, ".yaml", ".yml")
	}
}

// WithJSONDir loads translations laid out as {lang}/{namespace}.json.
func WithJSONDir(fsys fs.FS) Option {
	return func(i *I18n) error {
		return loadDir(i, fsys, json.Unmarshal, ".json")
	}
}

func loadDir(i *I18n, fsys fs.FS, decode decodeFunc, exts ...string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasExt(p, exts) {
			return nil
		}

		dir := path.Dir(p)
		if dir == "." {
			return fmt.Errorf("%w: %q must be inside a language directory", ErrInvalidFile, p)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %q: %w", p, err)
		}

		var tree map[string]any
		if err := decode(data, &tree); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, p, err)
		}

		lang := Normalize(path.Base(dir))
		namespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
		i.store(lang, namespace, tree)
		return nil
	})
}

func hasExt(p string, exts []string) bool {
	ext := strings.ToLower(path.Ext(p))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
