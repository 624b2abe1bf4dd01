package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithJSONDir loads translations from JSON files in an fs.FS laid out
// as {lang}/{namespace}.json:
//
//	en/common.json
//	en/errors.json
//	de/common.json
func WithJSONDir(fsys fs.FS) Option {
	return loadTranslationFiles(fsys, []string{".json"}, json.Unmarshal)
}

// WithYAMLDir loads translations from YAML files in an fs.FS laid out
// as {lang}/{namespace}.yaml (or .yml):
//
//	en/common.yaml
//	fr/common.yml
func WithYAMLDir(fsys fs.FS) Option {
	return loadTranslationFiles(fsys, []string{".yaml", ".yml"}, yaml.Unmarshal)
}

// loadTranslationFiles walks the filesystem and registers every file
// with a matching extension. The language is the file's parent
// directory, the namespace is the file name without its extension.
func loadTranslationFiles(fsys fs.FS, exts []string, unmarshal func([]byte, any) error) Option {
	return func(i *I18n) error {
		return fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !slices.Contains(exts, strings.ToLower(path.Ext(filePath))) {
				return nil
			}

			dir := path.Dir(filePath)
			if dir == "." {
				return fmt.Errorf("%w: %q is not inside a language directory", ErrInvalidFile, filePath)
			}
			lang := path.Base(dir)
			namespace := strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))

			raw, err := fs.ReadFile(fsys, filePath)
			if err != nil {
				return fmt.Errorf("i18n: reading %q: %w", filePath, err)
			}

			var tree map[string]any
			if err := unmarshal(raw, &tree); err != nil {
				return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
			}

			i.addTranslations(lang, namespace, tree)
			return nil
		})
	}
}
