package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spkg/bom"
)

// LocalOverrideFileName is read from the directory dcv is started in.
const LocalOverrideFileName = ".dcv.json"

// DefaultComposeFileNames are tried in order when neither the command line
// nor the local override names a compose file.
var DefaultComposeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yaml",
	"compose.yml",
}

// StringList accepts either a single string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("composePath must be a string or a list of strings: %w", err)
	}
	*l = list
	return nil
}

// LocalOverride is the optional per-project .dcv.json.
type LocalOverride struct {
	ComposePath StringList        `json:"composePath,omitempty"`
	Title       string            `json:"title,omitempty"`
	Names       map[string]string `json:"names,omitempty"`
}

// LoadLocalOverride reads .dcv.json from dir. A missing file is not an error.
func LoadLocalOverride(dir string) (*LocalOverride, error) {
	fileName := filepath.Join(dir, LocalOverrideFileName)

	content, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return &LocalOverride{}, nil
		}
		return nil, &ConfigError{Msg: "could not read " + fileName, Err: err}
	}

	override := &LocalOverride{}
	if err := json.Unmarshal(bom.Clean(content), override); err != nil {
		return nil, &ConfigError{Msg: "invalid " + fileName, Err: err}
	}
	return override, nil
}

// NameResolver builds the alias resolver from the names section.
func (o *LocalOverride) NameResolver() (*NameResolver, error) {
	return NewNameResolver(o.Names)
}

// TitleOr returns the configured title, or fallback when none is set.
func (o *LocalOverride) TitleOr(fallback string) string {
	if o.Title != "" {
		return o.Title
	}
	return fallback
}

// ResolveComposePaths picks the compose files to load, as absolute paths.
// Files given on the command line win over the override's composePath; with
// neither, the first default file name present in projectDir is used.
func ResolveComposePaths(projectDir string, cliFiles []string, override *LocalOverride) ([]string, error) {
	requested := cliFiles
	source := "the command line"
	if len(requested) == 0 && override != nil && len(override.ComposePath) > 0 {
		requested = override.ComposePath
		source = LocalOverrideFileName
	}

	if len(requested) > 0 {
		paths := make([]string, 0, len(requested))
		for _, file := range requested {
			path := absoluteIn(projectDir, file)
			if !fileExists(path) {
				return nil, &ConfigError{Msg: fmt.Sprintf("compose file specified in %s [%s] does not exist", source, file)}
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	for _, name := range DefaultComposeFileNames {
		path := filepath.Join(projectDir, name)
		if fileExists(path) {
			return []string{path}, nil
		}
	}

	return nil, &ConfigError{
		Msg: fmt.Sprintf("cannot find docker-compose.yml in %s. If you want to override the location of this file, you can create a %s in this directory", projectDir, LocalOverrideFileName),
	}
}

func absoluteIn(dir string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
