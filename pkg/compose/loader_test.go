package compose

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocument(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func imageOf(t *testing.T, stack *StackDefinition, name string) string {
	t.Helper()
	svc, ok := stack.Service(name)
	require.True(t, ok, "service %s missing", name)
	value, ok := svc.attribute("image")
	require.True(t, ok, "service %s has no image", name)
	return value.(string)
}

const (
	docOne = `version: "3.8"
services:
  a:
    image: one-a
  b:
    image: one-b
networks:
  default: {}
`
	docTwo = `version: "2"
services:
  b:
    image: two-b
  c:
    image: two-c
`
)

func TestLoadMergeOrder(t *testing.T) {
	dir := t.TempDir()
	d1 := writeDocument(t, dir, "d1.yml", docOne)
	d2 := writeDocument(t, dir, "d2.yml", docTwo)

	stack, err := Load([]string{d1, d2})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, stack.ServiceNames())
	assert.Equal(t, "one-a", imageOf(t, stack, "a"))
	assert.Equal(t, "two-b", imageOf(t, stack, "b"))
	assert.Equal(t, "two-c", imageOf(t, stack, "c"))

	reversed, err := Load([]string{d2, d1})
	require.NoError(t, err)
	assert.Equal(t, "one-b", imageOf(t, reversed, "b"))
}

func TestLoadMetadataComesFromFirstDocument(t *testing.T) {
	dir := t.TempDir()
	d1 := writeDocument(t, dir, "d1.yml", docOne)
	d2 := writeDocument(t, dir, "d2.yml", docTwo)

	stack, err := Load([]string{d1, d2})
	require.NoError(t, err)

	require.Len(t, stack.Metadata, 2)
	assert.Equal(t, "version", stack.Metadata[0].Key)
	assert.Equal(t, "3.8", stack.Metadata[0].Value)
	assert.Equal(t, "networks", stack.Metadata[1].Key)
}

func TestLoadReplacesServicesWholesale(t *testing.T) {
	dir := t.TempDir()
	base := writeDocument(t, dir, "base.yml", `services:
  web:
    image: web
    ports: ["80:80"]
`)
	override := writeDocument(t, dir, "override.yml", `services:
  web:
    image: web-dev
`)

	stack, err := Load([]string{base, override})
	require.NoError(t, err)

	svc, _ := stack.Service("web")
	_, hasPorts := svc.attribute("ports")
	assert.False(t, hasPorts, "fields of the earlier definition must not leak through")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	valid := writeDocument(t, dir, "valid.yml", docOne)

	scenarios := []struct {
		name    string
		content string
		missing bool
		target  error
	}{
		{name: "empty services mapping", content: "services: {}\n", target: ErrNoServices},
		{name: "no services key", content: "version: '3'\n", target: ErrNoServices},
		{name: "empty file", content: "", target: ErrNoServices},
		{name: "services is a list", content: "services:\n  - web\n", target: ErrNoServices},
		{name: "service is a scalar", content: "services:\n  web: nginx\n"},
		{name: "unparseable", content: "services: [\n"},
		{name: "missing file", missing: true},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(s.name, " ", "_")+".yml")
			if !s.missing {
				writeDocument(t, dir, filepath.Base(path), s.content)
			}

			for _, paths := range [][]string{{path}, {valid, path}, {path, valid}} {
				_, err := Load(paths)
				require.Error(t, err)

				var loadErr *LoadError
				require.ErrorAs(t, err, &loadErr)
				assert.Equal(t, path, loadErr.Path)
				if s.target != nil {
					assert.ErrorIs(t, err, s.target)
				}
			}
		})
	}
}

func TestLoadWithoutPaths(t *testing.T) {
	_, err := Load(nil)
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestLoadNullServiceBody(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "doc.yml", "services:\n  db:\n  web:\n    image: web\n")

	stack, err := Load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, 2, stack.Len())
	assert.True(t, stack.Has("db"))
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "bom.yml", "\ufeff"+docTwo)

	stack, err := Load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, stack.ServiceNames())
}

func TestMarshalPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "doc.yml", `version: "3"
x-common: &common
  restart: always
services:
  web:
    zeta: 1
    image: web
    alpha: 2
networks:
  default: {}
`)

	stack, err := Load([]string{path})
	require.NoError(t, err)

	out, err := stack.Marshal()
	require.NoError(t, err)
	text := string(out)

	assertOrdered(t, text, "version", "x-common", "services", "networks")
	assertOrdered(t, text, "zeta", "image", "alpha")
}

func assertOrdered(t *testing.T, text string, keys ...string) {
	t.Helper()
	last := -1
	for _, key := range keys {
		idx := strings.Index(text, key+":")
		require.NotEqual(t, -1, idx, "%s missing from\n%s", key, text)
		assert.Greater(t, idx, last, "%s out of order in\n%s", key, text)
		last = idx
	}
}
