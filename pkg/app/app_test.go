package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/peauc/dcv/pkg/compose"
	"github.com/peauc/dcv/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseDocument = `services:
  web:
    image: nginx
    depends_on:
      - db
  db:
    image: postgres
`

const overrideDocument = `services:
  worker:
    image: busybox
    links:
      - db
`

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("COMPOSE_PROJECT_NAME", "")

	projectDir := filepath.Join(t.TempDir(), "My Shop")
	require.NoError(t, os.MkdirAll(projectDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "docker-compose.yml"), []byte(baseDocument), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "docker-compose.override.yml"), []byte(overrideDocument), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, config.LocalOverrideFileName), []byte(`{
		"composePath": ["docker-compose.yml", "docker-compose.override.yml"],
		"title": "Shop",
		"names": {"db": "Database"}
	}`), 0o644))

	userConfig := config.GetDefaultConfig()
	app, err := NewApp(&config.AppConfig{
		Name:       "dcv",
		Version:    "test",
		UserConfig: &userConfig,
		ConfigDir:  t.TempDir(),
		ProjectDir: projectDir,
	})
	require.NoError(t, err)
	return app
}

func TestLoadStack(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, app.LoadStack(nil))

	assert.Equal(t, []string{"db", "web", "worker"}, app.Stack.Definition.ServiceNames())
	assert.Equal(t, "myshop", app.Stack.Project)
	assert.Equal(t, "Shop", app.Stack.Title)
	assert.Equal(t, "Database", app.Stack.Names.Resolve("db"))
	assert.True(t, app.Stack.Enablement["worker"], "every service starts enabled")
	assert.FileExists(t, app.Config.SettingsFilename())
}

func TestLoadStackCliFilesWin(t *testing.T) {
	app := newTestApp(t)

	require.NoError(t, app.LoadStack([]string{"docker-compose.yml"}))

	assert.Equal(t, []string{"db", "web"}, app.Stack.Definition.ServiceNames())
}

func TestLoadStackMissingFile(t *testing.T) {
	app := newTestApp(t)

	err := app.LoadStack([]string{"nope.yml"})

	var configErr *config.ConfigError
	assert.True(t, errors.As(err, &configErr))
}

func TestToggleAndPrint(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.LoadStack(nil))

	var out bytes.Buffer
	require.NoError(t, app.Toggle(&out, []string{"Database"}))
	assert.Equal(t, "Database: disabled\n", out.String())

	out.Reset()
	require.NoError(t, app.Print(&out))
	assert.NotContains(t, out.String(), "postgres")

	printed := filepath.Join(t.TempDir(), "printed.yml")
	require.NoError(t, os.WriteFile(printed, out.Bytes(), 0o644))
	projected, err := compose.Load([]string{printed})
	require.NoError(t, err)

	assert.Equal(t, []string{"web", "worker"}, projected.ServiceNames())
	web, _ := projected.Service("web")
	assert.Empty(t, web.DependsOn())
	worker, _ := projected.Service("worker")
	assert.Empty(t, worker.Links())
}

func TestToggleUnknownService(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.LoadStack(nil))

	var out bytes.Buffer
	err := app.Toggle(&out, []string{"nope"})

	var configErr *config.ConfigError
	assert.True(t, errors.As(err, &configErr))
	assert.Empty(t, out.String())
}

func TestDiff(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.LoadStack(nil))

	var out bytes.Buffer
	require.NoError(t, app.Diff(&out))
	assert.Empty(t, out.String(), "nothing differs while every service is enabled")

	require.NoError(t, app.Toggle(&bytes.Buffer{}, []string{"db"}))
	require.NoError(t, app.Diff(&out))
	assert.Contains(t, out.String(), "+++ "+compose.TempDocumentSuffix)
	assert.Regexp(t, `(?m)^-\s+image: postgres$`, out.String())
}

func TestKnownError(t *testing.T) {
	app := newTestApp(t)

	message, known := app.KnownError(errors.New("Got permission denied while trying to connect to the Docker daemon socket at unix:///var/run/docker.sock"))
	assert.True(t, known)
	assert.Equal(t, app.Tr.ConnectionFailedHint, message)

	_, known = app.KnownError(errors.New("something else"))
	assert.False(t, known)
}
