package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameResolver(t *testing.T) {
	resolver, err := NewNameResolver(map[string]string{"api": "Backend API", "db": "Database"})
	require.NoError(t, err)

	assert.Equal(t, "Backend API", resolver.Resolve("api"))
	assert.Equal(t, "web", resolver.Resolve("web"))
	assert.Equal(t, "db", resolver.ReverseResolve("Database"))
	assert.Equal(t, "web", resolver.ReverseResolve("web"))
}

func TestNameResolverRejectsDuplicateAliases(t *testing.T) {
	_, err := NewNameResolver(map[string]string{"svcA": "x", "svcB": "x"})

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Error(), `"x"`)
}

func TestNameResolverWithoutAliases(t *testing.T) {
	resolver, err := NewNameResolver(nil)
	require.NoError(t, err)
	assert.Equal(t, "web", resolver.Resolve("web"))
	assert.Empty(t, resolver.Aliases())
}

func TestLoadLocalOverride(t *testing.T) {
	scenarios := []struct {
		name     string
		content  string
		expected *LocalOverride
		wantErr  bool
	}{
		{
			name:    "single compose path",
			content: `{"composePath": "deploy/compose.yml", "title": "Shop"}`,
			expected: &LocalOverride{
				ComposePath: StringList{"deploy/compose.yml"},
				Title:       "Shop",
			},
		},
		{
			name:    "list of compose paths with names",
			content: `{"composePath": ["a.yml", "b.yml"], "names": {"api": "API"}}`,
			expected: &LocalOverride{
				ComposePath: StringList{"a.yml", "b.yml"},
				Names:       map[string]string{"api": "API"},
			},
		},
		{
			name:    "invalid compose path type",
			content: `{"composePath": 3}`,
			wantErr: true,
		},
		{
			name:    "broken json",
			content: `{"composePath": `,
			wantErr: true,
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, LocalOverrideFileName), []byte(s.content), 0o644))

			override, err := LoadLocalOverride(dir)
			if s.wantErr {
				var configErr *ConfigError
				assert.ErrorAs(t, err, &configErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, s.expected, override)
		})
	}
}

func TestLoadLocalOverrideMissing(t *testing.T) {
	override, err := LoadLocalOverride(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &LocalOverride{}, override)
	assert.Equal(t, "fallback", override.TitleOr("fallback"))
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("services: {}\n"), 0o644))
}

func TestResolveComposePaths(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "compose.yaml"))
	touch(t, filepath.Join(dir, "deploy", "base.yml"))
	touch(t, filepath.Join(dir, "deploy", "dev.yml"))

	paths, err := ResolveComposePaths(dir, nil, &LocalOverride{})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "compose.yaml")}, paths)

	paths, err = ResolveComposePaths(dir, nil, &LocalOverride{ComposePath: StringList{"deploy/base.yml", "deploy/dev.yml"}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "deploy", "base.yml"), filepath.Join(dir, "deploy", "dev.yml")}, paths)

	paths, err = ResolveComposePaths(dir, []string{"deploy/dev.yml"}, &LocalOverride{ComposePath: StringList{"deploy/base.yml"}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "deploy", "dev.yml")}, paths)
}

func TestResolveComposePathsErrors(t *testing.T) {
	dir := t.TempDir()

	var configErr *ConfigError

	_, err := ResolveComposePaths(dir, nil, &LocalOverride{})
	assert.ErrorAs(t, err, &configErr)

	_, err = ResolveComposePaths(dir, nil, &LocalOverride{ComposePath: StringList{"missing.yml"}})
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Error(), "missing.yml")
}

func TestLoadUserConfigFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, userConfigFileName), []byte(`gui:
  refreshInterval: 2s
commandTemplates:
  dockerCompose: docker-compose
`), 0o644))

	userConfig, err := loadUserConfig(dir, GetDefaultConfig())
	require.NoError(t, err)

	defaults := GetDefaultConfig()
	assert.Equal(t, 2*time.Second, userConfig.Gui.RefreshInterval)
	assert.Equal(t, "docker-compose", userConfig.CommandTemplates.DockerCompose)
	assert.Equal(t, defaults.Gui.ScrollHeight, userConfig.Gui.ScrollHeight)
	assert.Equal(t, defaults.CommandTemplates.Up, userConfig.CommandTemplates.Up)
}

func TestLoadUserConfigCreatesFile(t *testing.T) {
	dir := t.TempDir()

	userConfig, err := loadUserConfig(dir, GetDefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), *userConfig)

	_, err = os.Stat(filepath.Join(dir, userConfigFileName))
	assert.NoError(t, err)
}

func TestNewAppConfigUsesConfigDirEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	t.Setenv("CONFIG_DIR", dir)

	appConfig, err := NewAppConfig("dcv", "1.0.0", "abc", "today", "test", false, "/work")
	require.NoError(t, err)

	assert.Equal(t, dir, appConfig.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "dcv.json"), appConfig.SettingsFilename())
	assert.Equal(t, filepath.Join(dir, "config.yml"), appConfig.ConfigFilename())
	assert.Equal(t, "/work", appConfig.ProjectDir)
}
