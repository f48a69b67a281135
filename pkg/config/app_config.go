// Package config handles the user config (config.yml in the config directory),
// the per-project override file (.dcv.json in the invocation directory) and
// the service name aliases it may define.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/OpenPeeDeeP/xdg"
	"github.com/imdario/mergo"
	"github.com/jesseduffield/yaml"
	"github.com/spkg/bom"
)

const (
	userConfigFileName = "config.yml"
	settingsFileName   = "dcv.json"
)

// UserConfig holds all of the user-configurable options
type UserConfig struct {
	// Gui is for configuring visual things like the refresh interval
	Gui GuiConfig `yaml:"gui,omitempty"`

	// CommandTemplates determines what commands actually get called when
	// bringing the stack up or down, building, or attaching to a container
	CommandTemplates CommandTemplatesConfig `yaml:"commandTemplates,omitempty"`
}

// GuiConfig is for configuring visual things
type GuiConfig struct {
	// Language is the language of the interface. 'auto' picks the system language.
	Language string `yaml:"language,omitempty"`

	// RefreshInterval is how often the service table is reconciled against
	// the docker daemon while idle.
	RefreshInterval time.Duration `yaml:"refreshInterval,omitempty"`

	// ScrollHeight is how many lines the about popup scrolls at a time.
	ScrollHeight int `yaml:"scrollHeight,omitempty"`
}

// CommandTemplatesConfig determines what commands actually get called. The
// templates are rendered against commands.CommandObject.
type CommandTemplatesConfig struct {
	// DockerCompose is for your docker-compose command. If it's `docker compose`
	// and the compose plugin is missing we fall back to `docker-compose`.
	DockerCompose string `yaml:"dockerCompose,omitempty"`

	// Up brings the enabled services up against the temporary compose document.
	Up string `yaml:"up,omitempty"`

	// Down tears the enabled services down.
	Down string `yaml:"down,omitempty"`

	// Build builds one service.
	Build string `yaml:"build,omitempty"`

	// Shell attaches a shell to a container.
	Shell string `yaml:"shell,omitempty"`

	// Logs follows the logs of a container.
	Logs string `yaml:"logs,omitempty"`
}

// GetDefaultConfig returns the application default configuration
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Gui: GuiConfig{
			Language:        "auto",
			RefreshInterval: 5 * time.Second,
			ScrollHeight:    2,
		},
		CommandTemplates: CommandTemplatesConfig{
			DockerCompose: "docker compose",
			Up:            `{{ .DockerCompose }} -f "{{ .ComposeFile }}" -p {{ .ProjectName }} up -d`,
			Down:          `{{ .DockerCompose }} -f "{{ .ComposeFile }}" -p {{ .ProjectName }} down`,
			Build:         `{{ .DockerCompose }} -f "{{ .ComposeFile }}" -p {{ .ProjectName }} build {{ .Service }}`,
			Shell:         "docker exec -ti {{ .Container.ID }} sh",
			Logs:          "docker logs -f {{ .Container.ID }} --tail 250",
		},
	}
}

// AppConfig contains the base configuration fields required for dcv.
type AppConfig struct {
	Debug       bool
	Version     string
	Commit      string
	BuildDate   string
	Name        string
	BuildSource string
	UserConfig  *UserConfig
	ConfigDir   string
	ProjectDir  string
}

// NewAppConfig makes a new app config
func NewAppConfig(name, version, commit, date string, buildSource string, debuggingFlag bool, projectDir string) (*AppConfig, error) {
	configDir, err := findOrCreateConfigDir(name)
	if err != nil {
		return nil, err
	}

	userConfig, err := loadUserConfigWithDefaults(configDir)
	if err != nil {
		return nil, err
	}

	appConfig := &AppConfig{
		Name:        name,
		Version:     version,
		Commit:      commit,
		BuildDate:   date,
		Debug:       debuggingFlag || os.Getenv("DEBUG") == "TRUE",
		BuildSource: buildSource,
		UserConfig:  userConfig,
		ConfigDir:   configDir,
		ProjectDir:  projectDir,
	}

	return appConfig, nil
}

// ConfigFilename returns the filename of the user config file
func (c *AppConfig) ConfigFilename() string {
	return filepath.Join(c.ConfigDir, userConfigFileName)
}

// SettingsFilename returns the filename of the persisted service selections
func (c *AppConfig) SettingsFilename() string {
	return filepath.Join(c.ConfigDir, settingsFileName)
}

func configDirForVendor(vendor string, projectName string) string {
	envConfigDir := os.Getenv("CONFIG_DIR")
	if envConfigDir != "" {
		return envConfigDir
	}
	configDirs := xdg.New(vendor, projectName)
	return configDirs.ConfigHome()
}

func findOrCreateConfigDir(projectName string) (string, error) {
	folder := configDirForVendor("peauc", projectName)

	err := os.MkdirAll(folder, 0o755)
	if err != nil {
		return "", &ConfigError{Msg: "could not create config directory " + folder, Err: err}
	}

	return folder, nil
}

func loadUserConfigWithDefaults(configDir string) (*UserConfig, error) {
	return loadUserConfig(configDir, GetDefaultConfig())
}

// loadUserConfig reads config.yml, creating an empty one if needed, and fills
// every option the user left out from defaults.
func loadUserConfig(configDir string, defaults UserConfig) (*UserConfig, error) {
	fileName := filepath.Join(configDir, userConfigFileName)

	if _, err := os.Stat(fileName); err != nil {
		if !os.IsNotExist(err) {
			return nil, &ConfigError{Msg: "could not read " + fileName, Err: err}
		}
		file, err := os.Create(fileName)
		if err != nil {
			return nil, &ConfigError{Msg: "could not create " + fileName, Err: err}
		}
		file.Close()
	}

	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, &ConfigError{Msg: "could not read " + fileName, Err: err}
	}

	userConfig := UserConfig{}
	if err := yaml.Unmarshal(bom.Clean(content), &userConfig); err != nil {
		return nil, &ConfigError{Msg: "invalid config file " + fileName, Err: err}
	}

	if err := mergo.Merge(&userConfig, defaults); err != nil {
		return nil, &ConfigError{Msg: "could not apply config defaults", Err: err}
	}

	return &userConfig, nil
}
