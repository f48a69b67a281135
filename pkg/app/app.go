package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/docker/docker/client"
	"github.com/go-errors/errors"
	"github.com/peauc/dcv/pkg/commands"
	"github.com/peauc/dcv/pkg/compose"
	"github.com/peauc/dcv/pkg/config"
	"github.com/peauc/dcv/pkg/gui"
	"github.com/peauc/dcv/pkg/i18n"
	"github.com/peauc/dcv/pkg/log"
	"github.com/peauc/dcv/pkg/settings"
	"github.com/peauc/dcv/pkg/utils"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"
)

// App struct
type App struct {
	closers []io.Closer

	Config        *config.AppConfig
	Log           *logrus.Entry
	OSCommand     *commands.OSCommand
	DockerCommand *commands.DockerCommand
	Gui           *gui.Gui
	Tr            *i18n.TranslationSet
	Stack         *Stack
	Store         *settings.Store
}

// Stack is the compose stack dcv was started on
type Stack struct {
	Definition   *compose.StackDefinition
	ComposeFiles []string
	Key          settings.StackKey
	Project      string
	Title        string
	Names        *config.NameResolver
	Enablement   compose.EnablementMap
}

// NewApp bootstrap a new application
func NewApp(config *config.AppConfig) (*App, error) {
	app := &App{
		closers: []io.Closer{},
		Config:  config,
	}
	app.Log = log.NewLogger(config)
	app.Tr = i18n.NewTranslationSet(app.Log, config.UserConfig.Gui.Language)
	app.OSCommand = commands.NewOSCommand(app.Log, config)
	app.Store = settings.NewStore(app.Log, config.SettingsFilename(), config.Version)

	return app, nil
}

// LoadStack finds, merges and identifies the compose files, then makes sure
// the stack has a service selection, enabling everything on first use.
func (app *App) LoadStack(cliFiles []string) error {
	override, err := config.LoadLocalOverride(app.Config.ProjectDir)
	if err != nil {
		return errors.Wrap(err, 0)
	}

	names, err := override.NameResolver()
	if err != nil {
		return errors.Wrap(err, 0)
	}

	composeFiles, err := config.ResolveComposePaths(app.Config.ProjectDir, cliFiles, override)
	if err != nil {
		return errors.Wrap(err, 0)
	}

	definition, err := compose.Load(composeFiles)
	if err != nil {
		return errors.Wrap(err, 0)
	}

	project := compose.ProjectName(definition, composeFiles[0])
	key := settings.NewStackKey(composeFiles)

	enablement, err := app.Store.EnsureEnabled(key, definition.ServiceNames())
	if err != nil {
		return errors.Wrap(err, 0)
	}

	app.Stack = &Stack{
		Definition:   definition,
		ComposeFiles: composeFiles,
		Key:          key,
		Project:      project,
		Title:        override.TitleOr(filepath.Base(app.Config.ProjectDir)),
		Names:        names,
		Enablement:   enablement,
	}

	app.Log.WithFields(logrus.Fields{
		"project":  project,
		"files":    composeFiles,
		"services": definition.Len(),
	}).Info("loaded stack")

	return nil
}

// Run connects to docker and runs the dashboard until the user quits
func (app *App) Run(ctx context.Context) error {
	dockerCommand, err := commands.NewDockerCommand(app.Log, app.OSCommand, app.Tr, app.Config)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	app.DockerCommand = dockerCommand
	app.closers = append(app.closers, dockerCommand)

	app.Gui = gui.NewGui(app.Log, app.Tr, app.Config, app.OSCommand, gui.StackInfo{
		Title:        app.Stack.Title,
		Project:      app.Stack.Project,
		ComposeFiles: app.Stack.ComposeFiles,
		SettingsPath: app.Store.Path(),
		Names:        app.Stack.Names,
	})

	controller := gui.NewController(gui.ControllerOpts{
		Log:             app.Log,
		Tr:              app.Tr,
		Runtime:         dockerCommand,
		Commands:        dockerCommand,
		Runner:          app.Gui.Terminal,
		Renderer:        app.Gui,
		Store:           app.Store,
		StackKey:        app.Stack.Key,
		Enablement:      app.Stack.Enablement,
		Stack:           app.Stack.Definition,
		ComposeFiles:    app.Stack.ComposeFiles,
		Project:         app.Stack.Project,
		Names:           app.Stack.Names,
		RefreshInterval: app.Config.UserConfig.Gui.RefreshInterval,
	})

	if err := app.Gui.Run(ctx, controller); err != nil {
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			return exitErr
		}
		return errors.Wrap(err, 0)
	}
	return nil
}

// Print writes the document compose would be run against
func (app *App) Print(w io.Writer) error {
	projected := compose.Project(app.Stack.Definition, app.Stack.Enablement)
	content, err := projected.Marshal()
	if err != nil {
		return errors.Wrap(err, 0)
	}
	_, err = w.Write(content)
	return err
}

// Diff writes a unified diff between the merged compose files and the
// document compose would be run against
func (app *App) Diff(w io.Writer) error {
	merged, err := app.Stack.Definition.Marshal()
	if err != nil {
		return errors.Wrap(err, 0)
	}
	projected, err := compose.Project(app.Stack.Definition, app.Stack.Enablement).Marshal()
	if err != nil {
		return errors.Wrap(err, 0)
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(merged)),
		B:        difflib.SplitLines(string(projected)),
		FromFile: strings.Join(app.Stack.ComposeFiles, ","),
		ToFile:   compose.TempDocumentSuffix,
		Context:  3,
	}
	return difflib.WriteUnifiedDiff(w, diff)
}

// Toggle flips services by canonical or display name and reports the result
func (app *App) Toggle(w io.Writer, names []string) error {
	services := make([]string, 0, len(names))
	for _, name := range names {
		service := app.Stack.Names.ReverseResolve(name)
		if !app.Stack.Definition.Has(service) {
			return errors.Wrap(&config.ConfigError{Msg: fmt.Sprintf("no service named %q", name)}, 0)
		}
		services = append(services, service)
	}

	enablement, err := app.Store.Toggle(app.Stack.Key, services...)
	if err != nil {
		return errors.Wrap(err, 0)
	}
	app.Stack.Enablement = enablement

	for _, service := range services {
		state := "disabled"
		if enablement.Enabled(service) {
			state = "enabled"
		}
		fmt.Fprintf(w, "%s: %s\n", app.Stack.Names.Resolve(service), state)
	}
	return nil
}

// Close closes any resources
func (app *App) Close() error {
	return utils.CloseMany(app.closers)
}

type errorMapping struct {
	originalError string
	newError      string
}

// KnownError takes an error and tells us whether it's an error that we know about where we can print a nicely formatted version of it rather than panicking with a stack trace
func (app *App) KnownError(err error) (string, bool) {
	if client.IsErrConnectionFailed(err) {
		return app.Tr.ConnectionFailedHint, true
	}

	errorMessage := err.Error()

	mappings := []errorMapping{
		{
			originalError: "Got permission denied while trying to connect to the Docker daemon socket",
			newError:      app.Tr.ConnectionFailedHint,
		},
	}

	for _, mapping := range mappings {
		if strings.Contains(errorMessage, mapping.originalError) {
			return mapping.newError, true
		}
	}

	return "", false
}
