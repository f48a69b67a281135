package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/go-errors/errors"
	"github.com/integrii/flaggy"
	"github.com/jesseduffield/yaml"
	"github.com/peauc/dcv/pkg/app"
	"github.com/peauc/dcv/pkg/commands"
	"github.com/peauc/dcv/pkg/compose"
	"github.com/peauc/dcv/pkg/config"
	"github.com/peauc/dcv/pkg/settings"
	"github.com/samber/lo"
)

const DEFAULT_VERSION = "unversioned"

var (
	commit      string
	version     = DEFAULT_VERSION
	date        string
	buildSource = "unknown"

	configFlag    = false
	debuggingFlag = false
	printFlag     = false
	diffFlag      = false
	composeFiles  []string
	toggleNames   []string
)

func main() {
	updateBuildInfo()

	info := fmt.Sprintf(
		"%s\nDate: %s\nBuildSource: %s\nCommit: %s\nOS: %s\nArch: %s",
		version,
		date,
		buildSource,
		commit,
		runtime.GOOS,
		runtime.GOARCH,
	)

	flaggy.SetName("dcv")
	flaggy.SetDescription("A terminal dashboard for picking which services of a compose stack to run")
	flaggy.DefaultParser.AdditionalHelpPrepend = "https://github.com/peauc/dcv"

	flaggy.Bool(&configFlag, "c", "config", "Print the current default config")
	flaggy.Bool(&debuggingFlag, "d", "debug", "Write a debug log to development.log in the config directory")
	flaggy.StringSlice(&composeFiles, "f", "file", "Specify alternate compose files, in override order")
	flaggy.Bool(&printFlag, "p", "print", "Print the compose document of the enabled services and exit")
	flaggy.Bool(&diffFlag, "", "diff", "Print a diff between the merged compose files and the enabled services and exit")
	flaggy.StringSlice(&toggleNames, "t", "toggle", "Enable or disable a service (by name or alias) and exit")
	flaggy.SetVersion(info)

	flaggy.Parse()

	if configFlag {
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		err := encoder.Encode(config.GetDefaultConfig())
		if err != nil {
			log.Fatal(err.Error())
		}
		fmt.Printf("%v\n", buf.String())
		os.Exit(0)
	}

	projectDir, err := os.Getwd()
	if err != nil {
		log.Fatal(err.Error())
	}

	appConfig, err := config.NewAppConfig("dcv", version, commit, date, buildSource, debuggingFlag, projectDir)
	if err != nil {
		log.Fatal(err.Error())
	}

	app, err := app.NewApp(appConfig)
	if err != nil {
		log.Fatal(err.Error())
	}

	err = run(app)
	if closeErr := app.Close(); closeErr != nil {
		app.Log.Error(closeErr)
	}

	if err != nil {
		os.Exit(handleError(app, err))
	}
}

func run(app *app.App) error {
	if err := app.LoadStack(composeFiles); err != nil {
		return err
	}

	switch {
	case len(toggleNames) > 0:
		return app.Toggle(os.Stdout, toggleNames)
	case printFlag:
		return app.Print(os.Stdout)
	case diffFlag:
		return app.Diff(os.Stdout)
	default:
		return app.Run(context.Background())
	}
}

// handleError reports err and returns the exit code for it
func handleError(app *app.App, err error) int {
	var exitErr *commands.ExitError
	if errors.As(err, &exitErr) {
		app.Log.Error(exitErr)
		log.Println(exitErr.Error())
		return exitErr.Code
	}

	if errorMessage, known := app.KnownError(err); known {
		log.Println(errorMessage)
		return 1
	}

	var (
		loadErr        *compose.LoadError
		configErr      *config.ConfigError
		persistenceErr *settings.PersistenceError
	)
	if errors.As(err, &loadErr) || errors.As(err, &configErr) || errors.As(err, &persistenceErr) {
		app.Log.Error(err)
		log.Println(err.Error())
		return 1
	}

	newErr := errors.Wrap(err, 0)
	stackTrace := newErr.ErrorStack()
	app.Log.Error(stackTrace)

	log.Printf("%s\n\n%s", app.Tr.ErrorOccurred, stackTrace)
	return 1
}

func updateBuildInfo() {
	if version == DEFAULT_VERSION {
		if buildInfo, ok := debug.ReadBuildInfo(); ok {
			revision, ok := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.revision"
			})
			if ok {
				commit = revision.Value
				// if dcv was built from source we'll show the version as the
				// abbreviated commit hash
				version = revision.Value
				if len(version) > 7 {
					version = version[:7]
				}
			}

			// if version hasn't been set we assume that neither has the date
			time, ok := lo.Find(buildInfo.Settings, func(setting debug.BuildSetting) bool {
				return setting.Key == "vcs.time"
			})
			if ok {
				date = time.Value
			}
		}
	}
}
