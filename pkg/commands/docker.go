package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	cliconfig "github.com/docker/cli/cli/config"
	"github.com/docker/cli/cli/connhelper"
	ddocker "github.com/docker/cli/cli/context/docker"
	ctxstore "github.com/docker/cli/cli/context/store"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/imdario/mergo"
	"github.com/peauc/dcv/pkg/config"
	"github.com/peauc/dcv/pkg/i18n"
	"github.com/peauc/dcv/pkg/utils"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

const (
	dockerHostEnvKey = "DOCKER_HOST"
)

// DockerCommand is our main docker interface
type DockerCommand struct {
	Log            *logrus.Entry
	OSCommand      *OSCommand
	Tr             *i18n.TranslationSet
	Config         *config.AppConfig
	Client         *client.Client
	ContainerMutex deadlock.Mutex

	Closers []io.Closer
}

var _ io.Closer = &DockerCommand{}

// CommandObject is what we pass to our template resolvers when we are running a
// custom command. We do not guarantee that all fields will be populated: just
// the ones that make sense for the current context
type CommandObject struct {
	DockerCompose string
	ComposeFile   string
	ProjectName   string
	Service       string
	Container     *Container
}

// NewCommandObject takes a command object and returns a default command object with the passed command object merged in
func (c *DockerCommand) NewCommandObject(obj CommandObject) CommandObject {
	defaultObj := CommandObject{DockerCompose: c.Config.UserConfig.CommandTemplates.DockerCompose}
	_ = mergo.Merge(&defaultObj, obj)
	return defaultObj
}

// NewDockerCommand creates a DockerCommand struct that wraps the docker client.
// Able to run docker commands and handles SSH docker hosts
func NewDockerCommand(log *logrus.Entry, osCommand *OSCommand, tr *i18n.TranslationSet, config *config.AppConfig) (*DockerCommand, error) {
	dockerHost, err := determineDockerHost()
	if err != nil {
		log.Warnf("could not determine docker host from context, using default: %v", err)
		dockerHost = defaultDockerHost
	}

	clientOpts := []client.Opt{
		client.WithTLSClientConfigFromEnv(),
		client.WithAPIVersionNegotiation(),
	}

	// ssh:// hosts are reached through the docker CLI's connection helper
	helper, err := connhelper.GetConnectionHelper(dockerHost)
	if err != nil {
		return nil, err
	}
	if helper != nil {
		clientOpts = append(clientOpts, client.WithHost(helper.Host), client.WithDialContext(helper.Dialer))
	} else {
		clientOpts = append(clientOpts, client.WithHost(dockerHost))
	}

	cli, err := client.NewClientWithOpts(clientOpts...)
	if err != nil {
		return nil, err
	}

	dockerCommand := &DockerCommand{
		Log:       log,
		OSCommand: osCommand,
		Tr:        tr,
		Config:    config,
		Client:    cli,
		Closers:   []io.Closer{cli},
	}

	dockerCommand.setDockerComposeCommand(config)

	return dockerCommand, nil
}

func (c *DockerCommand) setDockerComposeCommand(config *config.AppConfig) {
	if config.UserConfig.CommandTemplates.DockerCompose != "docker compose" {
		return
	}

	// it's possible that a user is still using docker-compose, so we'll check if 'docker comopose' is available, and if not, we'll fall back to 'docker-compose'
	err := c.OSCommand.RunCommand("docker compose version")
	if err != nil {
		config.UserConfig.CommandTemplates.DockerCompose = "docker-compose"
	}
}

func (c *DockerCommand) Close() error {
	return utils.CloseMany(c.Closers)
}

// GetContainers lists every container the daemon knows about, stopped ones included
func (c *DockerCommand) GetContainers(ctx context.Context) ([]*Container, error) {
	c.ContainerMutex.Lock()
	defer c.ContainerMutex.Unlock()

	containers, err := c.Client.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, &RuntimeQueryError{Op: "list containers", Err: err}
	}

	ownContainers := make([]*Container, len(containers))
	for i, ctr := range containers {
		ownContainers[i] = newContainer(ctr)
	}

	return ownContainers, nil
}

// GetImages lists the images, used to tell when a service was last built
func (c *DockerCommand) GetImages(ctx context.Context) ([]*Image, error) {
	images, err := c.Client.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, &RuntimeQueryError{Op: "list images", Err: err}
	}

	ownImages := make([]*Image, len(images))
	for i, img := range images {
		ownImages[i] = newImage(img)
	}

	return ownImages, nil
}

// StopContainer stops a container
func (c *DockerCommand) StopContainer(ctx context.Context, ctr *Container) error {
	c.Log.WithField("container", ctr.Name).Info("stopping container")
	if err := c.Client.ContainerStop(ctx, ctr.ID, container.StopOptions{}); err != nil {
		return &RuntimeQueryError{Op: "stop container " + ctr.Name, Err: err}
	}
	return nil
}

// RemoveContainer stops and then removes a container
func (c *DockerCommand) RemoveContainer(ctx context.Context, ctr *Container) error {
	if err := c.StopContainer(ctx, ctr); err != nil {
		return err
	}
	c.Log.WithField("container", ctr.Name).Info("removing container")
	if err := c.Client.ContainerRemove(ctx, ctr.ID, container.RemoveOptions{}); err != nil {
		return &RuntimeQueryError{Op: "remove container " + ctr.Name, Err: err}
	}
	return nil
}

// UpCommand brings up the services of a compose document
func (c *DockerCommand) UpCommand(composeFile string, projectName string) (*exec.Cmd, error) {
	return c.composeCommand(c.Config.UserConfig.CommandTemplates.Up, CommandObject{ComposeFile: composeFile, ProjectName: projectName})
}

// DownCommand tears down the services of a compose document
func (c *DockerCommand) DownCommand(composeFile string, projectName string) (*exec.Cmd, error) {
	return c.composeCommand(c.Config.UserConfig.CommandTemplates.Down, CommandObject{ComposeFile: composeFile, ProjectName: projectName})
}

// BuildCommand builds a single service of a compose document
func (c *DockerCommand) BuildCommand(composeFile string, projectName string, service string) (*exec.Cmd, error) {
	return c.composeCommand(c.Config.UserConfig.CommandTemplates.Build, CommandObject{ComposeFile: composeFile, ProjectName: projectName, Service: service})
}

// ShellCommand attaches a shell to a container
func (c *DockerCommand) ShellCommand(ctr *Container) (*exec.Cmd, error) {
	return c.composeCommand(c.Config.UserConfig.CommandTemplates.Shell, CommandObject{Container: ctr})
}

// LogsCommand follows the logs of a container
func (c *DockerCommand) LogsCommand(ctr *Container) (*exec.Cmd, error) {
	return c.composeCommand(c.Config.UserConfig.CommandTemplates.Logs, CommandObject{Container: ctr})
}

func (c *DockerCommand) composeCommand(template string, obj CommandObject) (*exec.Cmd, error) {
	commandStr, err := utils.ApplyTemplate(template, c.NewCommandObject(obj))
	if err != nil {
		return nil, fmt.Errorf("render command template %q: %w", template, err)
	}
	if strings.TrimSpace(commandStr) == "" {
		return nil, fmt.Errorf("command template %q rendered an empty command", template)
	}
	return c.OSCommand.ExecutableFromString(commandStr), nil
}

// determineDockerHost tries to the determine the docker host that we should connect to
// in the following order of decreasing precedence:
//   - value of "DOCKER_HOST" environment variable
//   - host retrieved from the current context (specified via DOCKER_CONTEXT)
//   - "default docker host" for the host operating system, otherwise
func determineDockerHost() (string, error) {
	// If the docker host is explicitly set via the "DOCKER_HOST" environment variable,
	// then its a no-brainer :shrug:
	if os.Getenv(dockerHostEnvKey) != "" {
		return os.Getenv(dockerHostEnvKey), nil
	}

	currentContext := os.Getenv("DOCKER_CONTEXT")
	if currentContext == "" {
		cf, err := cliconfig.Load(cliconfig.Dir())
		if err != nil {
			return "", err
		}
		currentContext = cf.CurrentContext
	}

	// On some systems (windows) `default` is stored in the docker config as the currentContext.
	if currentContext == "" || currentContext == "default" {
		// If a docker context is neither specified via the "DOCKER_CONTEXT" environment variable nor via the
		// $HOME/.docker/config file, then we fall back to connecting to the "default docker host" meant for
		// the host operating system.
		return defaultDockerHost, nil
	}

	storeConfig := ctxstore.NewConfig(
		func() interface{} { return &ddocker.EndpointMeta{} },
		ctxstore.EndpointTypeGetter(ddocker.DockerEndpoint, func() interface{} { return &ddocker.EndpointMeta{} }),
	)

	st := ctxstore.New(cliconfig.ContextStoreDir(), storeConfig)
	md, err := st.GetMetadata(currentContext)
	if err != nil {
		return "", err
	}
	dockerEP, ok := md.Endpoints[ddocker.DockerEndpoint]
	if !ok {
		return "", fmt.Errorf("context %q has no docker endpoint", currentContext)
	}
	dockerEPMeta, ok := dockerEP.(ddocker.EndpointMeta)
	if !ok {
		return "", fmt.Errorf("expected docker.EndpointMeta, got %T", dockerEP)
	}

	if dockerEPMeta.Host != "" {
		return dockerEPMeta.Host, nil
	}

	// We might end up here, if the context was created with the `host` set to an empty value (i.e. '').
	// For example:
	// ```sh
	// docker context create foo --docker "host="
	// ```
	// In such scenario, we mimic the `docker` cli and try to connect to the "default docker host".
	return defaultDockerHost, nil
}
