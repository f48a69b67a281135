package gui

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/peauc/dcv/pkg/commands"
	"github.com/peauc/dcv/pkg/compose"
	"github.com/peauc/dcv/pkg/config"
	"github.com/peauc/dcv/pkg/i18n"
	"github.com/peauc/dcv/pkg/reconcile"
	"github.com/peauc/dcv/pkg/settings"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// EventKind is something the user asked the dashboard to do
type EventKind int

const (
	EventToggle EventKind = iota
	EventStop
	EventRemove
	EventShell
	EventLogs
	EventBuild
	EventUp
	EventDown
)

func (k EventKind) String() string {
	switch k {
	case EventToggle:
		return "toggle"
	case EventStop:
		return "stop"
	case EventRemove:
		return "remove"
	case EventShell:
		return "shell"
	case EventLogs:
		return "logs"
	case EventBuild:
		return "build"
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	default:
		return "unknown"
	}
}

// Event is sent from the key bindings to the controller. Service is empty for
// the stack wide events (up and down).
type Event struct {
	Kind    EventKind
	Service string
}

// ControllerState is what the controller is busy with
type ControllerState int

const (
	StateIdle ControllerState = iota
	StateRefreshing
	StateActionPending
)

const eventBufferSize = 16

// Runtime is the part of the docker client the controller needs
type Runtime interface {
	GetContainers(ctx context.Context) ([]*commands.Container, error)
	GetImages(ctx context.Context) ([]*commands.Image, error)
	StopContainer(ctx context.Context, ctr *commands.Container) error
	RemoveContainer(ctx context.Context, ctr *commands.Container) error
}

// CommandBuilder builds the subprocesses the controller hands the terminal to
type CommandBuilder interface {
	UpCommand(composeFile string, projectName string) (*exec.Cmd, error)
	DownCommand(composeFile string, projectName string) (*exec.Cmd, error)
	BuildCommand(composeFile string, projectName string, service string) (*exec.Cmd, error)
	ShellCommand(ctr *commands.Container) (*exec.Cmd, error)
	LogsCommand(ctr *commands.Container) (*exec.Cmd, error)
}

// SubprocessRunner runs a command with exclusive use of the terminal and
// returns its exit code. The error is only set when the command could not be
// run at all.
type SubprocessRunner interface {
	Run(cmd *exec.Cmd) (int, error)
}

// Renderer receives everything the controller wants on screen
type Renderer interface {
	Publish(snapshot *Snapshot)
	SetStatus(message string)
}

// Snapshot is the result of one refresh pass
type Snapshot struct {
	View        *reconcile.View
	Enablement  compose.EnablementMap
	Project     *commands.Project
	RefreshedAt time.Time
}

// ControllerOpts holds everything a Controller is built from
type ControllerOpts struct {
	Log      *logrus.Entry
	Tr       *i18n.TranslationSet
	Runtime  Runtime
	Commands CommandBuilder
	Runner   SubprocessRunner
	Renderer Renderer

	Store      *settings.Store
	StackKey   settings.StackKey
	Enablement compose.EnablementMap

	Stack        *compose.StackDefinition
	ComposeFiles []string
	Project      string
	Names        *config.NameResolver

	RefreshInterval time.Duration
}

// Controller is the dashboard loop. A single goroutine owns every
// reconciliation pass, settings write and subprocess, so no two of them ever
// overlap.
type Controller struct {
	ControllerOpts

	events     chan Event
	timer      *time.Timer
	enablement compose.EnablementMap
	now        func() time.Time

	state      ControllerState
	stateMutex deadlock.Mutex
}

// NewController returns a controller that has not started refreshing yet
func NewController(opts ControllerOpts) *Controller {
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 5 * time.Second
	}

	timer := time.NewTimer(opts.RefreshInterval)
	timer.Stop()

	enablement := opts.Enablement
	if enablement == nil {
		enablement = compose.EnablementMap{}
	}

	return &Controller{
		ControllerOpts: opts,
		events:         make(chan Event, eventBufferSize),
		timer:          timer,
		enablement:     enablement,
		now:            time.Now,
	}
}

// Send queues an event without blocking. It reports false when the queue is
// full and the event was dropped.
func (c *Controller) Send(event Event) bool {
	select {
	case c.events <- event:
		return true
	default:
		c.Log.WithField("event", event.Kind.String()).Warn("event queue full, dropping event")
		c.Renderer.SetStatus(c.Tr.EventDropped)
		return false
	}
}

// State returns what the controller is currently doing
func (c *Controller) State() ControllerState {
	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()
	return c.state
}

func (c *Controller) setState(state ControllerState) {
	c.stateMutex.Lock()
	defer c.stateMutex.Unlock()
	c.state = state
}

// Run refreshes once, then handles events and refresh ticks until ctx is
// done. A returned error is fatal.
func (c *Controller) Run(ctx context.Context) error {
	defer c.disarm()

	if err := c.refresh(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-c.timer.C:
			if err := c.refresh(ctx); err != nil {
				return err
			}
		case event := <-c.events:
			if err := c.handle(ctx, event); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) disarm() {
	if !c.timer.Stop() {
		select {
		case <-c.timer.C:
		default:
		}
	}
}

func (c *Controller) arm() {
	c.timer.Reset(c.RefreshInterval)
}

// refresh is one reconciliation pass. The timer is disarmed for the whole
// pass and rearmed once it has completed.
func (c *Controller) refresh(ctx context.Context) error {
	c.setState(StateRefreshing)
	c.disarm()

	view, containers, err := c.reconcile(ctx)
	if err != nil {
		return err
	}

	c.Renderer.Publish(&Snapshot{
		View:        view,
		Enablement:  c.enablement.Clone(),
		Project:     c.project(containers),
		RefreshedAt: c.now(),
	})

	c.arm()
	c.setState(StateIdle)
	return nil
}

func (c *Controller) reconcile(ctx context.Context) (*reconcile.View, []*commands.Container, error) {
	containers, err := c.Runtime.GetContainers(ctx)
	if err != nil {
		return nil, nil, err
	}
	images, err := c.Runtime.GetImages(ctx)
	if err != nil {
		return nil, nil, err
	}

	view := reconcile.Build(reconcile.Input{
		Stack:      c.Stack,
		Containers: containers,
		Images:     images,
		Enablement: c.enablement,
		Names:      c.Names,
		Project:    c.Project,
		Now:        c.now(),
	})
	return view, containers, nil
}

func (c *Controller) project(containers []*commands.Container) *commands.Project {
	project := commands.NewProject(c.Project, filepath.Dir(c.ComposeFiles[0]), c.ComposeFiles, containers)
	project.ServiceCount = c.Stack.Len()
	for _, name := range c.Stack.ServiceNames() {
		if c.enablement.Enabled(name) {
			project.EnabledCount++
		}
	}
	return project
}

// handle performs one action and then refreshes. Any scheduled refresh is
// cancelled until the action-triggered one has completed.
func (c *Controller) handle(ctx context.Context, event Event) error {
	c.setState(StateActionPending)
	c.disarm()

	c.Log.WithFields(logrus.Fields{"event": event.Kind.String(), "service": event.Service}).Info("handling event")

	if err := c.perform(ctx, event); err != nil {
		return err
	}

	return c.refresh(ctx)
}

func (c *Controller) perform(ctx context.Context, event Event) error {
	switch event.Kind {
	case EventToggle:
		return c.toggle(event.Service)
	case EventStop, EventRemove, EventShell, EventLogs:
		return c.containerAction(ctx, event)
	case EventBuild:
		if !c.enablement.Enabled(event.Service) {
			c.Renderer.SetStatus(fmt.Sprintf(c.Tr.ServiceDisabled, c.displayName(event.Service)))
			return nil
		}
		return c.runCompose(event)
	case EventUp, EventDown:
		return c.runCompose(event)
	default:
		return fmt.Errorf("unknown event kind %d", event.Kind)
	}
}

func (c *Controller) toggle(service string) error {
	if !c.Stack.Has(service) {
		c.Log.Warnf("toggle of unknown service %s ignored", service)
		return nil
	}

	enablement, err := c.Store.Toggle(c.StackKey, service)
	if err != nil {
		return err
	}
	c.enablement = enablement
	return nil
}

// containerAction resolves the service against a fresh view before acting on
// its container, so a container replaced since the last pass is never hit.
func (c *Controller) containerAction(ctx context.Context, event Event) error {
	view, _, err := c.reconcile(ctx)
	if err != nil {
		return err
	}

	ctr := view.Lookup(event.Service)
	if ctr == nil {
		c.Renderer.SetStatus(fmt.Sprintf(c.Tr.NoContainer, c.displayName(event.Service)))
		return nil
	}

	switch event.Kind {
	case EventStop:
		c.Renderer.SetStatus(c.Tr.StoppingContainer)
		return c.Runtime.StopContainer(ctx, ctr)
	case EventRemove:
		c.Renderer.SetStatus(c.Tr.RemovingContainer)
		return c.Runtime.RemoveContainer(ctx, ctr)
	case EventShell:
		cmd, err := c.Commands.ShellCommand(ctr)
		if err != nil {
			return err
		}
		c.runInteractive(cmd)
		return nil
	default:
		cmd, err := c.Commands.LogsCommand(ctr)
		if err != nil {
			return err
		}
		c.runInteractive(cmd)
		return nil
	}
}

// runInteractive runs shell and logs sessions, whose exit codes are only
// logged.
func (c *Controller) runInteractive(cmd *exec.Cmd) {
	code, err := c.Runner.Run(cmd)
	if err != nil {
		c.Log.Error(err)
		c.Renderer.SetStatus(err.Error())
		return
	}
	if code != 0 {
		c.Log.WithField("args", cmd.Args).Warnf("exited with code %d", code)
	}
}

// runCompose writes the enabled part of the stack to the temporary document
// and runs compose against it. A non-zero exit is returned as an ExitError
// after the document has been removed.
func (c *Controller) runCompose(event Event) error {
	projected := compose.Project(c.Stack, c.enablement)
	if projected.Len() == 0 {
		c.Renderer.SetStatus(c.Tr.NothingEnabled)
		return nil
	}

	tempPath := compose.TempDocumentPath(filepath.Dir(c.ComposeFiles[0]))
	if err := compose.WriteTempDocument(tempPath, projected); err != nil {
		return err
	}

	cmd, err := c.composeCommand(event, tempPath)
	if err != nil {
		c.removeTempDocument(tempPath)
		return err
	}

	code, err := c.Runner.Run(cmd)
	if err != nil {
		c.removeTempDocument(tempPath)
		return err
	}
	if code != 0 {
		c.removeTempDocument(tempPath)
		return &commands.ExitError{Args: cmd.Args, Code: code}
	}

	return compose.RemoveTempDocument(tempPath)
}

func (c *Controller) composeCommand(event Event, composeFile string) (*exec.Cmd, error) {
	switch event.Kind {
	case EventUp:
		return c.Commands.UpCommand(composeFile, c.Project)
	case EventDown:
		return c.Commands.DownCommand(composeFile, c.Project)
	default:
		return c.Commands.BuildCommand(composeFile, c.Project, event.Service)
	}
}

func (c *Controller) removeTempDocument(path string) {
	if err := compose.RemoveTempDocument(path); err != nil {
		c.Log.Error(err)
	}
}

func (c *Controller) displayName(service string) string {
	if c.Names == nil {
		return service
	}
	return c.Names.Resolve(service)
}
