package gui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	throttle "github.com/boz/go-throttle"
	"github.com/fatih/color"
	"github.com/jesseduffield/gocui"
	"github.com/jesseduffield/lazycore/pkg/boxlayout"
	"github.com/peauc/dcv/pkg/commands"
	"github.com/peauc/dcv/pkg/config"
	"github.com/peauc/dcv/pkg/gui/presentation"
	"github.com/peauc/dcv/pkg/i18n"
	"github.com/peauc/dcv/pkg/reconcile"
	"github.com/peauc/dcv/pkg/utils"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

const UNKNOWN_VIEW_ERROR_MSG = "unknown view"

// Gui wraps the gocui Gui object which handles rendering and events
type Gui struct {
	g         *gocui.Gui
	Log       *logrus.Entry
	Tr        *i18n.TranslationSet
	Config    *config.AppConfig
	OSCommand *commands.OSCommand
	Info      StackInfo
	Terminal  *TerminalLock
	Views     Views
	State     guiState
	Mutexes   mutexes

	controller     *Controller
	renderThrottle throttle.ThrottleDriver
}

// StackInfo is the static description of the stack shown in the header and
// the about popup
type StackInfo struct {
	Title        string
	Project      string
	ComposeFiles []string
	SettingsPath string
	Names        *config.NameResolver
}

type Views struct {
	Project  *gocui.View
	Services *gocui.View
	Status   *gocui.View
	Options  *gocui.View
	About    *gocui.View
}

type guiState struct {
	UIMode       UIMode
	SelectedLine int
	Snapshot     *Snapshot
	Status       string
	AboutOpen    bool
}

type mutexes struct {
	State deadlock.Mutex
}

// NewGui builds a new gui handler
func NewGui(log *logrus.Entry, tr *i18n.TranslationSet, config *config.AppConfig, osCommand *commands.OSCommand, info StackInfo) *Gui {
	return &Gui{
		Log:       log,
		Tr:        tr,
		Config:    config,
		OSCommand: osCommand,
		Info:      info,
		Terminal:  NewTerminalLock(log, tr, osCommand),
	}
}

var _ Renderer = &Gui{}

// Run sets up the gui and runs the controller alongside the main loop until
// the user quits or the controller fails.
func (gui *Gui) Run(ctx context.Context, controller *Controller) error {
	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode:       gocui.OutputTrue,
		RuneReplacements: map[rune]string{},
	})
	if err != nil {
		return err
	}
	defer g.Close()

	gui.g = g
	gui.controller = controller
	gui.Terminal.attach(g)

	g.Mouse = true
	g.SetManagerFunc(gui.layout)

	if err := gui.keybindings(g); err != nil {
		return err
	}

	gui.renderThrottle = throttle.ThrottleFunc(50*time.Millisecond, true, func() {
		gui.g.Update(func(*gocui.Gui) error { return nil })
	})
	defer gui.renderThrottle.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	controllerErr := make(chan error, 1)
	go func() {
		err := controller.Run(ctx)
		controllerErr <- err
		if err != nil {
			g.Update(func(*gocui.Gui) error { return gocui.ErrQuit })
		}
	}()

	err = g.MainLoop()
	cancel()

	if err := <-controllerErr; err != nil {
		return err
	}
	if err == nil || errors.Is(err, gocui.ErrQuit) {
		return nil
	}
	return err
}

// Publish stores the latest snapshot and schedules a render
func (gui *Gui) Publish(snapshot *Snapshot) {
	gui.Mutexes.State.Lock()
	gui.State.Snapshot = snapshot
	gui.State.SelectedLine = gui.clampSelection(gui.State.SelectedLine)
	gui.Mutexes.State.Unlock()

	gui.triggerRender()
}

// SetStatus shows a message in the status line until the next one
func (gui *Gui) SetStatus(message string) {
	gui.Mutexes.State.Lock()
	gui.State.Status = message
	gui.Mutexes.State.Unlock()

	gui.triggerRender()
}

func (gui *Gui) triggerRender() {
	// the subprocess owns the terminal, resuming redraws everything anyway
	if gui.renderThrottle == nil || gui.Terminal.Suspended() {
		return
	}
	gui.renderThrottle.Trigger()
}

func (gui *Gui) quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func (gui *Gui) rootBox() *boxlayout.Box {
	return &boxlayout.Box{
		Direction: boxlayout.ROW,
		Children: []*boxlayout.Box{
			{Window: "project", Size: 3},
			{Window: "services", Weight: 1},
			{Window: "status", Size: 1},
			{Window: "options", Size: 1},
		},
	}
}

func (gui *Gui) layout(g *gocui.Gui) error {
	width, height := g.Size()
	dimensions := boxlayout.ArrangeWindows(gui.rootBox(), 0, 0, width, height)

	var err error
	if gui.Views.Project, err = gui.setView("project", dimensions["project"], true); err != nil {
		return err
	}
	if gui.Views.Services, err = gui.setView("services", dimensions["services"], true); err != nil {
		return err
	}
	if gui.Views.Status, err = gui.setView("status", dimensions["status"], false); err != nil {
		return err
	}
	if gui.Views.Options, err = gui.setView("options", dimensions["options"], false); err != nil {
		return err
	}

	gui.Views.Project.Title = gui.Info.Title
	gui.Views.Services.Tabs = gui.modeTabs()
	gui.Views.Options.FgColor = gocui.ColorBlue

	if gui.Views.About, err = gui.setView("about", gui.aboutDimensions(width, height), true); err != nil {
		return err
	}

	gui.Mutexes.State.Lock()
	defer gui.Mutexes.State.Unlock()

	gui.Views.Services.TabIndex = int(gui.State.UIMode)
	gui.Views.About.Visible = gui.State.AboutOpen
	if gui.State.AboutOpen {
		if _, err := g.SetViewOnTop("about"); err != nil {
			return err
		}
	}

	if g.CurrentView() == nil {
		if _, err := g.SetCurrentView("services"); err != nil {
			return err
		}
	}

	gui.renderProject()
	gui.renderServices()
	gui.renderStatus()
	gui.renderOptionsMap(gui.optionsMap())

	return nil
}

func (gui *Gui) setView(name string, dimensions boxlayout.Dimensions, frame bool) (*gocui.View, error) {
	frameOffset := 1
	if frame {
		frameOffset = 0
	}
	v, err := gui.g.SetView(name, dimensions.X0-frameOffset, dimensions.Y0-frameOffset, dimensions.X1+frameOffset, dimensions.Y1+frameOffset, 0)
	if err != nil && err.Error() != UNKNOWN_VIEW_ERROR_MSG {
		return nil, err
	}
	v.Frame = frame
	return v, nil
}

func (gui *Gui) aboutDimensions(width, height int) boxlayout.Dimensions {
	popupWidth := utils.Clamp(width-8, 10, 100)
	popupHeight := utils.Clamp(height-4, 5, height)
	x0 := (width - popupWidth) / 2
	y0 := (height - popupHeight) / 2
	return boxlayout.Dimensions{X0: x0, Y0: y0, X1: x0 + popupWidth - 1, Y1: y0 + popupHeight - 1}
}

// visibleRows must be called with the state mutex held
func (gui *Gui) visibleRows() []*reconcile.Row {
	if gui.State.Snapshot == nil || gui.State.Snapshot.View == nil {
		return nil
	}
	rows := gui.State.Snapshot.View.Rows
	if gui.State.UIMode == MODE_ALL {
		return rows
	}
	enabled := make([]*reconcile.Row, 0, len(rows))
	for _, row := range rows {
		if row.Enabled {
			enabled = append(enabled, row)
		}
	}
	return enabled
}

// clampSelection must be called with the state mutex held
func (gui *Gui) clampSelection(line int) int {
	count := len(gui.visibleRows())
	if count == 0 {
		return 0
	}
	return utils.Clamp(line, 0, count-1)
}

func (gui *Gui) renderServices() {
	v := gui.Views.Services
	v.Clear()

	rows := gui.visibleRows()
	if len(rows) == 0 {
		fmt.Fprint(v, gui.Tr.NoServices)
		return
	}

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, presentation.GetServiceHeader(gui.Tr))
	for _, row := range rows {
		cells = append(cells, presentation.GetServiceDisplayStrings(row))
	}

	lines, err := utils.RenderTableRows(cells)
	if err != nil {
		gui.Log.Error(err)
		return
	}

	fmt.Fprintln(v, utils.ColoredStringDirect(lines[0], color.New(color.Bold)))
	for i, line := range lines[1:] {
		if i == gui.State.SelectedLine {
			line = utils.ColoredStringDirect(utils.Decolorise(line), color.New(color.BgBlue, color.FgWhite))
		}
		fmt.Fprintln(v, line)
	}

	gui.focusSelectedLine(v)
}

// focusSelectedLine scrolls the services view so the selected row stays
// visible below the header line
func (gui *Gui) focusSelectedLine(v *gocui.View) {
	_, viewHeight := v.Size()
	_, originY := v.Origin()
	line := gui.State.SelectedLine + 1

	switch {
	case line < originY+1:
		originY = line - 1
	case line >= originY+viewHeight:
		originY = line - viewHeight + 1
	}
	if originY < 0 {
		originY = 0
	}

	v.SetOrigin(0, originY)
}

func (gui *Gui) renderStatus() {
	v := gui.Views.Status
	v.Clear()
	if gui.State.Status != "" {
		fmt.Fprint(v, utils.ColoredString(gui.State.Status, color.FgYellow))
	}
}

func (gui *Gui) renderOptionsMap(optionsMap map[string]string) {
	v := gui.Views.Options
	v.Clear()
	fmt.Fprint(v, gui.optionsMapToString(optionsMap))
}

func (gui *Gui) optionsMapToString(optionsMap map[string]string) string {
	optionsArray := make([]string, 0)
	for key, description := range optionsMap {
		optionsArray = append(optionsArray, key+": "+description)
	}
	sort.Strings(optionsArray)
	return strings.Join(optionsArray, ", ")
}

func (gui *Gui) moveSelection(delta int) {
	gui.Mutexes.State.Lock()
	defer gui.Mutexes.State.Unlock()

	count := len(gui.visibleRows())
	if count == 0 {
		gui.State.SelectedLine = 0
		return
	}
	gui.State.SelectedLine = (gui.State.SelectedLine + delta + count) % count
}

// selectedService returns the canonical name of the selected row, or ""
func (gui *Gui) selectedService() string {
	gui.Mutexes.State.Lock()
	defer gui.Mutexes.State.Unlock()

	rows := gui.visibleRows()
	if len(rows) == 0 {
		return ""
	}
	return rows[gui.clampSelection(gui.State.SelectedLine)].Service
}

func (gui *Gui) handleCursorUp(g *gocui.Gui, v *gocui.View) error {
	gui.moveSelection(-1)
	return nil
}

func (gui *Gui) handleCursorDown(g *gocui.Gui, v *gocui.View) error {
	gui.moveSelection(1)
	return nil
}

func (gui *Gui) sendServiceEvent(kind EventKind) error {
	service := gui.selectedService()
	if service == "" {
		return nil
	}
	gui.controller.Send(Event{Kind: kind, Service: service})
	return nil
}

func (gui *Gui) handleToggleService(g *gocui.Gui, v *gocui.View) error {
	return gui.sendServiceEvent(EventToggle)
}

func (gui *Gui) handleStopService(g *gocui.Gui, v *gocui.View) error {
	return gui.sendServiceEvent(EventStop)
}

func (gui *Gui) handleRemoveService(g *gocui.Gui, v *gocui.View) error {
	return gui.sendServiceEvent(EventRemove)
}

func (gui *Gui) handleServiceShell(g *gocui.Gui, v *gocui.View) error {
	return gui.sendServiceEvent(EventShell)
}

func (gui *Gui) handleServiceLogs(g *gocui.Gui, v *gocui.View) error {
	return gui.sendServiceEvent(EventLogs)
}

func (gui *Gui) handleBuildService(g *gocui.Gui, v *gocui.View) error {
	return gui.sendServiceEvent(EventBuild)
}

func (gui *Gui) handleStackUp(g *gocui.Gui, v *gocui.View) error {
	gui.controller.Send(Event{Kind: EventUp})
	return nil
}

func (gui *Gui) handleStackDown(g *gocui.Gui, v *gocui.View) error {
	gui.controller.Send(Event{Kind: EventDown})
	return nil
}

func (gui *Gui) returnFocus() error {
	_, err := gui.g.SetCurrentView("services")
	return err
}
