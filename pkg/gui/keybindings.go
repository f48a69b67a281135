package gui

import (
	"github.com/jesseduffield/gocui"
)

// Binding - a keybinding mapping a key and modifier to a handler. The keypress
// is only handled if the given view has focus, or handled globally if the view
// is ""
type Binding struct {
	ViewName    string
	Handler     func(*gocui.Gui, *gocui.View) error
	Key         interface{} // gocui.Key or rune
	Modifier    gocui.Modifier
	Description string
	// KeyLabel is how the key is shown in the options bar and the about popup
	KeyLabel string
}

// GetInitialKeybindings is a function.
func (gui *Gui) GetInitialKeybindings() []*Binding {
	bindings := []*Binding{
		{
			ViewName: "",
			Key:      'q',
			Modifier: gocui.ModNone,
			Handler:  gui.quit,
		},
		{
			ViewName: "",
			Key:      gocui.KeyCtrlC,
			Modifier: gocui.ModNone,
			Handler:  gui.quit,
		},
		{
			ViewName:    "",
			Key:         gocui.KeyEsc,
			Modifier:    gocui.ModNone,
			Handler:     gui.quit,
			Description: gui.Tr.Quit,
			KeyLabel:    "esc/q",
		},
		{
			ViewName: "services",
			Key:      gocui.KeyArrowUp,
			Modifier: gocui.ModNone,
			Handler:  gui.handleCursorUp,
		},
		{
			ViewName: "services",
			Key:      'k',
			Modifier: gocui.ModNone,
			Handler:  gui.handleCursorUp,
		},
		{
			ViewName: "services",
			Key:      gocui.KeyArrowDown,
			Modifier: gocui.ModNone,
			Handler:  gui.handleCursorDown,
		},
		{
			ViewName:    "services",
			Key:         'j',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleCursorDown,
			Description: gui.Tr.Navigate,
			KeyLabel:    "↑ ↓",
		},
		{
			ViewName:    "services",
			Key:         'e',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleToggleService,
			Description: gui.Tr.EnableDisable,
			KeyLabel:    "e",
		},
		{
			ViewName:    "services",
			Key:         'x',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleStopService,
			Description: gui.Tr.Stop,
			KeyLabel:    "x",
		},
		{
			ViewName:    "services",
			Key:         'r',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleRemoveService,
			Description: gui.Tr.Remove,
			KeyLabel:    "r",
		},
		{
			ViewName:    "services",
			Key:         's',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleServiceShell,
			Description: gui.Tr.Shell,
			KeyLabel:    "s",
		},
		{
			ViewName:    "services",
			Key:         'l',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleServiceLogs,
			Description: gui.Tr.Logs,
			KeyLabel:    "l",
		},
		{
			ViewName:    "services",
			Key:         'b',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleBuildService,
			Description: gui.Tr.Build,
			KeyLabel:    "b",
		},
		{
			ViewName:    "services",
			Key:         'u',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleStackUp,
			Description: gui.Tr.StackUp,
			KeyLabel:    "u",
		},
		{
			ViewName:    "services",
			Key:         'd',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleStackDown,
			Description: gui.Tr.StackDown,
			KeyLabel:    "d",
		},
		{
			ViewName:    "services",
			Key:         gocui.KeyTab,
			Modifier:    gocui.ModNone,
			Handler:     gui.handleToggleMode,
			Description: gui.Tr.SwitchTab,
			KeyLabel:    "tab",
		},
		{
			ViewName:    "services",
			Key:         '?',
			Modifier:    gocui.ModNone,
			Handler:     gui.handleOpenAboutPopup,
			Description: gui.Tr.About,
			KeyLabel:    "?",
		},
		{
			ViewName: "about",
			Key:      gocui.KeyEsc,
			Modifier: gocui.ModNone,
			Handler:  gui.handleCloseAboutPopup,
		},
		{
			ViewName: "about",
			Key:      'q',
			Modifier: gocui.ModNone,
			Handler:  gui.handleCloseAboutPopup,
		},
		{
			ViewName: "about",
			Key:      gocui.KeyArrowUp,
			Modifier: gocui.ModNone,
			Handler:  gui.scrollUpAbout,
		},
		{
			ViewName: "about",
			Key:      'k',
			Modifier: gocui.ModNone,
			Handler:  gui.scrollUpAbout,
		},
		{
			ViewName: "about",
			Key:      gocui.KeyArrowDown,
			Modifier: gocui.ModNone,
			Handler:  gui.scrollDownAbout,
		},
		{
			ViewName: "about",
			Key:      'j',
			Modifier: gocui.ModNone,
			Handler:  gui.scrollDownAbout,
		},
	}

	return bindings
}

func (gui *Gui) keybindings(g *gocui.Gui) error {
	for _, binding := range gui.GetInitialKeybindings() {
		if err := g.SetKeybinding(binding.ViewName, binding.Key, binding.Modifier, binding.Handler); err != nil {
			return err
		}
	}

	if err := g.SetTabClickBinding("services", gui.onModeTabClick); err != nil {
		return err
	}

	return nil
}

// optionsMap is what the options bar shows for the services view
func (gui *Gui) optionsMap() map[string]string {
	optionsMap := map[string]string{}
	for _, binding := range gui.GetInitialKeybindings() {
		if binding.Description == "" || binding.ViewName == "about" {
			continue
		}
		optionsMap[binding.KeyLabel] = binding.Description
	}
	return optionsMap
}
