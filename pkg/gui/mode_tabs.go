package gui

import "github.com/jesseduffield/gocui"

// UIMode decides which services the table lists
type UIMode int

const (
	MODE_ALL UIMode = iota
	MODE_ENABLED
)

func (gui *Gui) modeTabs() []string {
	return []string{gui.Tr.AllServicesTab, gui.Tr.EnabledServicesTab}
}

func (gui *Gui) onModeTabClick(tabIndex int) error {
	targetMode := UIMode(tabIndex)
	return gui.switchToMode(targetMode)
}

func (gui *Gui) handleToggleMode(g *gocui.Gui, v *gocui.View) error {
	gui.Mutexes.State.Lock()
	targetMode := MODE_ALL
	if gui.State.UIMode == MODE_ALL {
		targetMode = MODE_ENABLED
	}
	gui.Mutexes.State.Unlock()

	return gui.switchToMode(targetMode)
}

func (gui *Gui) switchToMode(mode UIMode) error {
	if mode != MODE_ALL && mode != MODE_ENABLED {
		return nil
	}

	gui.Mutexes.State.Lock()
	gui.State.UIMode = mode
	gui.State.SelectedLine = 0
	gui.Mutexes.State.Unlock()

	gui.updateModeTabsView()
	return nil
}

func (gui *Gui) updateModeTabsView() {
	gui.g.Update(func(*gocui.Gui) error {
		if gui.Views.Services != nil {
			gui.Mutexes.State.Lock()
			gui.Views.Services.TabIndex = int(gui.State.UIMode)
			gui.Mutexes.State.Unlock()
		}
		return nil
	})
}
