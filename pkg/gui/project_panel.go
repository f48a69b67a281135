package gui

import (
	"fmt"
	"strings"

	"github.com/peauc/dcv/pkg/gui/presentation"
)

// At the moment the dashboard only ever shows one project: the one behind
// the compose files it was started with.

// GetProjectName returns the compose project identity the containers are
// matched against
func (gui *Gui) GetProjectName() string {
	return gui.Info.Project
}

// renderProject must be called with the state mutex held
func (gui *Gui) renderProject() {
	v := gui.Views.Project
	v.Clear()

	snapshot := gui.State.Snapshot
	if snapshot == nil || snapshot.Project == nil {
		fmt.Fprintf(v, "%s %s", gui.Tr.Refreshing, gui.GetProjectName())
		return
	}

	cells := presentation.GetProjectDisplayStrings(snapshot.Project, gui.Info.Title, gui.Tr)
	fmt.Fprint(v, strings.Join(cells, "  "))

	if !snapshot.RefreshedAt.IsZero() {
		fmt.Fprintf(v, "  %s", snapshot.RefreshedAt.Format("15:04:05"))
	}
}
