package gui

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/jesseduffield/gocui"
	"github.com/jesseduffield/yaml"
	"github.com/peauc/dcv/pkg/utils"
)

// handleOpenAboutPopup opens the About view and hides all other panels
func (gui *Gui) handleOpenAboutPopup(g *gocui.Gui, v *gocui.View) error {
	gui.hideAllPanels()

	aboutView := gui.Views.About
	aboutView.Visible = true
	aboutView.Title = gui.Tr.AboutTitle
	aboutView.Wrap = true
	aboutView.Autoscroll = false

	gui.Mutexes.State.Lock()
	gui.State.AboutOpen = true
	gui.Mutexes.State.Unlock()

	aboutView.Clear()
	if _, err := aboutView.Write([]byte(gui.getAboutContent())); err != nil {
		return err
	}

	aboutView.SetOrigin(0, 0)

	gui.g.Update(func(g *gocui.Gui) error {
		_, err := g.SetCurrentView("about")
		return err
	})

	return nil
}

// handleCloseAboutPopup closes the About view and restores all panels
func (gui *Gui) handleCloseAboutPopup(g *gocui.Gui, v *gocui.View) error {
	gui.Views.About.Visible = false

	gui.Mutexes.State.Lock()
	gui.State.AboutOpen = false
	gui.Mutexes.State.Unlock()

	gui.showAllPanels()

	gui.g.Update(func(g *gocui.Gui) error {
		return gui.returnFocus()
	})

	return nil
}

func (gui *Gui) hideAllPanels() {
	gui.Views.Project.Visible = false
	gui.Views.Services.Visible = false
	gui.Views.Status.Visible = false
}

func (gui *Gui) showAllPanels() {
	gui.Views.Project.Visible = true
	gui.Views.Services.Visible = true
	gui.Views.Status.Visible = true
}

// getAboutContent lists the key bindings, the files dcv works with, the
// service aliases and the user config merged with the defaults
func (gui *Gui) getAboutContent() string {
	var configBuf bytes.Buffer
	_ = yaml.NewEncoder(&configBuf, yaml.IncludeOmitted).Encode(gui.Config.UserConfig)

	sections := []string{
		dcvTitle(),
		gui.keybindingsDescription(),
		gui.Tr.ComposeFilesTitle + ":\n" + strings.Join(gui.Info.ComposeFiles, "\n"),
		gui.Tr.SettingsFileTitle + ":\n" + gui.Info.SettingsPath,
	}

	if gui.Info.Names != nil && len(gui.Info.Names.Aliases()) > 0 {
		aliases, _ := yaml.Marshal(gui.Info.Names.Aliases())
		sections = append(sections, gui.Tr.AliasesTitle+":\n"+utils.ColoredYamlString(string(aliases)))
	}

	sections = append(sections,
		fmt.Sprintf("%s (%s):", gui.Tr.ConfigTitle, gui.Config.ConfigFilename()),
		utils.ColoredYamlString(configBuf.String()),
		fmt.Sprintf("%s %s (%s)", gui.Config.Name, gui.Config.Version, gui.Config.Commit),
	)

	return strings.Join(sections, "\n\n")
}

func (gui *Gui) keybindingsDescription() string {
	rows := [][]string{}
	for _, binding := range gui.GetInitialKeybindings() {
		if binding.Description == "" || binding.ViewName == "about" {
			continue
		}
		rows = append(rows, []string{utils.ColoredString(binding.KeyLabel, color.FgBlue), binding.Description})
	}
	table, err := utils.RenderTable(rows)
	if err != nil {
		gui.Log.Error(err)
		return ""
	}
	return table
}

// scrollUpAbout scrolls up in the About view
func (gui *Gui) scrollUpAbout(g *gocui.Gui, v *gocui.View) error {
	aboutView := gui.Views.About
	ox, oy := aboutView.Origin()
	newOy := int(math.Max(0, float64(oy-gui.Config.UserConfig.Gui.ScrollHeight)))

	aboutView.SetOrigin(ox, newOy)
	return nil
}

// scrollDownAbout scrolls down in the About view
func (gui *Gui) scrollDownAbout(g *gocui.Gui, v *gocui.View) error {
	aboutView := gui.Views.About
	ox, oy := aboutView.Origin()

	aboutView.SetOrigin(ox, oy+gui.Config.UserConfig.Gui.ScrollHeight)
	return nil
}

func dcvTitle() string {
	return `
       _
    __| | _____   __
   / _` + "`" + ` |/ __\ \ / /
  | (_| | (__ \ V /
   \__,_|\___| \_/
`
}
