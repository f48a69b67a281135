package presentation

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/peauc/dcv/pkg/commands"
	"github.com/peauc/dcv/pkg/i18n"
	"github.com/peauc/dcv/pkg/utils"
)

// GetProjectDisplayStrings returns the cells of the header line: status icon,
// title, project identity and container counts.
func GetProjectDisplayStrings(project *commands.Project, title string, tr *i18n.TranslationSet) []string {
	statusIcon := getProjectStatusIcon(project)

	containerInfo := fmt.Sprintf(tr.ContainersRunning, project.RunningCount, project.ContainerCount)
	enabledInfo := fmt.Sprintf("%d/%d %s", project.EnabledCount, project.ServiceCount, tr.EnabledColumn)

	name := project.Name
	if title != "" && title != project.Name {
		name = fmt.Sprintf("%s (%s)", title, project.Name)
	}

	return []string{
		statusIcon,
		utils.ColoredStringDirect(name, color.New(color.FgGreen, color.Bold)),
		getProjectStatusText(project, tr),
		containerInfo,
		enabledInfo,
	}
}

func getProjectStatusText(project *commands.Project, tr *i18n.TranslationSet) string {
	switch project.Status {
	case commands.ProjectStatusRunning:
		return tr.ProjectRunning
	case commands.ProjectStatusStopped:
		return tr.ProjectStopped
	case commands.ProjectStatusMixed:
		return tr.ProjectMixed
	default:
		return tr.ProjectNotCreated
	}
}

func getProjectStatusIcon(project *commands.Project) string {
	var icon string
	var c color.Attribute

	switch project.Status {
	case commands.ProjectStatusRunning:
		icon = "●"
		c = color.FgGreen
	case commands.ProjectStatusStopped:
		icon = "○"
		c = color.FgYellow
	case commands.ProjectStatusMixed:
		icon = "◐"
		c = color.FgYellow
	case commands.ProjectStatusNotCreated:
		icon = "○"
		c = color.FgRed
	default:
		icon = "?"
		c = color.FgWhite
	}

	return utils.ColoredString(icon, c)
}
