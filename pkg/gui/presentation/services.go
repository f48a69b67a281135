package presentation

import (
	"strings"

	"github.com/fatih/color"
	"github.com/peauc/dcv/pkg/i18n"
	"github.com/peauc/dcv/pkg/reconcile"
	"github.com/peauc/dcv/pkg/utils"
)

// GetServiceHeader returns the column titles of the service table
func GetServiceHeader(tr *i18n.TranslationSet) []string {
	return []string{
		tr.ComponentColumn,
		tr.EnabledColumn,
		tr.StateColumn,
		tr.LastBuiltColumn,
		tr.SizeColumn,
	}
}

// GetServiceDisplayStrings returns the cells of one service table row
func GetServiceDisplayStrings(row *reconcile.Row) []string {
	name := row.DisplayName
	enabled := " "
	if row.Enabled {
		name = utils.ColoredString(name, color.FgGreen)
		enabled = utils.ColoredString("✓", color.FgGreen)
	}

	return []string{
		name,
		enabled,
		getStateString(row),
		row.LastBuilt,
		row.Size,
	}
}

func getStateString(row *reconcile.Row) string {
	if row.Container == nil {
		return ""
	}
	return utils.ColoredString(row.State, getStateColor(row.Container.State))
}

func getStateColor(state string) color.Attribute {
	switch strings.ToLower(state) {
	case "running":
		return color.FgGreen
	case "paused", "restarting":
		return color.FgYellow
	case "exited", "dead":
		return color.FgRed
	default:
		return color.FgWhite
	}
}
