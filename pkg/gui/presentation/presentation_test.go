package presentation

import (
	"testing"

	"github.com/peauc/dcv/pkg/commands"
	"github.com/peauc/dcv/pkg/i18n"
	"github.com/peauc/dcv/pkg/reconcile"
	"github.com/peauc/dcv/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func decolorise(cells []string) []string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		out[i] = utils.Decolorise(cell)
	}
	return out
}

func TestGetServiceDisplayStrings(t *testing.T) {
	type scenario struct {
		name     string
		row      *reconcile.Row
		expected []string
	}

	scenarios := []scenario{
		{
			"enabled and running",
			&reconcile.Row{
				Service:     "db",
				DisplayName: "Database",
				Enabled:     true,
				Container:   &commands.Container{State: "running"},
				State:       "running - Up 2 minutes",
				LastBuilt:   "3 hours ago",
				Size:        "1.5MB",
			},
			[]string{"Database", "✓", "running - Up 2 minutes", "3 hours ago", "1.5MB"},
		},
		{
			"disabled without container",
			&reconcile.Row{Service: "web", DisplayName: "web"},
			[]string{"web", " ", "", "", ""},
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			assert.Equal(t, s.expected, decolorise(GetServiceDisplayStrings(s.row)))
		})
	}
}

func TestGetProjectDisplayStrings(t *testing.T) {
	tr := i18n.NewTranslationSet(utils.NewDummyLog(), "en")
	project := &commands.Project{
		Name:           "shop",
		Status:         commands.ProjectStatusMixed,
		RunningCount:   1,
		ContainerCount: 2,
		EnabledCount:   2,
		ServiceCount:   3,
	}

	assert.Equal(t,
		[]string{"◐", "My Shop (shop)", "partially running", "1/2 containers running", "2/3 Enabled"},
		decolorise(GetProjectDisplayStrings(project, "My Shop", tr)),
	)
	assert.Equal(t, "shop", utils.Decolorise(GetProjectDisplayStrings(project, "", tr)[1]))
}
