// Package reconcile joins the compose stack against what the docker daemon
// reports, producing the rows of the service table and an index from service
// name to container.
package reconcile

import (
	"time"

	"github.com/docker/go-units"
	"github.com/peauc/dcv/pkg/commands"
	"github.com/peauc/dcv/pkg/compose"
	"github.com/peauc/dcv/pkg/config"
	"github.com/samber/lo"
)

// Input is everything a reconciliation pass looks at. Containers and Images
// must come from a fresh fetch.
type Input struct {
	Stack      *compose.StackDefinition
	Containers []*commands.Container
	Images     []*commands.Image
	Enablement compose.EnablementMap
	Names      *config.NameResolver
	Project    string
	Now        time.Time
}

// Row is one line of the service table.
type Row struct {
	Service     string
	DisplayName string
	Enabled     bool
	// Container is nil when the service has no container in the project
	Container *commands.Container
	State     string
	LastBuilt string
	Size      string
}

// View is the result of a reconciliation pass.
type View struct {
	Rows  []*Row
	Index map[string]*commands.Container
}

// Lookup returns the container of a service, or nil.
func (v *View) Lookup(service string) *commands.Container {
	if v == nil {
		return nil
	}
	return v.Index[service]
}

// Row returns the row of a service, or nil.
func (v *View) Row(service string) *Row {
	if v == nil {
		return nil
	}
	row, _ := lo.Find(v.Rows, func(row *Row) bool { return row.Service == service })
	return row
}

// Build reconciles in.Stack against the runtime. Rows are sorted by service
// name. When several containers match a service the first one wins.
func Build(in Input) *View {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	imagesByID := make(map[string]*commands.Image, len(in.Images))
	for _, img := range in.Images {
		if _, ok := imagesByID[img.ID]; !ok {
			imagesByID[img.ID] = img
		}
	}

	names := in.Stack.ServiceNames()
	view := &View{
		Rows:  make([]*Row, 0, len(names)),
		Index: make(map[string]*commands.Container, len(names)),
	}

	for _, name := range names {
		row := &Row{
			Service:     name,
			DisplayName: displayName(in.Names, name),
			Enabled:     in.Enablement.Enabled(name),
		}

		ctr, found := lo.Find(in.Containers, func(ctr *commands.Container) bool {
			return ctr.BelongsTo(name, in.Project)
		})
		if found {
			row.Container = ctr
			row.State = ctr.State + " - " + ctr.Status
			if img, ok := imagesByID[ctr.ImageID]; ok {
				row.LastBuilt = units.HumanDuration(now.Sub(img.Created)) + " ago"
				row.Size = units.HumanSize(float64(img.Size))
			}
		}

		view.Rows = append(view.Rows, row)
		view.Index[name] = row.Container
	}

	return view
}

func displayName(names *config.NameResolver, service string) string {
	if names == nil {
		return service
	}
	return names.Resolve(service)
}
