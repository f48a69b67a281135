package commands

import (
	"strings"
	"time"
)

const (
	ProjectStatusRunning    = "running"
	ProjectStatusStopped    = "stopped"
	ProjectStatusMixed      = "mixed"
	ProjectStatusNotCreated = "not created"
)

// Project summarises the compose project behind the dashboard.
type Project struct {
	Name           string
	Path           string
	ComposeFile    string
	ContainerCount int
	ServiceCount   int
	EnabledCount   int
	RunningCount   int
	Status         string // "running", "stopped", "mixed", "not created"
	LastUpdated    time.Time
}

// NewProject counts the containers that carry the project's label.
func NewProject(name string, path string, composeFiles []string, containers []*Container) *Project {
	project := &Project{
		Name:        name,
		Path:        path,
		ComposeFile: strings.Join(composeFiles, ","),
		LastUpdated: time.Now(),
	}

	for _, ctr := range containers {
		if ctr.ProjectName != name || ctr.OneOff {
			continue
		}
		project.ContainerCount++
		if ctr.State == "running" {
			project.RunningCount++
		}
	}

	switch {
	case project.ContainerCount == 0:
		project.Status = ProjectStatusNotCreated
	case project.RunningCount == 0:
		project.Status = ProjectStatusStopped
	case project.RunningCount == project.ContainerCount:
		project.Status = ProjectStatusRunning
	default:
		project.Status = ProjectStatusMixed
	}

	return project
}
