package commands

import (
	"strings"

	"github.com/docker/docker/api/types/container"
)

const (
	composeServiceLabel   = "com.docker.compose.service"
	composeProjectLabel   = "com.docker.compose.project"
	composeContainerLabel = "com.docker.compose.container-number"
	composeOneOffLabel    = "com.docker.compose.oneoff"
)

// Container is a snapshot of one docker container as seen on a single refresh.
type Container struct {
	ID              string
	Name            string
	ServiceName     string
	ProjectName     string
	ContainerNumber string
	OneOff          bool
	State           string
	Status          string
	ImageID         string
	Container       container.Summary
}

func newContainer(ctr container.Summary) *Container {
	newContainer := &Container{
		ID:              ctr.ID,
		Container:       ctr,
		ServiceName:     ctr.Labels[composeServiceLabel],
		ProjectName:     ctr.Labels[composeProjectLabel],
		ContainerNumber: ctr.Labels[composeContainerLabel],
		OneOff:          ctr.Labels[composeOneOffLabel] == "True",
		State:           string(ctr.State),
		Status:          ctr.Status,
		ImageID:         ctr.ImageID,
	}

	// if the container is made with a name label we will use that
	if name, ok := ctr.Labels["name"]; ok {
		newContainer.Name = name
	} else if len(ctr.Names) > 0 {
		newContainer.Name = strings.TrimLeft(ctr.Names[0], "/")
	} else {
		newContainer.Name = ctr.ID
	}

	return newContainer
}

// BelongsTo reports whether compose created this container for the given
// service of the given project.
func (c *Container) BelongsTo(service string, project string) bool {
	return !c.OneOff && c.ServiceName == service && c.ProjectName == project
}
