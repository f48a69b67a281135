package commands

import (
	"time"

	"github.com/docker/docker/api/types/image"
)

// Image is a snapshot of one docker image
type Image struct {
	ID      string
	Created time.Time
	Size    int64
}

func newImage(img image.Summary) *Image {
	return &Image{
		ID:      img.ID,
		Created: time.Unix(img.Created, 0),
		Size:    img.Size,
	}
}
