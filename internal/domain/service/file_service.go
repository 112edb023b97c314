package service

import (
	"context"
	"io"
)

// ImageUpload is a single image file received from the admin form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageHost stores an image and returns its public URL.
type ImageHost interface {
	Upload(ctx context.Context, image ImageUpload) (string, error)
}
