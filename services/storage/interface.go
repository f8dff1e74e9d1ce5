package storage

import (
	"context"
	"io"
)

// Thumbnail dimensions applied by the upload transformation.
const (
	ThumbnailWidth  = 1120
	ThumbnailHeight = 540
)

// ImageStore uploads user supplied images and returns their public URL.
type ImageStore interface {
	// UploadThumbnail stores a service thumbnail, cropped to fill
	// ThumbnailWidth x ThumbnailHeight.
	UploadThumbnail(ctx context.Context, file io.Reader, name string) (string, error)
	// UploadAvatar stores a profile picture, replacing the previous one of the user.
	UploadAvatar(ctx context.Context, file io.Reader, userID string) (string, error)
}
