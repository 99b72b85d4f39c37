package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/bunaihills/shop-service/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ErrUnconfigured means no Cloudinary credentials are present.
// Callers skip the upload and keep the record's image URL empty.
var ErrUnconfigured = errors.New("image host is not configured")

type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func New(cfg config.Cloudinary) (*CloudinaryUploader, error) {
	if !cfg.Configured() {
		return &CloudinaryUploader{}, nil
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

func (u *CloudinaryUploader) Configured() bool {
	return u.cld != nil
}

// Upload pushes the file to the image host and returns its public URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, folder string) (string, error) {
	if u.cld == nil {
		return "", ErrUnconfigured
	}

	res, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	return res.SecureURL, nil
}
