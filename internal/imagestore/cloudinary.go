package imagestore

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Photo is a stored image reference: the host-side id used for deletion and
// the public URL served to clients.
type Photo struct {
	ID        string
	SecureURL string
}

// Store is the image-hosting collaborator. Handlers depend on this interface
// so tests can substitute a fake.
type Store interface {
	Upload(ctx context.Context, file io.Reader, folder string) (Photo, error)
	Destroy(ctx context.Context, publicID string) error
}

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &Cloudinary{cld: cld}, nil
}

func (s *Cloudinary) Upload(ctx context.Context, file io.Reader, folder string) (Photo, error) {
	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return Photo{}, err
	}
	return Photo{ID: res.PublicID, SecureURL: res.SecureURL}, nil
}

func (s *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
