package utils

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/smilepoint/clinic-api/config"
)

// Uploader stores profile pictures in Cloudinary.
type Uploader struct {
	cld *cloudinary.Cloudinary
}

func NewUploader(cfg *config.Config) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}
	return &Uploader{cld: cld}, nil
}

// Upload pushes a file to Cloudinary and returns the secure URL. Profile
// pictures are resized to a 200x200 thumbnail.
func (u *Uploader) Upload(ctx context.Context, file interface{}, publicID, folder string) (string, error) {
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		Transformation: "c_thumb,w_200,h_200",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
