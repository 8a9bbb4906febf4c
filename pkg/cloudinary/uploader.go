package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"time"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

func NewCloudinaryUploader(cloud *cld.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cloud}
}

func boolPtr(b bool) *bool {
	return &b
}

// UploadBytes stores the file in raw mode under folder and returns the
// durable URL. Raw mode keeps the original extension, which matters for PDFs
// and slide decks. A short uuid prefix keeps same-named files apart.
func (u *CloudinaryUploader) UploadBytes(
	ctx context.Context,
	folder string,
	filename string,
	b []byte,
) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("%s_%s", uuid.NewString()[:8], filename)

	res, err := u.cld.Upload.Upload(
		ctx,
		bytes.NewReader(b),
		uploader.UploadParams{
			Folder:         folder,
			PublicID:       publicID,
			ResourceType:   "raw",
			UseFilename:    boolPtr(true),
			UniqueFilename: boolPtr(false),
			Overwrite:      boolPtr(true),
		},
	)
	if err != nil {
		return "", err
	}

	return res.SecureURL, nil
}
