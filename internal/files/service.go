// Package files stores uploaded documents in blob storage under
// timestamped names so repeated uploads of the same file never collide.
package files

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/storage/azure"
)

const defaultContentType = "application/octet-stream"

// UploadResponse describes where an uploaded file landed.
type UploadResponse struct {
	Filename    string `json:"filename"`
	BlobName    string `json:"blob_name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Container   string `json:"container"`
}

// Service uploads files to blob storage.
type Service interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (*UploadResponse, error)
}

type service struct {
	uploader azure.Uploader
	now      func() time.Time
}

func NewService(uploader azure.Uploader) (Service, error) {
	if uploader == nil {
		return nil, fmt.Errorf("blob uploader is required")
	}
	return &service{
		uploader: uploader,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Upload(ctx context.Context, filename, contentType string, data []byte) (*UploadResponse, error) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filename is required")
	}
	if contentType == "" {
		contentType = defaultContentType
	}

	blobName := blobNameFor(s.now(), name)
	url, err := s.uploader.Upload(ctx, blobName, contentType, data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload blob")
	}

	return &UploadResponse{
		Filename:    name,
		BlobName:    blobName,
		URL:         url,
		ContentType: contentType,
		Container:   s.uploader.Container(),
	}, nil
}

// blobNameFor prefixes the basename with a microsecond timestamp,
// e.g. 20260831142509.123456_invoice.pdf.
func blobNameFor(now time.Time, filename string) string {
	base := filepath.Base(filename)
	return fmt.Sprintf("%s.%06d_%s", now.Format("20060102150405"), now.Nanosecond()/1000, base)
}
