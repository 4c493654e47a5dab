package controllers

import (
	"io"
	"net/http"

	"github.com/neocodenexus/vendorx-backend/api/responses"
	"github.com/neocodenexus/vendorx-backend/internal/files"
	pkgerrors "github.com/neocodenexus/vendorx-backend/pkg/errors"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

// Multipart uploads are buffered up to this size before spilling to disk.
const maxUploadMemory = 10 << 20

// FileUpload accepts a multipart "file" field and stores it in blob storage.
func FileUpload(svc files.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file service unavailable"))
			return
		}

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart payload"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read upload"))
			return
		}

		uploaded, err := svc.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, uploaded)
	}
}
