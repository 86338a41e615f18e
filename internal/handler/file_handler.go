package handler

import (
	"errors"
	"net/http"

	"massg/internal/app/chat"
	"massg/internal/pkg/auth"
	"massg/internal/pkg/errs"
	"massg/internal/pkg/logx"
	"massg/internal/pkg/randx"
	"massg/internal/pkg/req"
	"massg/internal/pkg/resp"
)

// UploadResponse is returned by a successful upload.
type UploadResponse struct {
	ImageURL string `json:"image_url"`
}

// HandleUpload stores the multipart field "file" under a random name and returns its URL.
// Must be mounted behind auth.RequireToken.
func HandleUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileMissing))
			return
		}
		defer file.Close()

		if header.Filename == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileMissing))
			return
		}

		ext, mimeType, err := chat.ImageExt(header.Filename)
		if err != nil {
			if errors.Is(err, chat.ErrUnsupportedFileType) {
				resp.RespondError(w, r, errs.NewError(errs.ErrFileTypeUnsupported))
				return
			}
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		username, _ := auth.UsernameFromContext(r.Context())
		objectName := randx.ObjectName(ext)

		url, err := deps.StorageService.Put(r.Context(), objectName, mimeType, file, header.Size)
		if err != nil {
			logx.Error(err, "upload: storage write failed", "username", username, "object", objectName)
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		logx.Info("upload stored", "username", username, "object", objectName, "size", header.Size)
		resp.RespondSuccess(w, r, UploadResponse{ImageURL: url})
	}
}
