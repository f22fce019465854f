package http

import (
	"log/slog"
	"net/http"

	"github.com/eximdesk/exim-backend-go/internal/handler/http/response"
	"github.com/eximdesk/exim-backend-go/internal/service/file"
)

// maxUploadSize caps a whole multipart upload request.
const maxUploadSize = 32 << 20 // 32 MiB

type UploadHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
}

type UploadHandlerImpl struct {
	fileService file.FileService
}

func NewUploadHandler(fileService file.FileService) UploadHandler {
	return &UploadHandlerImpl{fileService: fileService}
}

type uploadResponse struct {
	URLs []string `json:"urls"`
}

// Upload implements UploadHandler. Multipart form with repeated "files"
// parts and a "bucketPath" destination folder; responds with the stored
// files' public URLs in part order.
func (h *UploadHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Upload parse error", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		response.BadRequest(w, "No files provided", nil)
		return
	}
	bucketPath := r.FormValue("bucketPath")

	urls := make([]string, 0, len(files))
	for _, header := range files {
		part, err := header.Open()
		if err != nil {
			slog.Error("Upload open part error", "filename", header.Filename, "error", err)
			response.BadRequest(w, "Unreadable file part", nil)
			return
		}

		url, err := h.fileService.Upload(r.Context(), bucketPath, part, header.Filename)
		part.Close()
		if err != nil {
			slog.Error("Upload service error", "filename", header.Filename, "error", err)
			response.HandleError(w, err)
			return
		}
		urls = append(urls, url)
	}

	response.Success(w, uploadResponse{URLs: urls})
}
