package handler

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/media"
	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// maxUploadBytes caps product image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// UploadHandler handles product image uploads for the admin back office.
type UploadHandler struct {
	uploader media.Uploader
	logger   zerolog.Logger
}

// NewUploadHandler creates a new upload handler. uploader may be nil when
// media storage is not configured; uploads then fail cleanly.
func NewUploadHandler(uploader media.Uploader, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
		logger:   logger.With().Str("handler", "upload").Logger(),
	}
}

// UploadResponse carries the durable URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /api/uploads requests (admin only, multipart form with
// an "image" part).
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := auth.FromContext(r.Context())
	if user == nil {
		writeServiceError(w, model.ErrUnauthenticated, h.logger)
		return
	}
	if !user.IsAdmin() {
		writeServiceError(w, model.ErrForbidden, h.logger)
		return
	}

	if h.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "media storage is not configured", h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body", h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required", h.logger)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploader.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store image", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}
