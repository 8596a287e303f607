package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/mapper"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxUploadMemory bounds how much of a multipart body is buffered in memory
const maxUploadMemory = 10 << 20

type ImageHandler struct {
	imageService *service.ImageService
	logger       *zap.Logger
}

func NewImageHandler(imageService *service.ImageService, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		logger:       logger,
	}
}

// Upload godoc
// @Summary Upload project image
// @Description Attach an image to a project. Multipart form with a "file" part and an optional "caption" field.
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Project ID"
// @Param file formData file true "Image file"
// @Param caption formData string false "Caption"
// @Success 201 {object} domain.ProjectImageDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/images [post]
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	caption := r.FormValue("caption")

	image, err := h.imageService.Upload(r.Context(), projectID, header.Filename, contentType, caption, file)
	if err != nil {
		respondServiceError(w, err, "Failed to upload image")
		return
	}
	respondJSON(w, http.StatusCreated, mapper.ToProjectImageDTO(image))
}

// ListByProject godoc
// @Summary List project images
// @Tags Images
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.ProjectImageDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/images [get]
func (h *ImageHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	images, err := h.imageService.ListByProject(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list images", zap.Error(err))
		respondServiceError(w, err, "Failed to list images")
		return
	}

	dtos := make([]domain.ProjectImageDTO, len(images))
	for i := range images {
		dtos[i] = mapper.ToProjectImageDTO(&images[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Download godoc
// @Summary Download image
// @Description Stream the stored image bytes with the original content type
// @Tags Images
// @Produce octet-stream
// @Param id path string true "Image ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /images/{id} [get]
func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid image ID")
		return
	}

	image, reader, err := h.imageService.Download(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to download image")
		return
	}
	defer reader.Close()

	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(image.Size, 10))
	w.Header().Set("Content-Disposition", `inline; filename="`+image.Filename+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("failed to stream image",
			zap.String("image_id", id.String()),
			zap.Error(err),
		)
	}
}

// Delete godoc
// @Summary Delete image
// @Tags Images
// @Param id path string true "Image ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /images/{id} [delete]
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid image ID")
		return
	}

	if err := h.imageService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete image")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
