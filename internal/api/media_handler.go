package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaHandler serves photos and videos. Bytes never pass through the API:
// clients upload and download with presigned URLs.
type MediaHandler struct {
	mediaService service.MediaService
}

func NewMediaHandler(mediaService service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// CreateMediaRequest defines the expected JSON for registering an upload.
type CreateMediaRequest struct {
	Exercise    string `json:"exercise" binding:"required"`
	Title       string `json:"title" binding:"required,max=64"`
	ContentType string `json:"content_type" binding:"max=128"`
}

// MediaResponse is a photo or video with a fresh download URL.
type MediaResponse struct {
	ID          primitive.ObjectID     `json:"id"`
	Exercise    primitive.ObjectID     `json:"exercise"`
	Title       string                 `json:"title"`
	Visibility  domain.MediaVisibility `json:"visibility"`
	DownloadURL string                 `json:"download_url"`
}

// MediaUploadResponse is returned after registering an upload.
type MediaUploadResponse struct {
	ID        primitive.ObjectID `json:"id"`
	Exercise  primitive.ObjectID `json:"exercise"`
	Title     string             `json:"title"`
	UploadURL string             `json:"upload_url"`
}

func MapMediaToResponse(m *service.ResolvedMedia) MediaResponse {
	return MediaResponse{
		ID:          m.ID,
		Exercise:    m.ExerciseID,
		Title:       m.Title,
		Visibility:  m.Visibility,
		DownloadURL: m.URL,
	}
}

func MapMediaUploadToResponse(m *service.ResolvedMedia) MediaUploadResponse {
	return MediaUploadResponse{
		ID:        m.ID,
		Exercise:  m.ExerciseID,
		Title:     m.Title,
		UploadURL: m.URL,
	}
}

// MapMediaListToResponse converts every kind's items, keeping the kind order.
func MapMediaListToResponse(media *service.OrderedMap[[]service.ResolvedMedia]) *service.OrderedMap[[]MediaResponse] {
	return service.MapOrdered(media, func(items []service.ResolvedMedia) []MediaResponse {
		out := make([]MediaResponse, len(items))
		for i := range items {
			out[i] = MapMediaToResponse(&items[i])
		}
		return out
	})
}

// ListMedia godoc
// @Summary List photos and videos
// @Tags Media
// @Produce json
// @Param photo query bool false "Include photos"
// @Param video query bool false "Include videos"
// @Param public query bool false "Include catalog media"
// @Param uploaded query bool false "Include my uploads"
// @Success 200 {object} gin.H "kind -> items"
// @Router /media [get]
func (h *MediaHandler) ListMedia(c *gin.Context) {
	query := c.Request.URL.Query()
	kinds, err := service.MediaKindsParam(query)
	if err != nil {
		renderError(c, err)
		return
	}
	visibilities, err := service.MediaVisibilitiesParam(query)
	if err != nil {
		renderError(c, err)
		return
	}
	media, err := h.mediaService.ListMedia(c.Request.Context(), getProfileID(c), kinds, visibilities)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMediaListToResponse(media))
}

// CreateMedia godoc
// @Summary Register an upload
// @Description Creates the media record and returns a presigned upload URL.
// @Tags Media
// @Accept json
// @Produce json
// @Param media body CreateMediaRequest true "Media details"
// @Success 201 {object} MediaUploadResponse
// @Failure 400 {object} gin.H "Validation error"
// @Router /media [post]
func (h *MediaHandler) CreateMedia(c *gin.Context) {
	kind, err := service.MediaKindParam(c.Request.URL.Query())
	if err != nil {
		renderError(c, err)
		return
	}
	var req CreateMediaRequest
	if err := bindJSON(c, &req); err != nil {
		renderError(c, err)
		return
	}
	upload, err := h.mediaService.CreateMedia(c.Request.Context(), getProfileID(c), kind, service.MediaInput{
		Exercise:    req.Exercise,
		Title:       req.Title,
		ContentType: req.ContentType,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapMediaUploadToResponse(upload))
}

// GetMedia godoc
// @Summary Get one photo or video with a download URL
// @Tags Media
// @Produce json
// @Param id path string true "Media ObjectID Hex"
// @Success 200 {object} MediaResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /media/{id} [get]
func (h *MediaHandler) GetMedia(c *gin.Context) {
	query := c.Request.URL.Query()
	kind, err := service.MediaKindParam(query)
	if err != nil {
		renderError(c, err)
		return
	}
	item, err := h.mediaService.GetMedia(c.Request.Context(), getProfileID(c), kind, service.PublicParam(query), c.Param("id"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapMediaToResponse(item))
}

// DeleteMedia godoc
// @Summary Delete one of my uploads
// @Tags Media
// @Param id path string true "Media ObjectID Hex"
// @Success 204
// @Failure 404 {object} gin.H "Not found"
// @Router /media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	kind, err := service.MediaKindParam(c.Request.URL.Query())
	if err != nil {
		renderError(c, err)
		return
	}
	if err := h.mediaService.DeleteMedia(c.Request.Context(), getProfileID(c), kind, c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
