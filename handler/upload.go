package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"petawards/constant"
)

// uploadVideo accepts one multipart video file. The request body is capped
// at the configured video limit before parsing.
func (h *Handler) uploadVideo(c *gin.Context) {
	info, ok := h.receiveUpload(c, h.VideoMaxBytes, func(filename, contentType string) string {
		if !constant.IsVideoName(filename) && !strings.HasPrefix(contentType, "video/") {
			return "Only video files are accepted"
		}
		return ""
	})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    info,
	})
}

// uploadFavorite accepts one JSON marker file, capped at the JSON limit.
func (h *Handler) uploadFavorite(c *gin.Context) {
	info, ok := h.receiveUpload(c, h.JSONMaxBytes, func(filename, contentType string) string {
		if !strings.HasPrefix(filename, constant.FavoriteMarkerPrefix) || !strings.HasSuffix(filename, ".json") {
			return "Only favorite marker files are accepted"
		}
		return ""
	})
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    info,
	})
}

func (h *Handler) receiveUpload(c *gin.Context, maxBytes int64, validate func(filename, contentType string) string) (any, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "A single file is required")
		return nil, false
	}
	if fileHeader.Size > maxBytes {
		respondError(c, http.StatusBadRequest, "File too large")
		return nil, false
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if msg := validate(fileHeader.Filename, contentType); msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read uploaded file")
		return nil, false
	}
	defer file.Close()

	body, err := io.ReadAll(file)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read uploaded file")
		return nil, false
	}

	info, err := h.Catalog.UploadFile(c.Request.Context(), fileHeader.Filename, contentType, body)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("upload failed")
		respondError(c, http.StatusInternalServerError, "Failed to upload file")
		return nil, false
	}
	return info, true
}
