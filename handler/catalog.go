package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"petawards/dto"
	"petawards/service"
)

func (h *Handler) listMetadata(c *gin.Context) {
	entries, err := h.Catalog.ListSubmissions(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("list-metadata failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch metadata")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) listFiles(c *gin.Context) {
	files, err := h.Catalog.ListFiles(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("list-files failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch files")
		return
	}
	c.JSON(http.StatusOK, files)
}

func (h *Handler) listVideos(c *gin.Context) {
	videos, err := h.Catalog.ListVideos(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("videos failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch video files")
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *Handler) submitMetadata(c *gin.Context) {
	var req dto.SubmitMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid metadata payload")
		return
	}

	info, err := h.Catalog.SubmitMetadata(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMissingAssociatedVideo) {
			respondError(c, http.StatusBadRequest, "associatedVideo is required")
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("submit-metadata failed")
		respondError(c, http.StatusInternalServerError, "Failed to process metadata submission")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    info,
	})
}

func (h *Handler) deleteFile(c *gin.Context) {
	fileKey := c.Query("fileKey")
	if fileKey == "" {
		respondError(c, http.StatusBadRequest, "File key is required")
		return
	}

	if err := h.Catalog.DeleteFile(c.Request.Context(), fileKey); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("delete-file failed")
		respondError(c, http.StatusInternalServerError, "Failed to delete file")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
