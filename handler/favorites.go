package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"petawards/dto"
	"petawards/service"
)

func (h *Handler) listFavorites(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "User ID is required")
		return
	}

	ids, err := h.Favorites.List(c.Request.Context(), userID)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("list-favorites failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch favorites")
		return
	}
	c.JSON(http.StatusOK, ids)
}

type addFavoriteRequest struct {
	UserID string              `json:"userId"`
	Entry  dto.SubmissionEntry `json:"entry"`
}

func (h *Handler) addFavorite(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid favorite payload")
		return
	}
	if req.UserID == "" || req.Entry.FileInfo.ID == "" {
		respondError(c, http.StatusBadRequest, "User ID and File ID are required")
		return
	}

	info, err := h.Favorites.Add(c.Request.Context(), req.UserID, req.Entry)
	if err != nil {
		if errors.Is(err, service.ErrFavoriteExists) {
			respondError(c, http.StatusConflict, "Favorite already exists")
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("add-favorite failed")
		respondError(c, http.StatusInternalServerError, "Failed to add favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    info,
	})
}

func (h *Handler) deleteFavorite(c *gin.Context) {
	userID := c.Query("userId")
	fileID := c.Query("fileId")
	if userID == "" || fileID == "" {
		respondError(c, http.StatusBadRequest, "User ID and File ID are required")
		return
	}

	if err := h.Favorites.Remove(c.Request.Context(), userID, fileID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			respondError(c, http.StatusNotFound, "Favorite not found")
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("delete-favorite failed")
		respondError(c, http.StatusInternalServerError, "Failed to delete favorite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
