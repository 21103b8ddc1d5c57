package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"petawards/dto"
	"petawards/repository"
)

func (h *Handler) hasVoted(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "User ID is required")
		return
	}

	voted, err := h.Votes.HasVoted(c.Request.Context(), userID)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("has-voted failed")
		respondError(c, http.StatusInternalServerError, "Failed to check vote status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasVoted": voted})
}

func (h *Handler) submitVote(c *gin.Context) {
	var req dto.SubmitVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid vote payload")
		return
	}
	if req.UserID == "" || req.VideoID == 0 {
		respondError(c, http.StatusBadRequest, "User ID and Video ID are required")
		return
	}

	vote, err := h.Votes.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyVoted) {
			respondError(c, http.StatusConflict, "User has already voted")
			return
		}
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("submit-vote failed")
		respondError(c, http.StatusInternalServerError, "Failed to submit vote")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    vote,
	})
}

func (h *Handler) votes(c *gin.Context) {
	results, err := h.Votes.Results(c.Request.Context())
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("votes failed")
		respondError(c, http.StatusInternalServerError, "Failed to fetch votes")
		return
	}
	c.JSON(http.StatusOK, results)
}
