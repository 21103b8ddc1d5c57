package handler

import (
	"github.com/gin-gonic/gin"

	"petawards/service"
)

// Handler wires the HTTP surface to the services.
type Handler struct {
	Catalog   service.CatalogService
	Favorites service.FavoriteService
	Votes     service.VoteService

	VideoMaxBytes int64
	JSONMaxBytes  int64
}

func New(catalog service.CatalogService, favorites service.FavoriteService, votes service.VoteService, videoMaxBytes, jsonMaxBytes int64) *Handler {
	return &Handler{
		Catalog:       catalog,
		Favorites:     favorites,
		Votes:         votes,
		VideoMaxBytes: videoMaxBytes,
		JSONMaxBytes:  jsonMaxBytes,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/list-metadata", h.listMetadata)
	api.GET("/list-files", h.listFiles)
	api.GET("/videos", h.listVideos)
	api.POST("/submit-metadata", h.submitMetadata)
	api.DELETE("/delete-file", h.deleteFile)

	api.GET("/list-favorites", h.listFavorites)
	api.POST("/add-favorite", h.addFavorite)
	api.DELETE("/delete-favorite", h.deleteFavorite)

	api.POST("/upload-video", h.uploadVideo)
	api.POST("/upload-favorite", h.uploadFavorite)

	api.GET("/has-voted", h.hasVoted)
	api.POST("/submit-vote", h.submitVote)
	api.GET("/votes", h.votes)
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
