package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slopengine/slopengine/internal/domain"
	"github.com/slopengine/slopengine/internal/dto"
	"github.com/slopengine/slopengine/internal/repository"
	"github.com/slopengine/slopengine/internal/service"
)

// VideoHandler handles video generation requests
type VideoHandler struct {
	videoService service.VideoService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{
		videoService: videoService,
	}
}

// Generate handles a video generation request
// @Summary Generate a video
// @Description Generate a video from a text prompt
// @Tags videos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.GenerateVideoRequest true "Generation request"
// @Success 200 {object} dto.GenerateVideoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /videos/generate [post]
func (h *VideoHandler) Generate(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "User not found in context",
		})
		return
	}

	var req dto.GenerateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	response, err := h.videoService.Generate(c.Request.Context(), user.ID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:   "Bad request",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to generate video",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles listing the caller's generated videos
// @Summary List generated videos
// @Description List the videos generated by the current user
// @Tags videos
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.VideoResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "User not found in context",
		})
		return
	}

	videos, err := h.videoService.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to list videos",
		})
		return
	}

	out := make([]dto.VideoResponse, 0, len(videos))
	for _, video := range videos {
		out = append(out, toVideoResponse(video))
	}

	c.JSON(http.StatusOK, out)
}

// Download handles downloading a generated clip
// @Summary Download a generated video
// @Description Download the clip file for a generated video
// @Tags videos
// @Security BearerAuth
// @Produce octet-stream
// @Param video_id path string true "Video id"
// @Success 200
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /videos/{video_id} [get]
func (h *VideoHandler) Download(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "User not found in context",
		})
		return
	}

	video, err := h.videoService.GetVideo(c.Request.Context(), c.Param("video_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error:   "Not found",
				Message: "Video not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to get video",
		})
		return
	}

	if video.UserID != user.ID {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:   "Forbidden",
			Message: "Video belongs to another user",
		})
		return
	}

	c.File(video.VideoPath)
}

func toVideoResponse(video *domain.GeneratedVideo) dto.VideoResponse {
	return dto.VideoResponse{
		VideoID:    video.VideoID,
		Prompt:     video.Prompt,
		Duration:   video.Duration,
		Resolution: video.Resolution,
		Style:      video.Style,
		FPS:        video.FPS,
		Status:     video.Status,
		CreatedAt:  video.CreatedAt.Format(time.RFC3339),
	}
}
