package service

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/slopengine/slopengine/internal/domain"
	"github.com/slopengine/slopengine/internal/dto"
	"github.com/slopengine/slopengine/internal/llm"
	"github.com/slopengine/slopengine/internal/repository"
	"go.uber.org/zap"
)

// StatusCompleted is the terminal status of a successful generation run
const StatusCompleted = "completed"

const (
	defaultDuration   = 10
	defaultResolution = "1920x1080"
	defaultFPS        = 30
)

// videoService is the placeholder content generation backend: the "AI" step
// only rewrites the prompt, and the clip is synthetically drawn gradient
// frames. Real synthesis sits behind the same interface later.
type videoService struct {
	videoRepo   repository.VideoRepository
	enhancer    llm.PromptEnhancer
	outputDir   string
	maxDuration int
	logger      *zap.Logger
}

// NewVideoService creates a new video service
func NewVideoService(
	videoRepo repository.VideoRepository,
	enhancer llm.PromptEnhancer,
	outputDir string,
	maxDuration int,
	logger *zap.Logger,
) VideoService {
	return &videoService{
		videoRepo:   videoRepo,
		enhancer:    enhancer,
		outputDir:   outputDir,
		maxDuration: maxDuration,
		logger:      logger,
	}
}

// Generate runs one generation: enhance the prompt, render the clip, record
// metadata. A failed enhancement or render leaves no metadata row behind.
func (s *videoService) Generate(ctx context.Context, userID int64, req *dto.GenerateVideoRequest) (*dto.GenerateVideoResponse, error) {
	duration := req.Duration
	if duration <= 0 {
		duration = defaultDuration
	}
	if duration > s.maxDuration {
		return nil, fmt.Errorf("duration %d exceeds maximum of %d seconds: %w", duration, s.maxDuration, ErrInvalidRequest)
	}

	fps := req.FPS
	if fps <= 0 {
		fps = defaultFPS
	}

	resolution := req.Resolution
	if resolution == "" {
		resolution = defaultResolution
	}

	width, height, err := parseResolution(resolution)
	if err != nil {
		return nil, err
	}

	enhanced, err := s.enhancer.Enhance(ctx, req.Prompt, req.Style)
	if err != nil {
		return nil, fmt.Errorf("prompt enhancement failed: %w", err)
	}

	videoID := uuid.New().String()

	videoPath, err := s.renderClip(videoID, duration, width, height, fps)
	if err != nil {
		return nil, fmt.Errorf("failed to render clip: %w", err)
	}

	video := &domain.GeneratedVideo{
		VideoID:    videoID,
		UserID:     userID,
		Prompt:     req.Prompt,
		Duration:   duration,
		Resolution: resolution,
		FPS:        fps,
		VideoPath:  videoPath,
		Status:     StatusCompleted,
	}
	if req.Style != "" {
		video.Style = &req.Style
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to record video metadata: %w", err)
	}

	s.logger.Info("video generated",
		zap.String("video_id", videoID),
		zap.Int64("user_id", userID),
		zap.Int("frames", duration*fps),
	)

	return &dto.GenerateVideoResponse{
		VideoID:   videoID,
		Status:    video.Status,
		Message:   fmt.Sprintf("Video generated successfully: %s", enhanced),
		CreatedAt: video.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GetVideo retrieves video metadata by its public id
func (s *videoService) GetVideo(ctx context.Context, videoID string) (*domain.GeneratedVideo, error) {
	return s.videoRepo.GetByVideoID(ctx, videoID)
}

// ListByUser retrieves all videos generated by a user
func (s *videoService) ListByUser(ctx context.Context, userID int64) ([]*domain.GeneratedVideo, error) {
	return s.videoRepo.GetByUserID(ctx, userID)
}

func parseResolution(resolution string) (int, int, error) {
	parts := strings.Split(resolution, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("resolution %q is not WxH: %w", resolution, ErrInvalidRequest)
	}

	width, err := strconv.Atoi(parts[0])
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("resolution %q has an invalid width: %w", resolution, ErrInvalidRequest)
	}

	height, err := strconv.Atoi(parts[1])
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("resolution %q has an invalid height: %w", resolution, ErrInvalidRequest)
	}

	return width, height, nil
}

// renderClip draws the synthetic frames and writes them as an animated GIF.
// GIF is the container because the standard library can encode it; the path
// column stores whatever the renderer produced, so swapping in an mp4
// encoder later changes no schema.
func (s *videoService) renderClip(videoID string, duration, width, height, fps int) (string, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	totalFrames := duration * fps
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}

	anim := &gif.GIF{}
	for i := 0; i < totalFrames; i++ {
		progress := float64(i) / float64(totalFrames)
		anim.Image = append(anim.Image, renderFrame(width, height, progress))
		anim.Delay = append(anim.Delay, delay)
	}

	videoPath := filepath.Join(s.outputDir, videoID+".gif")

	f, err := os.Create(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to create clip file: %w", err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		os.Remove(videoPath)
		return "", fmt.Errorf("failed to encode clip: %w", err)
	}

	return videoPath, nil
}

// renderFrame draws one gradient frame with a progress bar along the bottom
func renderFrame(width, height int, progress float64) *image.Paletted {
	rect := image.Rect(0, 0, width, height)
	src := image.NewRGBA(rect)

	for y := 0; y < height; y++ {
		v := uint8(float64(y) / float64(height) * 255 * progress)
		row := color.RGBA{R: v, G: uint8(80 + progress*100), B: 255 - v, A: 255}
		for x := 0; x < width; x++ {
			src.SetRGBA(x, y, row)
		}
	}

	barHeight := height / 20
	if barHeight < 1 {
		barHeight = 1
	}
	barWidth := int(float64(width) * progress)
	bar := image.Rect(0, height-barHeight, barWidth, height)
	draw.Draw(src, bar, image.NewUniform(color.White), image.Point{}, draw.Src)

	frame := image.NewPaletted(rect, palette.Plan9)
	draw.Draw(frame, rect, src, image.Point{}, draw.Src)
	return frame
}
