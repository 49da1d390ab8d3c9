package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/slopengine/slopengine/internal/domain"
	"github.com/slopengine/slopengine/pkg/database"
)

// videoRepository implements VideoRepository interface
type videoRepository struct {
	db *database.Postgres
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *database.Postgres) VideoRepository {
	return &videoRepository{db: db}
}

// Create records metadata for a generated video
func (r *videoRepository) Create(ctx context.Context, video *domain.GeneratedVideo) error {
	query := `
		INSERT INTO generated_videos (video_id, user_id, prompt, duration, resolution, style, fps, video_path, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now()
	}

	err := r.db.DB.QueryRowContext(ctx, query,
		video.VideoID,
		video.UserID,
		video.Prompt,
		video.Duration,
		video.Resolution,
		video.Style,
		video.FPS,
		video.VideoPath,
		video.Status,
		video.CreatedAt,
	).Scan(&video.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("video with id %s already exists: %w", video.VideoID, ErrDuplicateVideo)
			}
		}
		return fmt.Errorf("failed to create video record: %w", err)
	}

	return nil
}

// GetByVideoID retrieves video metadata by its public video id
func (r *videoRepository) GetByVideoID(ctx context.Context, videoID string) (*domain.GeneratedVideo, error) {
	query := `
		SELECT id, video_id, user_id, prompt, duration, resolution, style, fps, video_path, status, created_at
		FROM generated_videos
		WHERE video_id = $1
	`

	video := &domain.GeneratedVideo{}
	var style sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, videoID).Scan(
		&video.ID,
		&video.VideoID,
		&video.UserID,
		&video.Prompt,
		&video.Duration,
		&video.Resolution,
		&style,
		&video.FPS,
		&video.VideoPath,
		&video.Status,
		&video.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("video with id %s not found: %w", videoID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get video by id: %w", err)
	}

	if style.Valid {
		video.Style = &style.String
	}

	return video, nil
}

// GetByUserID retrieves all videos generated by a user
func (r *videoRepository) GetByUserID(ctx context.Context, userID int64) ([]*domain.GeneratedVideo, error) {
	query := `
		SELECT id, video_id, user_id, prompt, duration, resolution, style, fps, video_path, status, created_at
		FROM generated_videos
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos by user id: %w", err)
	}
	defer rows.Close()

	var videos []*domain.GeneratedVideo
	for rows.Next() {
		video := &domain.GeneratedVideo{}
		var style sql.NullString

		err := rows.Scan(
			&video.ID,
			&video.VideoID,
			&video.UserID,
			&video.Prompt,
			&video.Duration,
			&video.Resolution,
			&style,
			&video.FPS,
			&video.VideoPath,
			&video.Status,
			&video.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}

		if style.Valid {
			video.Style = &style.String
		}

		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}

	return videos, nil
}
