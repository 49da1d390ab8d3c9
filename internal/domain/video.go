package domain

import "time"

// GeneratedVideo records metadata about one generation run. The clip itself
// lives on disk at VideoPath; the row is never updated after insertion.
type GeneratedVideo struct {
	ID         int64     `json:"id" db:"id"`
	VideoID    string    `json:"video_id" db:"video_id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	Prompt     string    `json:"prompt" db:"prompt"`
	Duration   int       `json:"duration" db:"duration"`
	Resolution string    `json:"resolution" db:"resolution"`
	Style      *string   `json:"style" db:"style"`
	FPS        int       `json:"fps" db:"fps"`
	VideoPath  string    `json:"video_path" db:"video_path"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
