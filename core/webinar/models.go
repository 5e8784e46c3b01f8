package webinar

import (
	"time"

	"github.com/jltacademy/backend/core"
)

// Statuses
const (
	StatusUpcoming  = "upcoming"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Webinar is a live or recorded session advertised on the marketing site.
type Webinar struct {
	ID               int       `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Date             string    `json:"date" db:"date"`
	Time             string    `json:"time" db:"time"`
	Duration         string    `json:"duration" db:"duration"`
	Attendees        string    `json:"attendees" db:"attendees"`
	Status           string    `json:"status" db:"status"`
	RegistrationLink string    `json:"registration_link" db:"registration_link"`
	VideoURL         string    `json:"video_url" db:"video_url"`
	ImageURL         string    `json:"image_url" db:"image_url"`
	SortOrder        int       `json:"sort_order" db:"sort_order"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// MediaUpload constrains the `image` and `video` upload pathways.
var MediaUpload = core.UploadRule{
	AllowedExts: []string{"jpg", "jpeg", "png", "gif", "webp", "mp4", "avi", "mov", "wmv"},
	AllowedTypes: []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
		"video/mp4", "video/x-msvideo", "video/quicktime", "video/x-ms-wmv",
	},
	MaxSize: 10 << 20, // 10 MiB
}

// NewWebinar contains information needed to create a new Webinar.
type NewWebinar struct {
	Title            string `json:"title" form:"title" validate:"required"`
	Description      string `json:"description" form:"description" validate:"required"`
	Date             string `json:"date" form:"date" validate:"required"`
	Time             string `json:"time" form:"time"`
	Duration         string `json:"duration" form:"duration"`
	Attendees        string `json:"attendees" form:"attendees"`
	Status           string `json:"status" form:"status" validate:"required,oneof=upcoming completed cancelled"`
	RegistrationLink string `json:"registration_link" form:"registration_link" validate:"omitempty,url"`
	VideoURL         string `json:"video_url" form:"video_url" validate:"omitempty,url"`
	SortOrder        int    `json:"sort_order" form:"sort_order"`
}

func (nw *NewWebinar) Validate() error {
	nw.Title = core.CleanString(nw.Title)
	nw.Description = core.CleanString(nw.Description)
	nw.Date = core.CleanString(nw.Date)
	nw.Status = core.CleanString(nw.Status, true /* lower */)
	return core.Validate.Struct(nw)
}

// UpdateWebinar defines what may be provided to modify an existing Webinar.
type UpdateWebinar struct {
	Title            string `json:"title" form:"title" validate:"required"`
	Description      string `json:"description" form:"description" validate:"required"`
	Date             string `json:"date" form:"date" validate:"required"`
	Time             string `json:"time" form:"time"`
	Duration         string `json:"duration" form:"duration"`
	Attendees        string `json:"attendees" form:"attendees"`
	Status           string `json:"status" form:"status" validate:"required,oneof=upcoming completed cancelled"`
	RegistrationLink string `json:"registration_link" form:"registration_link" validate:"omitempty,url"`
	VideoURL         string `json:"video_url" form:"video_url" validate:"omitempty,url"`
	SortOrder        int    `json:"sort_order" form:"sort_order"`
}

func (uw *UpdateWebinar) Validate() error {
	uw.Title = core.CleanString(uw.Title)
	uw.Description = core.CleanString(uw.Description)
	uw.Date = core.CleanString(uw.Date)
	uw.Status = core.CleanString(uw.Status, true /* lower */)
	return core.Validate.Struct(uw)
}

// SortUpdate is one (id, sort order) pair of a reorder batch.
type SortUpdate struct {
	ID        int `json:"id" validate:"required"`
	SortOrder int `json:"sort_order"`
}
