package course

import (
	"time"

	"github.com/jltacademy/backend/core"
)

// Course is a marketing-site course entry.
type Course struct {
	ID               int       `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Duration         string    `json:"duration" db:"duration"`
	Level            string    `json:"level" db:"level"`
	Featured         bool      `json:"featured" db:"featured"`
	ImageURL         string    `json:"image_url" db:"image_url"`
	RegistrationLink string    `json:"registration_link" db:"registration_link"`
	SortOrder        int       `json:"sort_order" db:"sort_order"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// ImageUpload constrains the `image` upload pathway.
var ImageUpload = core.UploadRule{
	AllowedExts:  []string{"jpg", "jpeg", "png", "gif", "webp"},
	AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	MaxSize:      5 << 20, // 5 MiB
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title            string `json:"title" form:"title" validate:"required"`
	Description      string `json:"description" form:"description" validate:"required"`
	Duration         string `json:"duration" form:"duration"`
	Level            string `json:"level" form:"level"`
	Featured         bool   `json:"featured" form:"featured"`
	RegistrationLink string `json:"registration_link" form:"registration_link" validate:"omitempty,url"`
	SortOrder        int    `json:"sort_order" form:"sort_order"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.RegistrationLink = core.CleanString(nc.RegistrationLink)
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what may be provided to modify an existing Course.
// Required fields match NewCourse; an update is a full replace of the form fields.
type UpdateCourse struct {
	Title            string `json:"title" form:"title" validate:"required"`
	Description      string `json:"description" form:"description" validate:"required"`
	Duration         string `json:"duration" form:"duration"`
	Level            string `json:"level" form:"level"`
	Featured         bool   `json:"featured" form:"featured"`
	RegistrationLink string `json:"registration_link" form:"registration_link" validate:"omitempty,url"`
	SortOrder        int    `json:"sort_order" form:"sort_order"`
}

func (uc *UpdateCourse) Validate() error {
	uc.Title = core.CleanString(uc.Title)
	uc.Description = core.CleanString(uc.Description)
	uc.RegistrationLink = core.CleanString(uc.RegistrationLink)
	return core.Validate.Struct(uc)
}

// SortUpdate is one (id, sort order) pair of a reorder batch.
type SortUpdate struct {
	ID        int `json:"id" validate:"required"`
	SortOrder int `json:"sort_order"`
}
