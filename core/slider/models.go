package slider

import (
	"time"

	"github.com/jltacademy/backend/core"
)

// Content types
const (
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
)

// Item is one entry of the homepage slider.
type Item struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	FilePath    string    `json:"file_path" db:"file_path"`
	FileType    string    `json:"file_type" db:"file_type"` // extension, e.g. ".png"
	ContentType string    `json:"content_type" db:"content_type"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// MediaUpload constrains the `file` upload pathway. Slider assets get the
// largest ceiling since hero videos are served from here.
var MediaUpload = core.UploadRule{
	AllowedExts: []string{"jpg", "jpeg", "png", "gif", "webp", "mp4", "avi", "mov", "wmv"},
	AllowedTypes: []string{
		"image/jpeg", "image/png", "image/gif", "image/webp",
		"video/mp4", "video/x-msvideo", "video/quicktime", "video/x-ms-wmv",
	},
	MaxSize: 50 << 20, // 50 MiB
}

// NewItem contains information needed to create a new slider Item.
// The backing file is passed separately and is required on create.
type NewItem struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	ContentType string `json:"content_type" form:"content_type" validate:"required,oneof=image video"`
	SortOrder   int    `json:"sort_order" form:"sort_order"`
}

func (ni *NewItem) Validate() error {
	ni.Title = core.CleanString(ni.Title)
	ni.Description = core.CleanString(ni.Description)
	ni.ContentType = core.CleanString(ni.ContentType, true /* lower */)
	return core.Validate.Struct(ni)
}

// UpdateItem defines what may be provided to modify an existing slider Item.
type UpdateItem struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	ContentType string `json:"content_type" form:"content_type" validate:"required,oneof=image video"`
	SortOrder   int    `json:"sort_order" form:"sort_order"`
}

func (ui *UpdateItem) Validate() error {
	ui.Title = core.CleanString(ui.Title)
	ui.Description = core.CleanString(ui.Description)
	ui.ContentType = core.CleanString(ui.ContentType, true /* lower */)
	return core.Validate.Struct(ui)
}

// SortUpdate is one (id, sort order) pair of a reorder batch.
type SortUpdate struct {
	ID        int `json:"id" validate:"required"`
	SortOrder int `json:"sort_order"`
}
