package core

import (
	"mime/multipart"
	"net/textproto"
	"testing"
)

func TestUploadRule_Check(t *testing.T) {
	rule := UploadRule{
		AllowedExts:  []string{"png", "mp4"},
		AllowedTypes: []string{"image/png", "video/mp4"},
		MaxSize:      1 << 20,
	}

	fh := func(name, contentType string, size int64) *multipart.FileHeader {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Type", contentType)
		return &multipart.FileHeader{Filename: name, Header: hdr, Size: size}
	}

	tests := []struct {
		name    string
		fh      *multipart.FileHeader
		wantErr error
	}{
		{name: "ok", fh: fh("a.png", "image/png", 100)},
		{name: "ok uppercase ext", fh: fh("A.PNG", "image/png", 100)},
		{name: "ok type with params", fh: fh("a.mp4", "video/mp4; codecs=avc1", 100)},
		{name: "ext not allowed", fh: fh("a.exe", "image/png", 100), wantErr: ErrUnsupportedMediaType},
		{name: "no ext", fh: fh("a", "image/png", 100), wantErr: ErrUnsupportedMediaType},
		{name: "type not allowed", fh: fh("a.png", "application/octet-stream", 100), wantErr: ErrUnsupportedMediaType},
		{name: "ext and type checked independently", fh: fh("a.png", "video/mp4", 100)},
		{name: "too large", fh: fh("a.png", "image/png", 1<<20 + 1), wantErr: ErrFileTooLarge},
		{name: "at the limit", fh: fh("a.png", "image/png", 1 << 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := rule.Check(tt.fh); err != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
