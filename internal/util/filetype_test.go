package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileTypeFromMIME(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/jpeg", TypeImage},
		{"image/png", TypeImage},
		{"image/webp", TypeImage},
		{"video/mp4", TypeVideo},
		{"video/webm", TypeVideo},
		{"audio/mpeg", TypeAudio},
		{"audio/wav", TypeAudio},
		{"application/pdf", TypeDocument},
		{"text/plain", TypeDocument},
		{"image/tiff", TypeDocument}, // not on the allow-list
		{"", TypeDocument},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.want, FileTypeFromMIME(tt.mime))
		})
	}
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "0 B", FormatSize(-10))
	assert.NotEmpty(t, FormatSize(1536*1024))
}
