package util

import "github.com/dustin/go-humanize"

// Broad media categories a file record can be classified under.
const (
	TypeImage    = "image"
	TypeVideo    = "video"
	TypeAudio    = "audio"
	TypeDocument = "document"
)

var FileTypes = []string{TypeImage, TypeVideo, TypeAudio, TypeDocument}

var (
	imageMIMEs = map[string]struct{}{
		"image/jpeg": {},
		"image/png":  {},
		"image/gif":  {},
		"image/webp": {},
	}
	videoMIMEs = map[string]struct{}{
		"video/mp4":  {},
		"video/webm": {},
		"video/ogg":  {},
	}
	audioMIMEs = map[string]struct{}{
		"audio/mpeg": {},
		"audio/wav":  {},
		"audio/ogg":  {},
	}
)

// FileTypeFromMIME classifies a MIME string into one of the media
// categories. Anything unrecognised counts as a document.
func FileTypeFromMIME(mime string) string {
	if _, ok := imageMIMEs[mime]; ok {
		return TypeImage
	}
	if _, ok := videoMIMEs[mime]; ok {
		return TypeVideo
	}
	if _, ok := audioMIMEs[mime]; ok {
		return TypeAudio
	}
	return TypeDocument
}

func ValidFileType(t string) bool {
	switch t {
	case TypeImage, TypeVideo, TypeAudio, TypeDocument:
		return true
	}
	return false
}

// FormatSize renders a byte count for table output, e.g. "1.5 MiB".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
