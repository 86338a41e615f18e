package chat

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFileType is returned for uploads whose extension is not an allowed image type.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// ExtToMIME maps each allowed upload extension to its content type.
var ExtToMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ImageExt returns the lower-cased extension of fileName and its content type,
// or ErrUnsupportedFileType if the extension is not allow-listed.
func ImageExt(fileName string) (ext, mimeType string, err error) {
	ext = strings.ToLower(filepath.Ext(fileName))

	mimeType, ok := ExtToMIME[ext]
	if !ok {
		return "", "", ErrUnsupportedFileType
	}

	return ext, mimeType, nil
}
