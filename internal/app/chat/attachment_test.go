package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageExt(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantExt  string
		wantMIME string
		wantErr  bool
	}{
		{name: "upper case png", fileName: "photo.PNG", wantExt: ".png", wantMIME: "image/png"},
		{name: "jpeg", fileName: "cat.jpeg", wantExt: ".jpeg", wantMIME: "image/jpeg"},
		{name: "webp", fileName: "a.b.webp", wantExt: ".webp", wantMIME: "image/webp"},
		{name: "executable", fileName: "virus.exe", wantErr: true},
		{name: "no extension", fileName: "README", wantErr: true},
		{name: "disguised", fileName: "photo.png.exe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, mimeType, err := ImageExt(tt.fileName)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
			assert.Equal(t, tt.wantMIME, mimeType)
		})
	}
}
