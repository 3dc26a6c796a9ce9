package services

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLetterhead_FitsBox(t *testing.T) {
	tests := []struct {
		name             string
		width, height    int
		expectW, expectH int
	}{
		{"wide logo shrinks to width", 1000, 200, 480, 96},
		{"tall logo shrinks to height", 320, 640, 80, 160},
		{"small logo is not upscaled", 100, 50, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := imaging.New(tt.width, tt.height, color.White)
			logo, err := newLetterhead(img)
			require.NoError(t, err)

			w, h := logo.Size()
			assert.Equal(t, tt.expectW, w)
			assert.Equal(t, tt.expectH, h)
			assert.Equal(t, []byte("\x89PNG"), logo.png[:4])
		})
	}
}

func TestLoadLetterhead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.jpg")
	require.NoError(t, imaging.Save(imaging.New(600, 200, color.Black), path))

	logo, err := LoadLetterhead(path)
	require.NoError(t, err)
	w, h := logo.Size()
	assert.Equal(t, 480, w)
	assert.Equal(t, 160, h)

	_, err = LoadLetterhead(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
