package services

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Letterhead box on the statement, in pixels before PDF scaling
const (
	letterheadMaxWidth  = 480
	letterheadMaxHeight = 160
)

// Letterhead is the hotel logo printed on bill statements, pre-scaled and PNG encoded
type Letterhead struct {
	png    []byte
	width  int
	height int
}

// LoadLetterhead reads a JPG or PNG logo from disk and fits it into the letterhead box
func LoadLetterhead(path string) (*Letterhead, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open letterhead %s: %w", path, err)
	}
	return newLetterhead(img)
}

func newLetterhead(img image.Image) (*Letterhead, error) {
	// Fit never upscales
	fitted := imaging.Fit(img, letterheadMaxWidth, letterheadMaxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, fitted, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode letterhead: %w", err)
	}
	bounds := fitted.Bounds()
	return &Letterhead{png: buf.Bytes(), width: bounds.Dx(), height: bounds.Dy()}, nil
}

// Size returns the fitted logo dimensions in pixels
func (l *Letterhead) Size() (int, int) {
	return l.width, l.height
}
