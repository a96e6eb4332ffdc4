package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// ImageSize is a fixed output geometry. Images are scaled to fill it and
// center-cropped, so output dimensions are always exact.
type ImageSize struct {
	Name   string
	Width  int
	Height int
}

var (
	// SizeUserPhoto is the square avatar stored for accounts.
	SizeUserPhoto = ImageSize{Name: "user", Width: 500, Height: 500}

	// SizeTourImage is the 3:2 frame used for covers and gallery shots.
	SizeTourImage = ImageSize{Name: "tour", Width: 2000, Height: 1333}
)

// Processor resizes uploads into fixed frames and re-encodes them as JPEG.
type Processor struct {
	quality int
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 90
	}
	return &Processor{quality: quality}
}

// Process decodes the upload, fits it into size and returns the JPEG bytes.
func (p *Processor) Process(reader io.Reader, size ImageSize) (io.Reader, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("imageprocessor: decode: %w", err)
	}

	cropped := coverCrop(img, size.Width, size.Height)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, cropped, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("imageprocessor: encode: %w", err)
	}
	return &buf, nil
}

// IsValidImage reports whether the reader holds a decodable image. It
// consumes the reader.
func IsValidImage(reader io.Reader) bool {
	_, _, err := image.Decode(reader)
	return err == nil
}

// coverCrop scales img so it fully covers a width×height frame, then crops
// the overflow around the center.
func coverCrop(img image.Image, width, height int) image.Image {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	scale := float64(width) / float64(srcW)
	if s := float64(height) / float64(srcH); s > scale {
		scale = s
	}

	scaledW := int(float64(srcW)*scale + 0.5)
	scaledH := int(float64(srcH)*scale + 0.5)

	scaled := image.NewRGBA(image.Rect(0, 0, scaledW, scaledH))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)

	offsetX := (scaledW - width) / 2
	offsetY := (scaledH - height) / 2

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), scaled, image.Pt(offsetX, offsetY), draw.Src)
	return dst
}
