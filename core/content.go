package core

import "errors"

// ErrNoImageSource is returned when an image part is constructed with
// neither a URL nor inline data.
var ErrNoImageSource = errors.New("image part requires a URL or inline data")

// ContentPart represents a part of multimodal message content.
type ContentPart interface {
	// ContentType returns the wire type tag for this content part.
	ContentType() string
}

// TextPart represents text content in a multimodal message.
type TextPart struct {
	// Text is the text content.
	Text string
}

// ContentType returns the type identifier for TextPart.
func (t TextPart) ContentType() string {
	return "text"
}

// ImagePart represents image content in a multimodal message.
// Exactly one of URL and Data should be populated; construct values
// with NewImageURLPart or NewImageDataPart to enforce this.
type ImagePart struct {
	// URL is an HTTPS URL pointing at the image.
	URL string
	// Data is a base64 data URI carrying the image inline.
	Data string
}

// ContentType returns the type identifier for ImagePart.
func (i ImagePart) ContentType() string {
	return "image_url"
}

// NewImageURLPart builds an image part referencing an image by URL.
func NewImageURLPart(url string) (ImagePart, error) {
	if url == "" {
		return ImagePart{}, ErrNoImageSource
	}
	return ImagePart{URL: url}, nil
}

// NewImageDataPart builds an image part carrying an inline data URI.
func NewImageDataPart(data string) (ImagePart, error) {
	if data == "" {
		return ImagePart{}, ErrNoImageSource
	}
	return ImagePart{Data: data}, nil
}
