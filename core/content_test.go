package core

import (
	"errors"
	"testing"
)

func TestImagePartConstructors(t *testing.T) {
	part, err := NewImageURLPart("https://example.com/a.png")
	if err != nil {
		t.Fatalf("NewImageURLPart() error = %v", err)
	}
	if part.URL != "https://example.com/a.png" || part.Data != "" {
		t.Errorf("part = %+v", part)
	}

	part, err = NewImageDataPart("data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("NewImageDataPart() error = %v", err)
	}
	if part.Data == "" || part.URL != "" {
		t.Errorf("part = %+v", part)
	}
}

func TestImagePartRejectsEmptySource(t *testing.T) {
	if _, err := NewImageURLPart(""); !errors.Is(err, ErrNoImageSource) {
		t.Errorf("NewImageURLPart(\"\") error = %v", err)
	}
	if _, err := NewImageDataPart(""); !errors.Is(err, ErrNoImageSource) {
		t.Errorf("NewImageDataPart(\"\") error = %v", err)
	}
}

func TestContentTypes(t *testing.T) {
	if got := (TextPart{}).ContentType(); got != "text" {
		t.Errorf("TextPart.ContentType() = %q", got)
	}
	if got := (ImagePart{}).ContentType(); got != "image_url" {
		t.Errorf("ImagePart.ContentType() = %q", got)
	}
}
