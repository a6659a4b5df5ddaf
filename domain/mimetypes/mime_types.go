package mimetypes

import (
	"mime"
	"strings"
)

type MIME string

const (
	Unknown     MIME = "unknown"
	OctetStream MIME = "application/octet-stream"
	TextPlain   MIME = "text/plain"
	TextHTML    MIME = "text/html"

	ApplicationPDF  MIME = "application/pdf"
	ApplicationJSON MIME = "application/json"
	ApplicationZIP  MIME = "application/zip"

	ImagePNG  MIME = "image/png"
	ImageJPEG MIME = "image/jpeg"
	ImageGIF  MIME = "image/gif"
	ImageWEBP MIME = "image/webp"

	VideoMP4  MIME = "video/mp4"
	AudioMPEG MIME = "audio/mpeg"
)

func Matches(detected string, expected MIME) (MIME, bool) {
	mt, _, err := mime.ParseMediaType(detected)
	if err != nil {
		return Unknown, false
	}
	return expected, mt == string(expected)
}

// Normalize strips parameters such as charset, falling back to OctetStream.
func Normalize(raw string) MIME {
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(raw))
	if err != nil || mt == "" {
		return OctetStream
	}
	return MIME(strings.ToLower(mt))
}

func (m MIME) IsImage() bool { return strings.HasPrefix(string(m), "image/") }

func (m MIME) IsVideo() bool { return strings.HasPrefix(string(m), "video/") }

func (m MIME) IsAudio() bool { return strings.HasPrefix(string(m), "audio/") }

func (m MIME) String() string { return string(m) }
