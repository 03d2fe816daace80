package image

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/samber/lo"
)

const (
	DefaultMIMEType = "image/png"

	// MaxImageSize bounds how much of an upstream image body is read (20MB).
	MaxImageSize = 20 * 1024 * 1024

	// MaxErrorSize bounds how much of an upstream error or JSON body is read (64KB).
	MaxErrorSize = 64 * 1024
)

var ErrInvalidDataURI = errors.New("invalid data uri")

// Image is a raw image payload as returned by the upstream model.
type Image struct {
	Data        []byte
	ContentType string
}

// MIMEType returns the declared content type when it names an image, image/png otherwise.
func (i Image) MIMEType() string {
	return lo.Ternary(strings.HasPrefix(i.ContentType, "image/"), i.ContentType, DefaultMIMEType)
}

func (i Image) DataURI() string {
	return "data:" + i.MIMEType() + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// Extension picks a file extension for the image's MIME type.
func (i Image) Extension() string {
	mime, _, _ := strings.Cut(i.MIMEType(), ";")
	switch strings.TrimSpace(mime) {
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}

// ParseDataURI decodes a base64 data URI back into an Image.
func ParseDataURI(uri string) (*Image, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, ErrInvalidDataURI
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok || mime == "" {
		return nil, ErrInvalidDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Join(ErrInvalidDataURI, err)
	}
	return &Image{Data: data, ContentType: mime}, nil
}
