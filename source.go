package deskpet

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeFrame decodes an encoded image (PNG, JPEG, GIF, WebP or BMP) into a
// Frame.
func DecodeFrame(r io.Reader) (Frame, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Frame{}, err
	}
	b := img.Bounds()
	return Frame{
		Image:  ebiten.NewImageFromImage(img),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// FSSource loads frames from a filesystem. Locations are slash-separated
// paths inside FS.
type FSSource struct {
	FS fs.FS
}

// LoadFrame implements ImageSource.
func (s FSSource) LoadFrame(ctx context.Context, location string) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	f, err := s.FS.Open(strings.TrimPrefix(location, "/"))
	if err != nil {
		return Frame{}, err
	}
	defer f.Close()
	return DecodeFrame(f)
}

// HTTPSource loads frames over HTTP. Relative locations are resolved against
// BaseURL.
type HTTPSource struct {
	Client  *http.Client
	BaseURL string
}

// LoadFrame implements ImageSource. Any non-2xx response is an error.
func (s HTTPSource) LoadFrame(ctx context.Context, location string) (Frame, error) {
	u, err := s.resolve(location)
	if err != nil {
		return Frame{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Frame{}, err
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Frame{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Frame{}, fmt.Errorf("GET %s: %s", u, resp.Status)
	}
	return DecodeFrame(resp.Body)
}

func (s HTTPSource) resolve(location string) (string, error) {
	if s.BaseURL == "" {
		return location, nil
	}
	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse location: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}
