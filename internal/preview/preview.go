package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"vtk-polydata/internal/mathutil"
	"vtk-polydata/internal/mesh"
	"vtk-polydata/internal/postprocess"
	"vtk-polydata/internal/raster"
)

// DefaultFillRatio is the share of the canvas the mesh's longer side covers.
const DefaultFillRatio = 0.9

// Settings control preview rendering.
type Settings struct {
	Size        int
	Supersample int
	ColorLayer  string
	FillRatio   float64
}

// Render draws a framed size×size preview of m from the three-quarter view.
func Render(m *mesh.Mesh, s Settings) *image.NRGBA {
	img := raster.Render(m, raster.Options{
		Size:        s.Size,
		Supersample: s.Supersample,
		View:        mathutil.PreviewView,
		ColorLayer:  s.ColorLayer,
	})
	if s.Supersample > 1 {
		img = postprocess.Downsample(img, s.Size)
	}
	fill := s.FillRatio
	if fill <= 0 {
		fill = DefaultFillRatio
	}
	return postprocess.Frame(img, s.Size, fill)
}

// Encoder writes an image in one file format.
type Encoder func(w io.Writer, img image.Image) error

var encoders = map[string]Encoder{
	".webp": func(w io.Writer, img image.Image) error { return nativewebp.Encode(w, img, nil) },
	".tga":  tga.Encode,
	".png":  png.Encode,
}

// EncoderFor picks the encoder from the file extension.
func EncoderFor(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("preview: unsupported image format %q", ext)
	}
	return enc, nil
}

// Save writes img to path, choosing WebP, TGA or PNG by extension. The image
// is encoded to a temp file beside path and renamed into place, so a failed
// encode leaves no partial file.
func Save(path string, img image.Image) error {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer os.Remove(f.Name())

	if err := enc(f, img); err != nil {
		f.Close()
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
