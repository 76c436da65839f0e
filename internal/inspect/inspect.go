// Package inspect reads pixel dimensions and builds preview thumbnails for
// image files with OpenCV. Formats OpenCV cannot decode (EPS, SVG, ...) are
// reported as undecodable rather than as failures.
package inspect

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gocv.io/x/gocv"

	"unused-image-finder/internal/logger"
)

// ErrNotAnImage is returned by Thumbnail for files OpenCV cannot decode
var ErrNotAnImage = errors.New("not a decodable image")

// Details describes one file of the image folder
type Details struct {
	Path      string
	Name      string
	Format    string
	Size      int64
	ModTime   time.Time
	Width     int
	Height    int
	Channels  int
	Decodable bool
}

// Dimensions returns "WxH" or "-" when the file could not be decoded
func (d Details) Dimensions() string {
	if !d.Decodable {
		return "-"
	}
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Inspector decodes image files through gocv
type Inspector struct {
	logger logger.Logger
}

// NewInspector creates an inspector that reports decode problems to log
func NewInspector(log logger.Logger) *Inspector {
	return &Inspector{logger: log}
}

// Inspect stats path and, when OpenCV can decode it, reads its dimensions
func (in *Inspector) Inspect(path string) (Details, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Details{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	details := Details{
		Path:    path,
		Name:    filepath.Base(path),
		Format:  strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	mat, err := in.decode(path, gocv.IMReadUnchanged)
	if err != nil {
		if errors.Is(err, ErrNotAnImage) {
			return details, nil
		}
		return Details{}, err
	}
	defer mat.Close()

	details.Width = mat.Cols()
	details.Height = mat.Rows()
	details.Channels = mat.Channels()
	details.Decodable = true
	return details, nil
}

// Thumbnail decodes path and scales it so that its longer edge is at most maxEdge
func (in *Inspector) Thumbnail(path string, maxEdge int) (image.Image, error) {
	if maxEdge <= 0 {
		return nil, fmt.Errorf("invalid thumbnail size: %d", maxEdge)
	}

	mat, err := in.decode(path, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	w, h := FitWithin(mat.Cols(), mat.Rows(), maxEdge)
	if w != mat.Cols() || h != mat.Rows() {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(mat, &resized, image.Point{X: w, Y: h}, 0, 0, gocv.InterpolationArea)
		return toImage(resized)
	}
	return toImage(mat)
}

func (in *Inspector) decode(path string, flags gocv.IMReadFlag) (gocv.Mat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return gocv.Mat{}, fmt.Errorf("%w: %s is empty", ErrNotAnImage, path)
	}

	mat, err := gocv.IMDecode(data, flags)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	if mat.Empty() {
		mat.Close()
		in.logger.Debug("Inspector", "opencv cannot decode file", map[string]interface{}{
			"path": path,
		})
		return gocv.Mat{}, fmt.Errorf("%w: %s", ErrNotAnImage, filepath.Base(path))
	}
	return mat, nil
}

func toImage(mat gocv.Mat) (image.Image, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("failed to convert Mat to image: %w", err)
	}
	return img, nil
}

// FitWithin scales w x h down, keeping aspect ratio, so neither edge exceeds maxEdge.
// Images already small enough are returned unchanged.
func FitWithin(w, h, maxEdge int) (int, int) {
	if w <= maxEdge && h <= maxEdge {
		return w, h
	}
	if w >= h {
		nh := h * maxEdge / w
		if nh < 1 {
			nh = 1
		}
		return maxEdge, nh
	}
	nw := w * maxEdge / h
	if nw < 1 {
		nw = 1
	}
	return nw, maxEdge
}
