package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"unused-image-finder/internal/folder"
	"unused-image-finder/internal/inspect"
	"unused-image-finder/internal/logger"
	"unused-image-finder/internal/models"
	"unused-image-finder/internal/report"
)

type fakeInspector struct {
	paths []string
}

func (f *fakeInspector) Inspect(path string) (inspect.Details, error) {
	f.paths = append(f.paths, path)
	return inspect.Details{Path: path, Name: filepath.Base(path), Width: 4, Height: 2, Decodable: true}, nil
}

func (f *fakeInspector) Thumbnail(path string, maxEdge int) (image.Image, error) {
	f.paths = append(f.paths, path)
	return image.NewRGBA(image.Rect(0, 0, maxEdge, maxEdge)), nil
}

func newBook(t *testing.T, images ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Book", "Graphics")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, n := range images {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644))
	}
	return dir
}

func newService(inspector ImageInspector) *FinderService {
	return NewFinderService(models.NewSession(), folder.Options{PrefixSource: folder.PrefixParent}, inspector, logger.NewNop())
}

func TestFindUnusedBeforeFolder(t *testing.T) {
	t.Parallel()

	_, err := newService(nil).FindUnused(context.Background(), "Book/a.png @ 100")
	require.ErrorIs(t, err, ErrNoFolderSelected)
}

func TestSelectFolderAndFindUnused(t *testing.T) {
	t.Parallel()

	dir := newBook(t, "b.png", "a.png", "C.eps")
	svc := newService(nil)

	listing, err := svc.SelectFolder(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a.png", "b.png", "C.eps"}, listing.Images)
	require.Equal(t, "Book", svc.ProjectFolder())

	res, err := svc.FindUnused(context.Background(), "Book/a.png @ 120 dpi 100\r\nbook/c.EPS @ 100\n")
	require.NoError(t, err)
	require.Equal(t, []string{"b.png"}, res.Unused)
	require.Equal(t, 3, res.Total)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportResult(&buf))
	require.Equal(t, "b.png\n", buf.String())
}

func TestProjectFolderOverride(t *testing.T) {
	t.Parallel()

	dir := newBook(t, "a.png")
	svc := newService(nil)
	_, err := svc.SelectFolder(context.Background(), dir)
	require.NoError(t, err)

	svc.SetProjectFolder("Graphics")
	res, err := svc.FindUnused(context.Background(), "Graphics/a.png @ 100")
	require.NoError(t, err)
	require.True(t, res.Empty())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportResult(&buf))
	require.Equal(t, report.NoUnusedImages, buf.String())
}

func TestSelectFolderUnavailableKeepsPreviousFolder(t *testing.T) {
	t.Parallel()

	dir := newBook(t, "a.png")
	svc := newService(nil)
	_, err := svc.SelectFolder(context.Background(), dir)
	require.NoError(t, err)

	_, err = svc.SelectFolder(context.Background(), filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, folder.ErrDirectoryUnavailable)

	res, err := svc.FindUnused(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, []string{"a.png"}, res.Unused)
}

func TestSelectFolderRefreshesListing(t *testing.T) {
	t.Parallel()

	dir := newBook(t, "a.png")
	svc := newService(nil)
	_, err := svc.SelectFolder(context.Background(), dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.png"), []byte("x"), 0o644))
	listing, err := svc.SelectFolder(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a.png", "new.png"}, listing.Images)
}

func TestGenerationTracksSuccessfulSelections(t *testing.T) {
	t.Parallel()

	dir := newBook(t, "a.png")
	svc := newService(nil)
	require.Zero(t, svc.Generation())

	_, err := svc.SelectFolder(context.Background(), dir)
	require.NoError(t, err)
	first := svc.Generation()
	require.NotZero(t, first)

	_, err = svc.SelectFolder(context.Background(), filepath.Join(dir, "missing"))
	require.Error(t, err)
	require.Equal(t, first, svc.Generation())

	_, err = svc.SelectFolder(context.Background(), dir)
	require.NoError(t, err)
	require.NotEqual(t, first, svc.Generation())
}

func TestExportWithoutResult(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, newService(nil).ExportResult(&bytes.Buffer{}), ErrNoResult)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newService(nil)
	_, err := svc.SelectFolder(ctx, t.TempDir())
	require.True(t, errors.Is(err, context.Canceled))
	_, err = svc.FindUnused(ctx, "")
	require.True(t, errors.Is(err, context.Canceled))
}

func TestDetailsAndThumbnail(t *testing.T) {
	t.Parallel()

	dir := newBook(t, "a.png")
	fake := &fakeInspector{}
	svc := newService(fake)

	_, err := svc.Details("a.png")
	require.ErrorIs(t, err, ErrNoFolderSelected)

	_, err = svc.SelectFolder(context.Background(), dir)
	require.NoError(t, err)

	d, err := svc.Details("a.png")
	require.NoError(t, err)
	require.Equal(t, "4x2", d.Dimensions())

	img, err := svc.Thumbnail(context.Background(), "a.png", 16)
	require.NoError(t, err)
	require.Equal(t, 16, img.Bounds().Dx())
	require.Equal(t, []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "a.png")}, fake.paths)
}

func TestPreviewDisabled(t *testing.T) {
	t.Parallel()

	svc := newService(nil)
	_, err := svc.Details("a.png")
	require.ErrorIs(t, err, ErrPreviewDisabled)
	_, err = svc.Thumbnail(context.Background(), "a.png", 10)
	require.ErrorIs(t, err, ErrPreviewDisabled)
}
