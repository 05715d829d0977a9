package imaging

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
)

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	c, err := NewConverter(t.TempDir(), 20, logging.NewTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestConvertBatchRejectsOversizedBatch(t *testing.T) {
	c, err := NewConverter(t.TempDir(), 2, logging.NewTestLogger())
	if err != nil {
		t.Fatal(err)
	}
	inputs := []Input{
		{Name: "a.webp"}, {Name: "b.webp"}, {Name: "c.webp"},
	}
	_, err = c.ConvertBatch(context.Background(), inputs)
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestConvertBatchSkipsNonWebP(t *testing.T) {
	c := newTestConverter(t)

	_, err := c.ConvertBatch(context.Background(), []Input{
		{Name: "photo.jpg", Data: []byte("jpeg bytes")},
		{Name: "doc.pdf", Data: []byte("pdf bytes")},
	})
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("all-skipped batch should fail with INVALID_INPUT, got %v", err)
	}
}

func TestConvertBatchSkipsUndecodableFiles(t *testing.T) {
	c := newTestConverter(t)

	_, err := c.ConvertBatch(context.Background(), []Input{
		{Name: "broken.webp", Data: []byte("not actually webp data")},
	})
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidInput) {
		t.Errorf("undecodable batch should fail with INVALID_INPUT, got %v", err)
	}
}

func TestFilePathSanitization(t *testing.T) {
	c := newTestConverter(t)

	for _, name := range []string{"", "../escape.png", "a/b.png", `a\b.png`} {
		if _, err := c.FilePath(name); err == nil {
			t.Errorf("FilePath(%q) should be rejected", name)
		}
	}
}

func TestFilePathExistingFile(t *testing.T) {
	c := newTestConverter(t)
	seedPNG(t, c.outputDir, "stored.png")

	path, err := c.FilePath("stored.png")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "stored.png" {
		t.Errorf("unexpected path: %s", path)
	}

	if _, err := c.FilePath("missing.png"); !apperrors.IsCode(err, apperrors.ErrCodeStorageRead) {
		t.Errorf("missing file should report STORAGE_READ, got %v", err)
	}
}

func TestWriteArchive(t *testing.T) {
	c := newTestConverter(t)
	seedPNG(t, c.outputDir, "one.png")
	seedPNG(t, c.outputDir, "two.png")

	var buf bytes.Buffer
	if err := c.WriteArchive(&buf); err != nil {
		t.Fatal(err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("expected 2 archive entries, got %d", len(zr.File))
	}
}

func TestWriteArchiveEmpty(t *testing.T) {
	c := newTestConverter(t)

	var buf bytes.Buffer
	err := c.WriteArchive(&buf)
	if !apperrors.IsCode(err, apperrors.ErrCodeStorageRead) {
		t.Errorf("empty output dir should report STORAGE_READ, got %v", err)
	}
}

func seedPNG(t *testing.T, dir, name string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
}
