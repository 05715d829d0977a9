// Package imaging converts uploaded WebP images to PNG files on disk so
// editors can drop them into publishing systems that reject WebP.
package imaging

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
)

const convertWorkers = 4

// Input is one uploaded image.
type Input struct {
	Name string
	Data []byte
}

// Converted describes one written PNG. Filename is the stored name on disk;
// DownloadName is the original name with its extension swapped to .png.
type Converted struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	DownloadName string `json:"download_name"`
}

// Converter writes converted images under a fixed output directory.
type Converter struct {
	outputDir string
	maxFiles  int
	logger    *logging.Logger
}

// NewConverter creates the output directory and returns a converter.
func NewConverter(outputDir string, maxFiles int, logger *logging.Logger) (*Converter, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "creating image output directory")
	}
	return &Converter{outputDir: outputDir, maxFiles: maxFiles, logger: logger}, nil
}

// ConvertBatch converts the uploads concurrently. Files that are not .webp
// or fail to decode are logged and skipped; the batch fails only when it is
// oversized or nothing converted.
func (c *Converter) ConvertBatch(ctx context.Context, inputs []Input) ([]Converted, error) {
	if len(inputs) > c.maxFiles {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("at most %d images per batch, got %d", c.maxFiles, len(inputs)))
	}

	results := make([]*Converted, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(convertWorkers)

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !strings.HasSuffix(strings.ToLower(input.Name), ".webp") {
				c.logger.Debug(logging.CategoryImage, "file_skipped", "not a .webp file",
					map[string]any{"file": input.Name})
				return nil
			}
			converted, err := c.convertOne(input)
			if err != nil {
				c.logger.Warn(logging.CategoryImage, "convert_failed", err.Error(),
					map[string]any{"file": input.Name})
				return nil
			}
			results[i] = &converted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	converted := make([]Converted, 0, len(inputs))
	for _, r := range results {
		if r != nil {
			converted = append(converted, *r)
		}
	}
	if len(converted) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "no images could be converted")
	}
	return converted, nil
}

func (c *Converter) convertOne(input Input) (Converted, error) {
	img, err := webp.Decode(bytes.NewReader(input.Data))
	if err != nil {
		return Converted{}, fmt.Errorf("decoding webp: %w", err)
	}

	base := strings.TrimSuffix(input.Name, filepath.Ext(input.Name))
	filename := fmt.Sprintf("%s_%s.png", uuid.NewString(), base)

	f, err := os.Create(filepath.Join(c.outputDir, filename))
	if err != nil {
		return Converted{}, fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return Converted{}, fmt.Errorf("encoding png: %w", err)
	}
	return Converted{
		Filename:     filename,
		OriginalName: input.Name,
		DownloadName: base + ".png",
	}, nil
}

// FilePath resolves a stored filename to its path under the output
// directory. Names containing path separators are rejected.
func (c *Converter) FilePath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) || strings.ContainsAny(filename, `/\`) {
		return "", apperrors.New(apperrors.ErrCodeInvalidInput, "invalid image filename")
	}
	path := filepath.Join(c.outputDir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeStorageRead, "image not found")
	}
	return path, nil
}

// WriteArchive streams every converted PNG in the output directory as a zip.
func (c *Converter) WriteArchive(w io.Writer) error {
	matches, err := filepath.Glob(filepath.Join(c.outputDir, "*.png"))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageRead, "listing converted images")
	}
	if len(matches) == 0 {
		return apperrors.New(apperrors.ErrCodeStorageRead, "no converted images to download")
	}

	zw := zip.NewWriter(w)
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeStorageRead, "reading converted image")
		}
		entry, err := zw.Create(filepath.Base(path))
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "writing zip entry")
		}
		if _, err := entry.Write(data); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "writing zip entry")
		}
	}
	return zw.Close()
}
