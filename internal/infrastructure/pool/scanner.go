package pool

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/annai/backend/internal/domain"
)

// Scanner lists the image files of the template pool directory
type Scanner struct {
	measurer domain.DimensionMeasurer
	logger   *zap.Logger
}

// NewScanner creates a scanner that measures files with measurer
func NewScanner(measurer domain.DimensionMeasurer, logger *zap.Logger) *Scanner {
	if measurer == nil {
		measurer = ImageMeasurer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		measurer: measurer,
		logger:   logger.Named("pool"),
	}
}

// Scan returns the regular, non-hidden files directly inside dir in filename
// order. Files whose dimensions cannot be read are kept with a zero size.
func (s *Scanner) Scan(dir string) ([]domain.PoolFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrPoolLoad, dir, err)
	}

	files := make([]domain.PoolFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		file := domain.PoolFile{Name: name}
		file.Width, file.Height, err = s.measurer.Dimensions(path)
		if err != nil {
			s.logger.Warn("could not read image dimensions",
				zap.String("file", name),
				zap.Error(err))
		}
		files = append(files, file)
	}

	s.logger.Info("template pool scanned",
		zap.String("dir", dir),
		zap.Int("files", len(files)))

	return files, nil
}

// ImageMeasurer reads dimensions from image headers (png, jpeg, gif)
type ImageMeasurer struct{}

// Dimensions decodes only the image header of the file at path
func (ImageMeasurer) Dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return cfg.Width, cfg.Height, nil
}
