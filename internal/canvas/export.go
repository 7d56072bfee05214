package canvas

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// Exporter writes surfaces to timestamped PNG files.
type Exporter struct {
	Dir      string
	Prefix   string
	CopyPath bool

	log       *zap.Logger
	now       func() time.Time
	copyToClp func(string) error
}

func NewExporter(dir, prefix string, copyPath bool, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{
		Dir:       dir,
		Prefix:    prefix,
		CopyPath:  copyPath,
		log:       log.Named("export"),
		now:       time.Now,
		copyToClp: clipboard.WriteAll,
	}
}

// Export saves s as PNG and returns the written path. A failed clipboard
// copy is logged and does not fail the export.
func (e *Exporter) Export(s Surface) (string, error) {
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("%s-%s.png", e.Prefix, e.now().Format("20060102-150405.000"))
	path := filepath.Join(e.Dir, name)

	dc := gg.NewContextForRGBA(s.Image())
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	e.log.Info("sketch exported", zap.String("path", path))

	if e.CopyPath {
		if err := e.copyToClp(path); err != nil {
			e.log.Warn("failed to copy export path to clipboard", zap.Error(err))
		}
	}

	return path, nil
}
