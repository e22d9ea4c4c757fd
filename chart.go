package upsetgo

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/hupe1980/upsetgo/highlight"
	"github.com/hupe1980/upsetgo/intersect"
	"github.com/hupe1980/upsetgo/scene"
)

// Chart is a fully composed UpSet chart. It is immutable and safe for
// concurrent use.
type Chart struct {
	scene     *scene.Spec
	grouping  *intersect.Grouping
	selection highlight.Selection
	sort      *scene.Sort
	opts      options
}

// Scene returns the declarative scene description consumed by the rendering
// engine.
func (c *Chart) Scene() *scene.Spec { return c.scene }

// Grouping returns the shared aggregation result the chart was built from.
func (c *Chart) Grouping() *intersect.Grouping { return c.grouping }

// Selection returns the resolved highlight selection.
func (c *Chart) Selection() highlight.Selection { return c.selection }

// Sort returns the sort specification shared by every intersection-id axis.
func (c *Chart) Sort() *scene.Sort { return c.sort }

// JSON serializes the scene with the configured codec.
func (c *Chart) JSON() ([]byte, error) {
	return c.opts.codec.Marshal(c.scene)
}

// WriteTo writes the serialized scene to w. It implements io.WriterTo.
func (c *Chart) WriteTo(w io.Writer) (int64, error) {
	data, err := c.JSON()
	if err != nil {
		return 0, fmt.Errorf("encode scene: %w", err)
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Save writes the serialized scene to path. A path ending in ".gz" is
// gzip-compressed.
func (c *Chart) Save(path string) error {
	start := time.Now()
	n, err := c.save(path)
	c.opts.metrics.RecordSave(n, time.Since(start), err)
	c.opts.logger.LogSave(path, n, err)
	return err
}

func (c *Chart) save(path string) (int, error) {
	data, err := c.JSON()
	if err != nil {
		return 0, fmt.Errorf("encode scene: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if _, err := w.Write(data); err != nil {
		f.Close()
		return 0, err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			f.Close()
			return 0, err
		}
	}
	return len(data), f.Close()
}
