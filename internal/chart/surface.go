package chart

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Surface presents a finished figure. Show may block until the viewer is done.
type Surface interface {
	Show(ctx context.Context, fig *Figure) error
}

// WriterSurface writes the figure as PNG to W.
type WriterSurface struct {
	W io.Writer
}

func (s WriterSurface) Show(_ context.Context, fig *Figure) error {
	_, err := fig.WriteTo(s.W)
	return err
}

// FileSurface writes each figure to Dir/<figure name>.png.
type FileSurface struct {
	Dir string

	// Written holds the paths produced so far.
	Written []string
}

func (s *FileSurface) Show(_ context.Context, fig *Figure) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.Dir, fig.Name+".png")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := fig.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	s.Written = append(s.Written, path)
	return nil
}
