package manager

import (
	"context"
	"fmt"
	"io"

	"cdr.dev/slog/v3"
	"github.com/spf13/afero"

	"github.com/hoppxi/svgico/internal/convert"
	"github.com/hoppxi/svgico/internal/icon"
	"github.com/hoppxi/svgico/internal/raster"
)

// AppManager drives a whole conversion run: prepare the output directory,
// enumerate the inputs and convert them one at a time.
type AppManager struct {
	conv   *convert.Converter
	out    io.Writer
	logger slog.Logger
}

func New(conv *convert.Converter, out io.Writer, logger slog.Logger) *AppManager {
	return &AppManager{conv: conv, out: out, logger: logger}
}

// NewFromConfig wires the oksvg rasterizer and winres encoder for cfg.
func NewFromConfig(cfg Config, fs afero.Fs, out io.Writer, logger slog.Logger) (*AppManager, error) {
	mode, err := raster.ParseErrorMode(cfg.SVGErrors)
	if err != nil {
		return nil, err
	}

	conv := convert.New(fs, convert.Options{
		InputDir:        cfg.InputDir,
		OutputDir:       cfg.OutputDir,
		Sizes:           cfg.Sizes,
		SourceFillColor: cfg.SourceFillColor,
	}, raster.OKSVG{
		ErrorMode:   mode,
		Supersample: cfg.Supersample,
	}, icon.Winres{}, logger)

	return New(conv, out, logger), nil
}

// Run converts every SVG in the input directory with color. Files are
// processed sequentially; the first failure stops the run and files already
// written stay on disk.
func (m *AppManager) Run(ctx context.Context, color string) error {
	if err := m.conv.PrepareOutput(ctx); err != nil {
		return err
	}

	jobs, err := m.conv.Enumerate()
	if err != nil {
		return err
	}
	m.logger.Debug(ctx, "enumerated input",
		slog.F("dir", m.conv.Options().InputDir),
		slog.F("files", len(jobs)),
	)

	for _, job := range jobs {
		if err := m.convert(ctx, job, color); err != nil {
			return err
		}
	}

	fmt.Fprintln(m.out, "✅ All icons converted!")
	return nil
}

// ConvertNames converts the named input files only. Names that are not .svg
// files are skipped.
func (m *AppManager) ConvertNames(ctx context.Context, color string, names []string) error {
	if err := m.conv.PrepareOutput(ctx); err != nil {
		return err
	}
	for _, name := range names {
		if !convert.IsSVG(name) {
			continue
		}
		if err := m.convert(ctx, m.conv.Job(name), color); err != nil {
			return err
		}
	}
	return nil
}

func (m *AppManager) convert(ctx context.Context, job convert.Job, color string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "🎨 Converting %s → %s with color %s\n", job.Name, job.ICOName, color)
	return m.conv.Convert(ctx, job, color)
}

func (m *AppManager) InputDir() string {
	return m.conv.Options().InputDir
}
