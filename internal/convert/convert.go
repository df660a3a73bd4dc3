// Package convert turns a directory of SVG icons into ICO files.
package convert

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"

	"cdr.dev/slog/v3"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"github.com/hoppxi/svgico/internal/icon"
	"github.com/hoppxi/svgico/internal/raster"
	"github.com/hoppxi/svgico/internal/recolor"
	"github.com/hoppxi/svgico/internal/utils"
)

const (
	SVGExt = ".svg"
	ICOExt = ".ico"
)

// DefaultSizes are the square edges embedded in every ICO.
var DefaultSizes = []int{16, 24, 32, 48, 64, 128, 256}

type Options struct {
	InputDir        string
	OutputDir       string
	Sizes           []int
	SourceFillColor string
}

// Job is one SVG file and the ICO it becomes.
type Job struct {
	Name    string
	SVGPath string
	ICOName string
	ICOPath string
}

type Converter struct {
	fs         afero.Fs
	opts       Options
	replacer   *recolor.Replacer
	rasterizer raster.Rasterizer
	encoder    icon.Encoder
	logger     slog.Logger
}

func New(fs afero.Fs, opts Options, r raster.Rasterizer, e icon.Encoder, logger slog.Logger) *Converter {
	if len(opts.Sizes) == 0 {
		opts.Sizes = DefaultSizes
	}
	if opts.SourceFillColor == "" {
		opts.SourceFillColor = recolor.DefaultSource
	}
	return &Converter{
		fs:         fs,
		opts:       opts,
		replacer:   recolor.New(opts.SourceFillColor),
		rasterizer: r,
		encoder:    e,
		logger:     logger,
	}
}

func (c *Converter) Options() Options {
	return c.opts
}

// PrepareOutput creates the output directory if it does not exist yet. The
// parent must already exist. Losing a creation race is not an error.
func (c *Converter) PrepareOutput(ctx context.Context) error {
	dir := c.opts.OutputDir
	if ok, err := afero.DirExists(c.fs, dir); err != nil {
		return newError(KindOutput, dir, xerrors.Errorf("stat output directory: %w", err))
	} else if ok {
		return nil
	}

	if err := c.fs.Mkdir(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return newError(KindOutput, dir, xerrors.Errorf("create output directory: %w", err))
	}
	c.logger.Debug(ctx, "created output directory", slog.F("dir", dir))
	return nil
}

// Enumerate lists the .svg files directly inside the input directory.
func (c *Converter) Enumerate() ([]Job, error) {
	entries, err := afero.ReadDir(c.fs, c.opts.InputDir)
	if err != nil {
		return nil, newError(KindInput, c.opts.InputDir, xerrors.Errorf("read input directory: %w", err))
	}

	var jobs []Job
	for _, entry := range entries {
		if entry.IsDir() || !IsSVG(entry.Name()) {
			continue
		}
		jobs = append(jobs, c.Job(entry.Name()))
	}
	return jobs, nil
}

// Job describes the conversion of the input file called name.
func (c *Converter) Job(name string) Job {
	ico := utils.SwapExt(name, SVGExt, ICOExt)
	return Job{
		Name:    name,
		SVGPath: filepath.Join(c.opts.InputDir, name),
		ICOName: ico,
		ICOPath: filepath.Join(c.opts.OutputDir, ico),
	}
}

func IsSVG(name string) bool {
	return strings.HasSuffix(name, SVGExt)
}

// Convert reads, recolors, rasterizes and encodes one file, then writes the
// ICO over whatever is at job.ICOPath.
func (c *Converter) Convert(ctx context.Context, job Job, color string) error {
	data, err := afero.ReadFile(c.fs, job.SVGPath)
	if err != nil {
		return newError(KindInput, job.SVGPath, xerrors.Errorf("read svg: %w", err))
	}

	svg := c.replacer.Replace(string(data), color)
	c.logger.Debug(ctx, "recolored svg",
		slog.F("file", job.Name),
		slog.F("replaced", c.replacer.Count(string(data))),
	)

	images, err := c.Render(ctx, []byte(svg))
	if err != nil {
		return newError(KindRender, job.SVGPath, err)
	}

	var buf bytes.Buffer
	if err := c.encoder.Encode(&buf, images); err != nil {
		return newError(KindEncode, job.SVGPath, xerrors.Errorf("encode ico: %w", err))
	}

	if err := c.write(job.ICOPath, buf.Bytes()); err != nil {
		return newError(KindOutput, job.ICOPath, err)
	}
	c.logger.Debug(ctx, "wrote ico", slog.F("path", job.ICOPath), slog.F("bytes", buf.Len()))
	return nil
}

// Render rasterizes svg at every configured size concurrently. The result
// follows the order of Options.Sizes; any failed size fails the whole set.
func (c *Converter) Render(ctx context.Context, svg []byte) ([]image.Image, error) {
	images := make([]image.Image, len(c.opts.Sizes))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, size := range c.opts.Sizes {
		eg.Go(func() error {
			img, err := c.rasterizer.Rasterize(egCtx, svg, size)
			if err != nil {
				return xerrors.Errorf("rasterize %dpx: %w", size, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// write stages data in a sibling temp file and renames it into place.
func (c *Converter) write(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := afero.WriteFile(c.fs, tmp, data, 0o644); err != nil {
		_ = c.fs.Remove(tmp)
		return xerrors.Errorf("write ico: %w", err)
	}
	if err := c.fs.Rename(tmp, path); err != nil {
		_ = c.fs.Remove(tmp)
		return xerrors.Errorf("move ico into place: %w", err)
	}
	return nil
}
