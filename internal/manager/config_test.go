package manager

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("input", "", "")
	flags.String("output", "", "")
	flags.IntSlice("sizes", nil, "")
	flags.String("color", "", "")
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestDecodeDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := (&ConfigManager{Flags: newFlags(t)}).Decode()
	require.NoError(t, err)

	// t.TempDir may sit behind a symlink; compare against the resolved cwd.
	wd, err := os.Getwd()
	require.NoError(t, err)

	require.Equal(t, filepath.Join(wd, "svg"), cfg.InputDir)
	require.Equal(t, filepath.Join(wd, "__generated__"), cfg.OutputDir)
	require.Equal(t, []int{16, 24, 32, 48, 64, 128, 256}, cfg.Sizes)
	require.Equal(t, "#88C0D0", cfg.SourceFillColor)
	require.Equal(t, 1, cfg.Supersample)
	require.Equal(t, "warn", cfg.SVGErrors)
	require.False(t, cfg.ValidateColor)
	require.False(t, cfg.ColorSet)
}

func TestDecodeLocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "svgico.yaml"), []byte(`
input_dir: ./icons
sizes: [32, 16]
color: "#112233"
`), 0o644))

	cfg, err := (&ConfigManager{}).Decode()
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(wd, "icons"), cfg.InputDir)
	require.Equal(t, filepath.Join(wd, "__generated__"), cfg.OutputDir)
	require.Equal(t, []int{32, 16}, cfg.Sizes)
	require.True(t, cfg.ColorSet)
	require.Equal(t, "#112233", cfg.Color)
}

func TestDecodeExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output_dir: /tmp/out\nsvg_errors: strict\n"), 0o644))

	cfg, err := (&ConfigManager{File: path}).Decode()
	require.NoError(t, err)
	require.Equal(t, "/tmp/out", cfg.OutputDir)
	require.Equal(t, "strict", cfg.SVGErrors)

	_, err = (&ConfigManager{File: filepath.Join(t.TempDir(), "missing.yaml")}).Decode()
	require.ErrorContains(t, err, "failed to read config")
}

func TestDecodeEnvAndFlags(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SVGICO_INPUT_DIR", "/env/in")
	t.Setenv("SVGICO_OUTPUT_DIR", "/env/out")
	t.Setenv("SVGICO_COLOR", "#ABCDEF")

	flags := newFlags(t, "--output", "/flag/out", "--sizes", "16,48")
	cfg, err := (&ConfigManager{Flags: flags}).Decode()
	require.NoError(t, err)

	require.Equal(t, "/env/in", cfg.InputDir)
	require.Equal(t, "/flag/out", cfg.OutputDir)
	require.Equal(t, []int{16, 48}, cfg.Sizes)
	require.True(t, cfg.ColorSet)
	require.Equal(t, "#ABCDEF", cfg.Color)
}

func TestDecodeEmptyColorFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := (&ConfigManager{Flags: newFlags(t, "--color", "")}).Decode()
	require.NoError(t, err)
	require.True(t, cfg.ColorSet)
	require.Empty(t, cfg.Color)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		InputDir:        "svg",
		OutputDir:       "out",
		Sizes:           []int{16, 256},
		SourceFillColor: "#88C0D0",
		Supersample:     1,
		SVGErrors:       "warn",
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"no sizes", func(c *Config) { c.Sizes = nil }, "sizes is empty"},
		{"zero size", func(c *Config) { c.Sizes = []int{0} }, "size 0 out of range"},
		{"too large", func(c *Config) { c.Sizes = []int{512} }, "size 512 out of range"},
		{"duplicate", func(c *Config) { c.Sizes = []int{16, 16} }, "size 16 listed twice"},
		{"supersample", func(c *Config) { c.Supersample = 0 }, "supersample must be at least 1"},
		{"error mode", func(c *Config) { c.SVGErrors = "loud" }, "unknown svg error mode"},
		{"no input", func(c *Config) { c.InputDir = "" }, "input_dir is empty"},
		{"no output", func(c *Config) { c.OutputDir = "" }, "output_dir is empty"},
		{"no source", func(c *Config) { c.SourceFillColor = "" }, "source_fill_color is empty"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			cfg.Sizes = append([]int(nil), valid.Sizes...)
			c.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorContains(t, err, "invalid config")
			require.ErrorContains(t, err, c.errMsg)
		})
	}
}
