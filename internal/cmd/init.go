package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/hoppxi/svgico/config"
	"github.com/hoppxi/svgico/internal/convert"
	"github.com/hoppxi/svgico/internal/manager"
	"github.com/hoppxi/svgico/internal/prompt"
	"github.com/hoppxi/svgico/internal/recolor"
)

func newInitConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Interactively write a svgico.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if _, err := os.Stat(path); err == nil {
				if !prompt.Confirm(reader, out, fmt.Sprintf("%s already exists. Overwrite with new settings?", path)) {
					return nil
				}
			}

			conf, err := askConfig(reader, out)
			if err != nil {
				return err
			}
			if err := conf.Validate(); err != nil {
				return err
			}

			d, err := yaml.Marshal(&conf)
			if err != nil {
				return xerrors.Errorf("marshal config: %w", err)
			}
			if err := os.WriteFile(path, d, 0o644); err != nil {
				return xerrors.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(out, "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", config.FileName, "where to write the config")
	return cmd
}

func askConfig(reader *bufio.Reader, out io.Writer) (manager.Config, error) {
	conf := manager.Config{
		Sizes:     convert.DefaultSizes,
		SVGErrors: "warn",
	}
	conf.InputDir = prompt.Field(reader, out, "SVG input directory", "./svg")
	conf.OutputDir = prompt.Field(reader, out, "ICO output directory", "./__generated__")
	conf.SourceFillColor = prompt.Field(reader, out, "Placeholder fill color in the SVGs", recolor.DefaultSource)

	supersample := prompt.Field(reader, out, "Supersampling factor", "1")
	n, err := strconv.Atoi(supersample)
	if err != nil {
		return manager.Config{}, xerrors.Errorf("supersampling factor %q: %w", supersample, err)
	}
	conf.Supersample = n

	return conf, nil
}
