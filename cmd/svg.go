package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"prompt_engineer_server/internal/vectortext"
)

var svgOutFile string

var svgCmd = &cobra.Command{
	Use:   "svg [text]",
	Short: "Render text as an SVG path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog := bootstrap()
		defer closeLog()

		font := loadFont(cmd.Context(), cfg)
		if font == nil {
			return errors.New("no font available; set FONT_PATH or FONT_URL")
		}
		svg, err := vectortext.GenerateSVG(args[0], font)
		if err != nil {
			return err
		}

		if svgOutFile == "" {
			fmt.Fprintln(cmd.OutOrStdout(), svg)
			return nil
		}
		if err := os.WriteFile(svgOutFile, []byte(svg), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", svgOutFile, err)
		}
		log.Printf("Wrote %s", svgOutFile)
		return nil
	},
}

func init() {
	svgCmd.Flags().StringVarP(&svgOutFile, "output", "o", "", "output file (default stdout)")
}
