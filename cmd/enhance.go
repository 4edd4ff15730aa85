package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"prompt_engineer_server/internal/artifacts"
)

var (
	enhanceOutDir string
	enhanceAPIKey string
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [prompt]",
	Short: "Enhance one prompt and write the artifacts to a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, closeLog := bootstrap()
		defer closeLog()

		service := newService(cmd.Context(), cfg)
		res, err := service.Enhance(cmd.Context(), args[0], enhanceAPIKey)
		for _, step := range res.Steps {
			fmt.Fprintln(cmd.ErrOrStderr(), "-", step)
		}
		if err != nil {
			return fmt.Errorf("enhancement failed: %w", err)
		}

		bundle, err := artifacts.Build(res.Response)
		if err != nil {
			return err
		}
		outDir := enhanceOutDir
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		paths, err := artifacts.WriteDir(outDir, bundle)
		if err != nil {
			return err
		}
		for _, p := range paths {
			log.Printf("Wrote %s", p)
		}

		txt, _ := bundle.Get(artifacts.TextFile)
		fmt.Fprintln(cmd.OutOrStdout(), txt.Content)
		return nil
	},
}

func init() {
	enhanceCmd.Flags().StringVarP(&enhanceOutDir, "output", "o", "", "directory for the artifacts (default OUTPUT_DIR)")
	enhanceCmd.Flags().StringVar(&enhanceAPIKey, "api-key", "", "Gemini API key, overrides GEMINI_API_KEY")
}
