package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"prompt_engineer_server/config"
	"prompt_engineer_server/internal/ai"
	"prompt_engineer_server/internal/enhancer"
	"prompt_engineer_server/internal/logging"
	"prompt_engineer_server/internal/vectortext"
)

// fontLoadTimeout bounds the start-up font download.
const fontLoadTimeout = 30 * time.Second

var configPath string

// rootCmd runs the API server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "prompt-engineer",
	Short: "Persian prompt enhancer for video generation models",
	Long: `Turns Persian video-generation prompts into structured English prompts
using Gemini. Text meant to appear on signs or labels is detected and rendered
as an SVG overlay so the video model does not have to draw Persian script.

Available commands:
  serve    - Run the HTTP API (default)
  enhance  - Enhance one prompt and write the artifacts to a directory
  svg      - Render text as an SVG path`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory holding config.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(enhanceCmd)
	rootCmd.AddCommand(svgCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads .env and the configuration and sets up logging. The
// returned func releases the log file.
func bootstrap() (config.Config, func()) {
	// --- Load .env file ---
	// Must happen before viper reads the environment.
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	closer := logging.Setup(cfg.LogFile)
	return cfg, func() {
		if err := closer.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}

// loadFont returns nil when the font cannot be loaded; SVG generation is then
// turned off instead of failing start-up.
func loadFont(ctx context.Context, cfg config.Config) *vectortext.Font {
	ctx, cancel := context.WithTimeout(ctx, fontLoadTimeout)
	defer cancel()

	font, err := vectortext.LoadFont(ctx, cfg.FontPath, cfg.FontURL)
	if err != nil {
		log.Printf("WARN: Failed to load font, SVG generation disabled: %v", err)
		return nil
	}
	log.Printf("Font loaded: %s", font.Name)
	return font
}

func newService(ctx context.Context, cfg config.Config) *enhancer.Service {
	aiGenerator := ai.NewGenerator(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)
	return enhancer.NewService(aiGenerator, loadFont(ctx, cfg))
}
