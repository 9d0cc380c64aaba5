package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/core"
	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/karate"
	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/llm"
	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/server"
	"github.com/RaHuL-SrIrAM-E/automation-tester/pkg/storage"
)

var (
	inputFile  string
	outputFile string
	offline    bool

	rootCmd = &cobra.Command{
		Use:   "automation-tester",
		Short: "Convert Postman collections into Karate test suites",
		Long: `automation-tester converts Postman collection JSON into a runnable Karate
test suite. Scenarios are authored by Gemini when GEMINI_API_KEY is set and
fall back to deterministic templates otherwise.

Run without arguments to start the HTTP service; use the convert subcommand
for a one-shot file conversion.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runServe(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	convertCmd = &cobra.Command{
		Use:   "convert",
		Short: "Convert a collection file to a suite archive without the server",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runConvert(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Postman collection JSON file (required)")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "karate-test-suite.zip", "Output archive path")
	convertCmd.Flags().BoolVar(&offline, "offline", false, "Skip the generation service and use fallback templates")
	_ = convertCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(convertCmd)
}

func initConfig() {
	viper.SetDefault("port", "5001")
	viper.SetDefault("gemini_model", llm.DefaultModel)
	viper.SetDefault("env_dir", "environments")
	viper.SetDefault("max_upload_mb", 16)
	viper.SetDefault("convert_timeout_seconds", 300)
	viper.AutomaticEnv()
}

// loadConfig captures the process configuration into an immutable snapshot.
func loadConfig() core.Config {
	return core.Config{
		Port:           viper.GetString("port"),
		GeminiAPIKey:   viper.GetString("gemini_api_key"),
		GeminiModel:    viper.GetString("gemini_model"),
		EnvDir:         viper.GetString("env_dir"),
		MaxUploadBytes: viper.GetInt("max_upload_mb") * 1024 * 1024,
		ConvertTimeout: time.Duration(viper.GetInt("convert_timeout_seconds")) * time.Second,
		Debug:          viper.GetBool("debug"),
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildConverter assembles the converter from the config snapshot. A missing
// or broken Gemini setup is never fatal; it just pins fallback mode.
func buildConverter(ctx context.Context, cfg core.Config, log *zap.Logger, skipLLM bool) *core.Converter {
	envs, err := storage.LoadEnvironments(cfg.EnvDir)
	if err != nil {
		log.Warn("failed to load environment files, using defaults", zap.Error(err))
		envs = nil
	}

	var model karate.TextModel
	if !skipLLM && cfg.LLMEnabled() {
		client, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn("failed to initialize Gemini client, running in fallback mode", zap.Error(err))
		} else {
			model = client
			log.Info("Gemini client initialized", zap.String("model", client.Model()))
		}
	} else if !skipLLM {
		log.Warn("GEMINI_API_KEY not set, running in fallback mode without LLM integration")
	}

	return core.NewConverter(cfg, model, envs, log)
}

func runServe() error {
	// Load .env file if it exists (optional, warn if malformed)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load .env file: %v\n", err)
	}

	cfg := loadConfig()
	log, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	converter := buildConverter(context.Background(), cfg, log, false)
	return server.New(cfg, converter, log).Listen()
}

func runConvert() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load .env file: %v\n", err)
	}

	cfg := loadConfig()
	log, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read collection: %w", err)
	}

	converter := buildConverter(context.Background(), cfg, log, offline)
	result, err := converter.Convert(context.Background(), raw)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputFile, result.Archive, 0644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	fmt.Printf("Wrote %s\n", outputFile)
	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
