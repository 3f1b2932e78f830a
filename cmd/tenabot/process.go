package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nazrawi/tenabot/internal/artifacts"
	"github.com/nazrawi/tenabot/internal/extraction"
	"github.com/nazrawi/tenabot/internal/ingestion"
	"github.com/nazrawi/tenabot/internal/llm"
	"github.com/nazrawi/tenabot/internal/observability"
	"github.com/nazrawi/tenabot/internal/rendering"
	"github.com/nazrawi/tenabot/internal/validation"
)

var (
	processConfigPath string
	processJobDesc    string
	processOutDir     string
	processVerbose    bool
	processWorkers    int
)

var processCmd = &cobra.Command{
	Use:   "process [files...]",
	Short: "Process resume files locally",
	Long: `Run the extraction and rendering stages on local resume files without the HTTP server or Telegram delivery.

Each file goes through text extraction, the validation gate, structured profile extraction, and document rendering. Generated PDFs land in the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVar(&processConfigPath, "config", "", "Path to config.json file")
	processCmd.Flags().StringVarP(&processJobDesc, "job", "j", "", "Target job description used to bias extraction")
	processCmd.Flags().StringVarP(&processOutDir, "out", "o", "out", "Output directory for generated documents")
	processCmd.Flags().BoolVarP(&processVerbose, "verbose", "v", false, "Print detailed progress information")
	processCmd.Flags().IntVar(&processWorkers, "workers", 2, "Number of files to process concurrently")
	rootCmd.AddCommand(processCmd)
}

func runProcess(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(processConfigPath)
	if err != nil {
		return err
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	// absolute paths bypass the media root
	texts := ingestion.NewExtractor("")
	gate := validation.NewGate(cfg.MinTextLength, cfg.Keywords)
	profiles := extraction.NewOrchestrator(client)
	renderer := rendering.NewRenderer()
	pdfBackend := rendering.NewChromePDFBackend()
	store := artifacts.NewStore(processOutDir)
	printer := observability.NewPrinter(os.Stdout)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(processWorkers)

	for _, path := range args {
		g.Go(func() error {
			return processFile(ctx, path, processFileDeps{
				texts:    texts,
				gate:     gate,
				profiles: profiles,
				renderer: renderer,
				pdf:      pdfBackend,
				store:    store,
				printer:  printer,
			})
		})
	}

	return g.Wait()
}

type processFileDeps struct {
	texts    *ingestion.Extractor
	gate     *validation.Gate
	profiles *extraction.Orchestrator
	renderer *rendering.Renderer
	pdf      *rendering.ChromePDFBackend
	store    *artifacts.Store
	printer  *observability.Printer
}

func processFile(ctx context.Context, path string, deps processFileDeps) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fmt.Printf("Processing %s...\n", path)
	text, err := deps.texts.ExtractText(abs)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	result := deps.gate.Check(text)
	if processVerbose {
		deps.printer.PrintValidation(result)
	}
	if !result.OK {
		return fmt.Errorf("%s: %s", path, result.Reason)
	}

	record, err := deps.profiles.Extract(ctx, text, processJobDesc)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if processVerbose {
		deps.printer.PrintProfile(record)
	}

	doc, err := deps.renderer.Render(*record)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	pdf, err := deps.pdf.RenderPDF(ctx, doc.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Base(path)
	name := base[:len(base)-len(filepath.Ext(base))]
	outPath, err := deps.store.SavePDF(name, pdf)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("Done: %s -> %s\n", path, outPath)
	return nil
}
