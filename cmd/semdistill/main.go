// Package main provides the semdistill binary entry point.
// Semdistill extracts RDF triples from RDFa-annotated markup documents
// and feeds them to the semstreams knowledge graph.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/spf13/cobra"

	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/distill"
	"github.com/c360studio/semdistill/graph"
	"github.com/c360studio/semdistill/host"
	rdfaingester "github.com/c360studio/semdistill/processor/rdfa-ingester"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semdistill"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semdistill",
		Short: "RDFa distiller",
		Long: `Semdistill extracts the RDF triples expressed by RDFa attributes in
HTML, XHTML, SVG, Atom, and generic XML documents.

It provides:
- A distill command turning documents into N-Triples on stdout
- Publishing of distilled documents as graph entities over NATS
- A serve mode consuming markup from the source ingestion stream

Serve mode communicates via NATS using the semstreams framework.`,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	cmd.AddCommand(newDistillCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

// newLogger configures slog at the requested level and installs it as
// the default. Logs go to stderr so distilled triples own stdout.
func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig loads an explicit config file when given, otherwise the
// layered user and project configuration.
func loadConfig(configPath string, logger *slog.Logger) (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.NewLoader(logger).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newDistillCommand() *cobra.Command {
	var (
		base           string
		rdfaVersion    string
		hostLanguage   string
		processorGraph bool
		lite           bool
		metaName       bool
		natsURL        string
	)

	cmd := &cobra.Command{
		Use:   "distill [patterns...]",
		Short: "Distill RDF triples from RDFa-annotated documents",
		Long: `Distill extracts the RDF triples expressed by the RDFa attributes of
one or more documents. Patterns support doublestar globs, so
"docs/**/*.html" processes a whole tree.

Triples are written to stdout in N-Triples form. When a NATS URL is
configured each document is published to the graph ingestion stream
instead of printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logger := newLogger(logLevel)

			cfg, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}

			// Flags override file configuration.
			cfg.Merge(&config.Config{
				Distill: config.DistillConfig{
					ForcedVersion:  rdfaVersion,
					HostLanguage:   hostLanguage,
					ProcessorGraph: processorGraph,
					Lite:           lite,
					MetaName:       metaName,
				},
				NATS: config.NATSConfig{URL: natsURL},
			})
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			files, err := resolveDocuments(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no documents match %s", strings.Join(args, " "))
			}

			return distillFiles(cmd.Context(), cfg, logger, files, base, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Base URI overriding the document location")
	cmd.Flags().StringVar(&rdfaVersion, "rdfa-version", "", "Force the RDFa version (1.0 or 1.1) for every document")
	cmd.Flags().StringVar(&hostLanguage, "host-language", "", "Force the host language (html5, xhtml, xhtml5, svg, atom, xml)")
	cmd.Flags().BoolVar(&processorGraph, "processor-graph", false, "Include processor warnings and errors in the output")
	cmd.Flags().BoolVar(&lite, "lite", false, "Warn about markup outside the RDFa Lite subset")
	cmd.Flags().BoolVar(&metaName, "meta-name", false, "Treat <meta name> as <meta property>")
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL; publish entities instead of printing")

	return cmd
}

// distillFiles processes each resolved document, printing or publishing
// its graph. Failures are logged per document so one bad file does not
// stop the batch.
func distillFiles(ctx context.Context, cfg *config.Config, logger *slog.Logger, files []string, base string, out io.Writer) error {
	distiller := distill.New(cfg, logger)

	var nc *natsclient.Client
	if cfg.NATS.URL != "" {
		client, err := connectToNATS(ctx, cfg.NATS.URL, logger)
		if err != nil {
			return err
		}
		defer client.Close(ctx)
		nc = client
	}

	var failed int
	for _, path := range files {
		if err := distillFile(ctx, distiller, nc, path, base, out); err != nil {
			logger.Error("Distillation failed", "path", path, "error", err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(files))
	}
	return nil
}

func distillFile(ctx context.Context, distiller *distill.Distiller, nc *natsclient.Client, path, base string, out io.Writer) error {
	var (
		res *distill.Result
		err error
	)
	if base == "" {
		res, err = distiller.FromFile(path)
	} else {
		f, openErr := os.Open(path)
		if openErr != nil {
			return fmt.Errorf("opening %s: %w", path, openErr)
		}
		defer f.Close()
		res, err = distiller.FromReader(f, base, host.LanguageFromMediaType(host.MediaTypeFromPath(path)))
	}
	if err != nil {
		return err
	}

	if nc != nil {
		// Processor diagnostics stay local; only content triples become
		// graph entities.
		return graph.PublishDocument(ctx, nc, res.Base, res.Graph)
	}

	g := res.Graph
	if res.Processor != nil {
		g.Merge(res.Processor)
	}
	_, err = io.WriteString(out, g.String())
	return err
}

// resolveDocuments expands glob patterns to a deduplicated list of
// document files.
func resolveDocuments(patterns []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := resolvePattern(pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}

		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				resolved = append(resolved, p)
			}
		}
	}

	return resolved, nil
}

// resolvePattern expands a single glob pattern to document files.
func resolvePattern(pattern string) ([]string, error) {
	// Check if the pattern contains glob characters
	if !containsGlob(pattern) {
		absPath, err := filepath.Abs(pattern)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}

		if info.IsDir() {
			return nil, fmt.Errorf("path is a directory, use a glob such as %s: %s",
				filepath.Join(pattern, "**", "*.html"), absPath)
		}

		return []string{absPath}, nil
	}

	// Use doublestar for ** support
	absPattern, err := makeAbsolutePattern(pattern)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.FilepathGlob(absPattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", absPattern, err)
	}

	var files []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, match)
	}

	sort.Strings(files)
	return files, nil
}

// containsGlob reports whether the pattern has glob metacharacters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// makeAbsolutePattern converts a relative pattern to absolute.
// Preserves glob characters in the pattern.
func makeAbsolutePattern(pattern string) (string, error) {
	if filepath.IsAbs(pattern) {
		return pattern, nil
	}

	globIdx := strings.IndexAny(pattern, "*?[")
	if globIdx == -1 {
		return filepath.Abs(pattern)
	}

	// Split at the last separator before the first glob character so
	// the literal part resolves and the glob part survives untouched.
	lastSep := strings.LastIndexAny(pattern[:globIdx], `/\`)
	if lastSep < 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, pattern), nil
	}

	absDir, err := filepath.Abs(pattern[:lastSep])
	if err != nil {
		return "", err
	}
	return absDir + pattern[lastSep:], nil
}

func newServeCommand() *cobra.Command {
	var (
		natsURL    string
		sourcesDir string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the rdfa-ingester component",
		Long: `Serve consumes markup documents from the source ingestion stream,
distills them, and publishes the resulting entities to the graph
ingestion stream. With --watch it also distills documents dropped into
the sources directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logger := newLogger(logLevel)

			cfg, err := loadConfig(configPath, logger)
			if err != nil {
				return err
			}
			if natsURL != "" {
				cfg.NATS.URL = natsURL
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return serve(cfg, logger, sourcesDir, watch)
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL")
	cmd.Flags().StringVar(&sourcesDir, "sources-dir", "", "Directory watched for markup documents")
	cmd.Flags().BoolVar(&watch, "watch", false, "Watch the sources directory for changes")

	return cmd
}

func serve(cfg *config.Config, logger *slog.Logger, sourcesDir string, watch bool) error {
	ctx := context.Background()

	client, err := connectToNATS(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return err
	}
	defer client.Close(ctx)

	compCfg := rdfaingester.DefaultConfig()
	compCfg.DefaultVersion = cfg.Distill.DefaultVersion
	compCfg.HostLanguage = cfg.Distill.HostLanguage
	compCfg.MetaName = cfg.Distill.MetaName
	if sourcesDir != "" {
		compCfg.SourcesDir = sourcesDir
	}
	compCfg.WatchConfig.Enabled = watch

	rawCfg, err := json.Marshal(compCfg)
	if err != nil {
		return fmt.Errorf("marshal component config: %w", err)
	}

	comp, err := rdfaingester.NewComponent(rawCfg, component.Dependencies{
		NATSClient: client,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("create rdfa-ingester: %w", err)
	}

	runner, ok := comp.(interface {
		Start(context.Context) error
		Stop(time.Duration) error
	})
	if !ok {
		return fmt.Errorf("rdfa-ingester does not implement the component lifecycle")
	}

	// Setup signal handling
	signalCtx, signalCancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	if err := runner.Start(signalCtx); err != nil {
		return fmt.Errorf("start rdfa-ingester: %w", err)
	}

	slog.Info("Semdistill ready", "version", Version)

	// Block until shutdown signal
	<-signalCtx.Done()
	slog.Info("Received shutdown signal")

	if err := runner.Stop(10 * time.Second); err != nil {
		slog.Error("Error stopping rdfa-ingester", "error", err)
	}

	slog.Info("Semdistill shutdown complete")
	return nil
}

func connectToNATS(ctx context.Context, configuredURL string, logger *slog.Logger) (*natsclient.Client, error) {
	natsURL := "nats://localhost:4222"

	// Environment variable override takes precedence
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		natsURL = envURL
	} else if envURL := os.Getenv("SEMDISTILL_NATS_URL"); envURL != "" {
		natsURL = envURL
	} else if configuredURL != "" {
		natsURL = configuredURL
	}

	logger.Info("Connecting to NATS", "url", natsURL)

	client, err := natsclient.NewClient(natsURL,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, natsURL)
	}

	logger.Info("Connected to NATS", "url", natsURL)
	return client, nil
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS:
  docker compose up -d nats

Or set NATS_URL environment variable to point to your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}
