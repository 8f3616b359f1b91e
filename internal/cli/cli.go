package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"gettext-extractor/internal/catalog"
	"gettext-extractor/internal/comments"
	"gettext-extractor/internal/config"
	"gettext-extractor/internal/extractor"
	"gettext-extractor/internal/filewalker"
	"gettext-extractor/internal/jsparse"
	"gettext-extractor/internal/store"
	"gettext-extractor/internal/worker"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:   "gettext-extractor",
		Short: "Extract translatable messages from JavaScript sources",
		Long:  "Extracts gettext messages from call expressions in JavaScript/TypeScript sources into a POT template, with optional PostgreSQL catalog persistence.",
	}

	rootCmd.AddCommand(extractCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// extractOptions carries the extract command's flag values.
type extractOptions struct {
	keywords       []string
	output         string
	trimWhiteSpace bool
	stripIndent    bool
	newline        string
	newlineSet     bool

	structuredComments bool
	commentKey         string
	commentProps       []string
	strictComments     bool
	fallback           bool

	useStore   bool
	exportFmt  string
	exportPath string
}

func extractCmd() *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <directory>",
		Short: "Parse sources and write a POT message template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.newlineSet = cmd.Flags().Changed("newline")
			return runExtract(args[0], opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.keywords, "keyword", []string{"getText:0,1,2,3"},
		"callee spec name:TEXT[,PLURAL[,CONTEXT[,COMMENTS]]] (repeatable)")
	cmd.Flags().StringVar(&opts.output, "output", "messages.pot", "POT output path")
	cmd.Flags().BoolVar(&opts.trimWhiteSpace, "trim", false, "trim whitespace around extracted text")
	cmd.Flags().BoolVar(&opts.stripIndent, "no-indent", false, "strip per-line indentation from extracted text")
	cmd.Flags().StringVar(&opts.newline, "newline", "", "replace newlines in extracted text with this string")

	cmd.Flags().BoolVar(&opts.structuredComments, "structured-comments", false, "comments argument is an object literal")
	cmd.Flags().StringVar(&opts.commentKey, "comment-key", comments.DefaultCommentKey, "object property holding plain comment lines")
	cmd.Flags().StringArrayVar(&opts.commentProps, "comment-prop", nil, "bracketed comment group name=open,close (repeatable)")
	cmd.Flags().BoolVar(&opts.strictComments, "strict-comments", false, "fail a call site on malformed comment properties")
	cmd.Flags().BoolVar(&opts.fallback, "fallback", false, "shift roles past omitted optional arguments")

	cmd.Flags().BoolVar(&opts.useStore, "store", false, "persist the catalog to PostgreSQL (needs DATABASE_URL)")
	cmd.Flags().StringVar(&opts.exportFmt, "export", "", "export the stored catalog: tsv or json")
	cmd.Flags().StringVar(&opts.exportPath, "export-path", "extracted_messages", "export path (without extension)")

	return cmd
}

// buildParser compiles the keyword specs and comment/content flags into a
// source parser. All configuration errors surface here, before any file is
// read.
func buildParser(opts *extractOptions) (*jsparse.Parser, error) {
	keywords, err := ParseKeywords(opts.keywords)
	if err != nil {
		return nil, err
	}

	content := extractor.DefaultContentOptions()
	content.TrimWhiteSpace = opts.trimWhiteSpace
	content.PreserveIndentation = !opts.stripIndent
	if opts.newlineSet {
		content.ReplaceNewLines = &opts.newline
	}

	commentOpts, err := buildCommentOptions(opts)
	if err != nil {
		return nil, err
	}

	callExtractors := make([]*jsparse.CallExtractor, 0, len(keywords))
	for _, kw := range keywords {
		ex, err := extractor.New(kw.Mapping, content, commentOpts)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", kw.Name, err)
		}
		callExtractors = append(callExtractors, jsparse.NewCallExtractor(ex, kw.Name))
	}

	return jsparse.NewParser(callExtractors...), nil
}

// buildCommentOptions returns nil when the comments argument is a plain
// string; any structured-comment flag switches to object matching.
func buildCommentOptions(opts *extractOptions) (*comments.Options, error) {
	structured := opts.structuredComments ||
		opts.strictComments ||
		opts.fallback ||
		len(opts.commentProps) > 0 ||
		opts.commentKey != comments.DefaultCommentKey
	if !structured {
		return nil, nil
	}

	propGroups := make(map[string][]string, len(opts.commentProps))
	for _, spec := range opts.commentProps {
		name, pair, err := ParsePropGroup(spec)
		if err != nil {
			return nil, err
		}
		propGroups[name] = pair
	}

	return &comments.Options{
		CommentKey:       opts.commentKey,
		PropGroups:       propGroups,
		ThrowOnMalformed: opts.strictComments,
		Fallback:         opts.fallback,
	}, nil
}

// runExtract handles the `extract` command.
func runExtract(inputDir string, opts *extractOptions) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	parser, err := buildParser(opts)
	if err != nil {
		return err
	}

	files, err := filewalker.Walk(inputDir)
	if err != nil {
		return fmt.Errorf("walk input directory: %w", err)
	}

	inputAbs, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input directory: %w", err)
	}

	log.Info().Int("files", len(files)).Strs("keywords", opts.keywords).Msg("Starting extraction")

	parsePool := worker.NewPool[string, []jsparse.Extracted](cfg.WorkerCount,
		func(ctx context.Context, path string) ([]jsparse.Extracted, error) {
			return parser.ParseFile(ctx, path)
		},
	)
	results := parsePool.Execute(ctx, files)
	if err := ctx.Err(); err != nil {
		return err
	}

	cat := catalog.New()
	callSites := 0
	for _, r := range results {
		// A per-call-site comment error still delivers the file's
		// remaining messages; the pool already logged it.
		for _, e := range r.Result {
			ref := e.Reference()
			if rel, err := filepath.Rel(inputAbs, e.File); err == nil {
				ref = fmt.Sprintf("%s:%d", filepath.ToSlash(rel), e.Line)
			}
			cat.Add(e.Message, ref)
			callSites++
		}
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()
	if err := cat.WritePOT(out); err != nil {
		return fmt.Errorf("write POT: %w", err)
	}

	log.Info().
		Int("files", len(files)).
		Int("call_sites", callSites).
		Int("messages", cat.Len()).
		Str("output", opts.output).
		Msg("Extraction complete")

	if !opts.useStore {
		return nil
	}
	return persistCatalog(ctx, cfg, cat, opts)
}

// persistCatalog stores the catalog in PostgreSQL and runs the optional
// export.
func persistCatalog(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, opts *extractOptions) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("--store requires DATABASE_URL")
	}

	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect PostgreSQL: %w", err)
	}
	defer pgPool.Close()

	if err := pgPool.Ping(ctx); err != nil {
		return fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")

	messageStore := store.New(pgPool)
	if err := messageStore.EnsureSchema(ctx); err != nil {
		return err
	}

	stored, err := messageStore.Upsert(ctx, cat.Messages())
	if err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}
	log.Info().Int("stored", stored).Msg("Catalog persisted")

	switch opts.exportFmt {
	case "":
	case "json":
		if err := messageStore.ExportJSON(ctx, opts.exportPath+".json"); err != nil {
			return fmt.Errorf("export JSON: %w", err)
		}
	case "tsv":
		if err := messageStore.ExportTSV(ctx, opts.exportPath+".tsv"); err != nil {
			return fmt.Errorf("export TSV: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format %q", opts.exportFmt)
	}

	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
