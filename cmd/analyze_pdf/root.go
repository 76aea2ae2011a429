package main

import (
	"github.com/spf13/cobra"

	"github.com/pyhub-apps/pdfinspect/internal/logger"
	"github.com/pyhub-apps/pdfinspect/pkg/analyzer"
	"github.com/pyhub-apps/pdfinspect/pkg/pdf"
)

func newRootCmd() *cobra.Command {
	var (
		backend  string
		password string
		preview  int
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze_pdf [path]",
		Short: "Print diagnostic information about a PDF file",
		Long: `Print the page count, encryption flag, metadata (PDF Version, Creator,
Producer) and a text extraction quality estimate for the first page.

When no path is given, ` + analyzer.DefaultPath + ` is analysed.`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetVerbose(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := analyzer.DefaultConfig()
			if len(args) == 1 {
				cfg.Path = args[0]
			}
			cfg.Password = password
			cfg.PreviewLength = preview

			b, err := pdf.ParseBackend(backend)
			if err != nil {
				return err
			}
			cfg.Backend = b

			// failures are part of the report, not of the exit status
			if err := analyzer.Analyze(cmd.OutOrStdout(), cfg); err != nil {
				logger.Debug("analysis failed: %v", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&backend, "backend", string(pdf.BackendAuto), "PDF library to use: auto, ledongthuc, dslipak or pdfcpu")
	flags.StringVar(&password, "password", "", "user password for encrypted files")
	flags.IntVar(&preview, "preview", analyzer.DefaultPreviewLength, "number of characters shown from the first page")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print debug information to stderr")

	return cmd
}
