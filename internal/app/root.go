package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kapil1024/Redfish-Service-Validator/internal/config"
	"github.com/kapil1024/Redfish-Service-Validator/internal/fs"
	"github.com/kapil1024/Redfish-Service-Validator/internal/schema"
)

// Version is the current version of rsv, set at build time.
var Version = "dev"

const InitCmdName = "init"

// MetadataDirEnvVar names the environment variable pointing rsv at a CSDL
// metadata directory when neither the --metadata flag nor a config file
// provides one.
const MetadataDirEnvVar = "RSV_METADATA_DIR"

// Banner with colour codes.
var Banner = "\033[32m" + `
    ____  _____ _    __
   / __ \/ ___/| |  / /
  / /_/ /\__ \ | | / /
 / _, _/___/ / | |/ /
/_/ |_|/____/  |___/

` + "\033[0m"

var LongDescription = `
rsv is a CLI tool for validating the JSON resources a Redfish service returns
against the CSDL schema bundle describing its data model.
Point it at a directory of schema documents and a payload (or a tree of
captured payloads) and it reports every property that does not conform to
its declared type, following @odata.type annotations across schema versions.
`

// NewRootCmd creates the root command and wires up dependencies.
func NewRootCmd(lazy *LazyManager, ll *slog.LevelVar, stderr io.Writer, envProvider fs.EnvProvider) *cobra.Command {
	var debug bool
	var noColour bool
	var metadataDir string

	rootCmd := &cobra.Command{
		Use:           "rsv",
		Short:         "A validator for Redfish service payloads",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Long:          Banner + "\n" + LongDescription,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for help, completion and init commands
			if cmd.Name() == "help" || isCompletionCommand(cmd) || cmd.Name() == InitCmdName {
				return nil
			}
			// Skip if already initialised (e.g., in tests)
			if lazy.HasInner() {
				if debug {
					ll.Set(slog.LevelDebug)
				}
				return nil
			}

			// 1. Setup Logging
			if debug {
				ll.Set(slog.LevelDebug)
			}

			// 2. Build Dependencies
			cfg, err := config.Load(".")
			if err != nil {
				return fmt.Errorf("configuration failed to load: %w", err)
			}

			// The metadata directory resolves flag, then environment, then config.
			if metadataDir == "" {
				metadataDir = envProvider.Get(MetadataDirEnvVar)
			}
			if metadataDir != "" {
				cfg.MetadataDir = metadataDir
			}
			// Watch mode compares fsnotify paths against catalog paths, so the
			// directory is pinned to its canonical form up front. A path that
			// does not resolve is left for the catalog load to report.
			if canonical, cErr := fs.CanonicalPath(cfg.MetadataDir); cErr == nil {
				cfg.MetadataDir = canonical
			}

			logger, _, err := setupLogger(stderr, ll, cfg.LogDir, envProvider)
			if err != nil {
				logger.Warn("logging to file disabled", "error", err)
			}

			catalog, err := schema.Load(cfg.MetadataDir)
			if err != nil {
				if catalog == nil {
					return fmt.Errorf("catalog initialisation failed: %w", err)
				}
				logger.Warn("some schema documents were skipped", "error", err)
			}

			// 3. Hydrate the Lazy Wrapper
			realMgr := NewCLIManager(logger, catalog, cfg)
			realMgr.reporterWriter = cmd.OutOrStdout()
			lazy.SetInner(realMgr)

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&metadataDir, "metadata", "m", "", "path to CSDL metadata directory (overrides env/config)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")

	rootCmd.PersistentFlags().BoolVarP(&noColour, "nocolour", "c", false, "Disable colour in output")
	// Support alternate spellings
	rootCmd.PersistentFlags().BoolVar(&noColour, "nocolor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColor", false, "")
	rootCmd.PersistentFlags().BoolVar(&noColour, "noColour", false, "")
	_ = rootCmd.PersistentFlags().MarkHidden("nocolor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColor")
	_ = rootCmd.PersistentFlags().MarkHidden("noColour")

	// Subcommands
	rootCmd.AddCommand(NewInitCmd(fs.NewPathResolver()))
	rootCmd.AddCommand(NewValidateCmd(lazy))
	rootCmd.AddCommand(NewInspectCmd(lazy))
	rootCmd.AddCommand(NewCrosscheckCmd(lazy))

	return rootCmd
}

// isCompletionCommand returns true if the command or any of its parents is the "completion" command.
func isCompletionCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" {
			return true
		}
	}
	return false
}
