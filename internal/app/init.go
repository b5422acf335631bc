package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kapil1024/Redfish-Service-Validator/internal/config"
	"github.com/kapil1024/Redfish-Service-Validator/internal/fs"
)

// NewInitCmd returns a new cobra command for initialising a validation
// workspace.
func NewInitCmd(pathResolver fs.PathResolver) *cobra.Command {
	cmd := &cobra.Command{
		Use:   InitCmdName + " [dirpath]",
		Short: "Initialise a new validation workspace",
		Long: `Create a directory holding a default rsv configuration file and the
metadata directory it points at. Unpack a Redfish schema bundle's CSDL files
into the metadata directory to start validating.`,
		Args: cobra.ExactArgs(1),
		Example: `
rsv init ./my-service
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirpath := args[0]

			// 1. Create directory if it doesn't exist
			if err := os.MkdirAll(dirpath, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}

			configPath := filepath.Join(dirpath, config.RSVConfigFile)

			// 2. Check if config file already exists
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("workspace already exists: %s", configPath)
			}

			// 3. Write default config and the metadata directory it references
			if err := os.WriteFile(configPath, []byte(config.DefaultConfigContent), 0o600); err != nil {
				return fmt.Errorf("failed to write configuration file: %w", err)
			}

			metadataDir := filepath.Join(dirpath, config.Default().MetadataDir)
			if err := os.MkdirAll(metadataDir, 0o750); err != nil {
				return fmt.Errorf("failed to create metadata directory: %w", err)
			}

			cmd.Printf("Successfully initialised workspace at: %s\n", dirpath)
			cmd.Printf("Unpack your schema bundle's CSDL files into: %s\n", metadataDir)
			cmd.Printf("%s", addEnvironmentVariableInstructions(pathResolver, metadataDir))
			cmd.Println("\nTo validate your first payload:")
			cmd.Printf("  rsv validate -h\n")

			return nil
		},
	}

	return cmd
}

func addEnvironmentVariableInstructions(pathResolver fs.PathResolver, dirpath string) string {
	return addEnvironmentVariableInstructionsForOS(pathResolver, dirpath, runtime.GOOS)
}

func addEnvironmentVariableInstructionsForOS(pathResolver fs.PathResolver, dirpath, goos string) string {
	abs, err := pathResolver.Abs(dirpath)
	if err != nil {
		abs = dirpath
	}

	envVar := MetadataDirEnvVar
	instructions := "To use this metadata directory by default, we recommend you set an environment variable. Run:\n"

	switch goos {
	case "windows":
		instructions += fmt.Sprintf("\n  setx %s %q && set %q\n", envVar, abs, envVar+"="+abs)
	case "darwin":
		instructions += fmt.Sprintf("\n  echo 'export %s=%q' >> ~/.zshrc && source ~/.zshrc\n", envVar, abs)
	default:
		instructions += fmt.Sprintf("\n  echo 'export %s=%q' >> ~/.bashrc && source ~/.bashrc\n", envVar, abs)
	}

	return instructions
}
