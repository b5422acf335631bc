package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kapil1024/Redfish-Service-Validator/internal/fs"
)

// Run builds the CLI and executes it against args. A nil envProvider falls
// back to the process environment. Any returned error has already been
// reported on stderr.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, envProvider fs.EnvProvider) error {
	if envProvider == nil {
		envProvider = fs.NewEnvProvider()
	}

	logLevel := &slog.LevelVar{}
	logLevel.Set(slog.LevelInfo)

	// One LazyManager per invocation keeps parallel tests isolated.
	lazy := &LazyManager{}

	rootCmd := NewRootCmd(lazy, logLevel, stderr, envProvider)
	rootCmd.SetArgs(args[1:]) // args[0] is the program name
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		// SilenceErrors is set on the root command, so this is the one
		// place the error reaches the user.
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return err
}
