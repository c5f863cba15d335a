package main

import (
	"fmt"
	"os"

	"github.com/kataras/meshgrab"
	"github.com/kataras/meshgrab/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = meshgrab.Version

var (
	cfgFile string
	cfg     *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meshgrab",
		Short: "Capture 3D meshes from a WebGL viewer and export them as OBJ",
		Long: `meshgrab reconstructs triangle meshes from the WebGL calls of a browser 3D viewer
(the EasyEDA part viewer in particular) and writes them as Wavefront OBJ files.

Calls are either replayed from a recorded trace (replay) or streamed live from
an in-page shim (serve).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(cfgFile)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./meshgrab.yaml or $HOME/.meshgrab/meshgrab.yaml)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		// No config needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "meshgrab version %s\n", version)
		},
	}

	rootCmd.AddCommand(newReplayCmd(), newServeCmd(), newPartCmd(), versionCmd)
	return rootCmd
}

// cliLogger implements meshgrab.Logger with colored terminal output.
type cliLogger struct{}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Printf(format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Printf("⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Printf("✗ "+format+"\n", args...)
}
