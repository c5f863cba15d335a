package main

import (
	"fmt"
	"os"

	"github.com/kataras/meshgrab"
	"github.com/kataras/meshgrab/pkg/objexport"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	var (
		outputDir  string
		productURL string
		catalogID  string
		name       string
		noLookup   bool
		report     bool
	)

	cmd := &cobra.Command{
		Use:   "replay <trace.jsonl | ->",
		Short: "Replay a recorded GL call trace and export the captured meshes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			green := color.New(color.FgGreen)
			cyan := color.New(color.FgCyan)

			cyan.Println("\n🧊 meshgrab replay")
			cyan.Println("==================")
			cyan.Println()

			if !cmd.Flags().Changed("out") {
				outputDir = cfg.Export.Dir
			}

			opts := meshgrab.Options{
				TracePath:     args[0],
				Trace:         os.Stdin,
				OutputDir:     outputDir,
				ProductURL:    productURL,
				CatalogLookup: cfg.Catalog.Lookup && !noLookup,
				CatalogURL:    cfg.Catalog.BaseURL,
				Report:        report,
				Logger:        &cliLogger{},
			}
			if catalogID != "" || name != "" {
				opts.Metadata = &objexport.Metadata{CatalogID: catalogID, Name: name}
			}

			result, err := meshgrab.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			cyan.Println("\n📊 Capture Summary:")
			fmt.Printf("  • GL calls: %d\n", result.Calls)
			fmt.Printf("  • Buffers: %d\n", result.Stats.Buffers)
			fmt.Printf("  • Position attributes: %d\n", result.Stats.Attributes)
			fmt.Printf("  • Meshes: %d\n", result.Stats.Meshes)

			if result.Artifact == nil {
				color.New(color.FgYellow).Printf("\n%s\n\n", result.Notice)
				return nil
			}

			sum := result.Artifact.Summary
			size := sum.Size()
			fmt.Printf("  • Vertices: %d\n", sum.Vertices)
			fmt.Printf("  • Faces: %d\n", sum.Faces)
			fmt.Printf("  • Bounds: %g x %g x %g\n", size.X, size.Y, size.Z)

			green.Printf("\n✨ Exported %s to %s\n", result.Artifact.FileName, outputDir)
			if result.Report != "" {
				green.Printf("📝 Report: %s\n", result.Report)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "out", "o", "meshgrab-exports", "Output directory")
	cmd.Flags().StringVarP(&productURL, "product", "p", "", "LCSC product URL or code used to name the file")
	cmd.Flags().StringVar(&catalogID, "lcsc", "", "Catalog id for the file name (skips the lookup)")
	cmd.Flags().StringVar(&name, "name", "", "Display name for the file name (skips the lookup)")
	cmd.Flags().BoolVar(&noLookup, "no-lookup", false, "Do not query the EasyEDA API for the part name")
	cmd.Flags().BoolVar(&report, "report", false, "Also write a markdown capture report")

	return cmd
}
