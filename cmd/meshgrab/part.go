package main

import (
	"encoding/json"
	"fmt"

	"github.com/kataras/meshgrab/pkg/catalog"
	"github.com/kataras/meshgrab/pkg/objexport"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newPartCmd() *cobra.Command {
	var (
		asJSON    bool
		download  bool
		withSVG   bool
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "part <lcsc-url | code>",
		Short: "Look up an LCSC part and print its 3D viewer URL, or download its EasyEDA documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := catalog.ExtractProductCode(args[0])
			if err != nil {
				return err
			}

			client := catalog.NewClient(cfg.Catalog.BaseURL)
			out := cmd.OutOrStdout()

			if download {
				if !cmd.Flags().Changed("out") {
					outputDir = cfg.Export.Dir
				}
				saved, err := client.Download(cmd.Context(), code, objexport.DirSaver{Dir: outputDir}, withSVG)
				for _, name := range saved {
					fmt.Fprintf(out, "  • %s\n", name)
				}
				if err != nil {
					return err
				}
				if len(saved) == 0 {
					color.New(color.FgYellow).Fprintf(out, "  ⚠ No documents found for %s\n", code)
					return nil
				}
				color.New(color.FgGreen).Fprintf(out, "\n✨ Saved %d file(s) to %s\n\n", len(saved), outputDir)
				return nil
			}

			part, err := client.LookupPart(cmd.Context(), code)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(part)
			}

			cyan := color.New(color.FgCyan)
			cyan.Fprintf(out, "\n🔎 %s\n", part.Code)
			fmt.Fprintf(out, "  • Name: %s\n", part.Name)
			if part.FootprintUUID != "" {
				fmt.Fprintf(out, "  • Footprint: %s\n", part.FootprintUUID)
			}
			if part.Model == nil {
				color.New(color.FgYellow).Fprintln(out, "  ⚠ No 3D model attached to the footprint")
				return nil
			}
			fmt.Fprintf(out, "  • 3D model: %s (%s)\n", part.Model.Title, part.Model.UUID)
			fmt.Fprintf(out, "  • Export file: %s\n", objexport.FileName(part.Metadata()))
			color.New(color.FgGreen).Fprintf(out, "\n  %s\n\n", part.ViewerURL)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the part as JSON")
	cmd.Flags().BoolVarP(&download, "download", "d", false, "Download the symbol and footprint documents as JSON instead of printing the part")
	cmd.Flags().BoolVar(&withSVG, "svg", false, "With --download, also save the symbol and footprint SVG previews")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "meshgrab-exports", "Output directory for --download")
	return cmd
}
