// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/ontvitals/internal/registry/death"
)

// ExportCmd returns the spreadsheet export commands.
func ExportCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transcriptions as .xlsx workbooks",
	}
	cmd.AddCommand(exportDeathsCmd(deps))
	return cmd
}

func exportDeathsCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deaths",
		Short: "Export death registrations",
		Long: `Export the death registrations of a domain, optionally narrowed to a
registration year, surname or county. Use --out - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			domain, _ := flags.GetString("domain")
			year, _ := flags.GetInt("year")
			surname, _ := flags.GetString("surname")
			county, _ := flags.GetString("county")
			out, _ := flags.GetString("out")

			if domain == "" {
				domain = deps.DefaultDomain()
			}
			if year != 0 && (year < 1780 || year > 2100) {
				return fmt.Errorf("--year %d is not a registration year", year)
			}

			exporter, release, err := deps.Deaths(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			table, err := exporter.Export(cmd.Context(), death.Filter{
				Domain:  domain,
				RegYear: year,
				Surname: surname,
				County:  county,
			})
			if err != nil {
				return err
			}

			if out == "-" {
				_, err = table.WriteTo(cmd.OutOrStdout())
				return err
			}
			if err := writeFile(out, table); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d registrations to %s\n",
				okColor.Sprint("wrote"), len(table.Rows), keyColor.Sprint(out))
			return nil
		},
	}

	cmd.Flags().String("domain", "", "Registration domain; the configured default when empty")
	cmd.Flags().Int("year", 0, "Registration year")
	cmd.Flags().String("surname", "", "Surname")
	cmd.Flags().String("county", "", "County code")
	cmd.Flags().String("out", "deaths.xlsx", "Output file, or - for stdout")
	return cmd
}

func writeFile(path string, table io.WriterTo) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := table.WriteTo(file); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
