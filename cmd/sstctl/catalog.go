package main

import (
	"encoding/json"
	"fmt"
	"io"

	"sst_portal_backend/internal/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print segments, headcount bands, cities and obligations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeCatalog(cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func writeCatalog(w io.Writer, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"segments":       catalog.Segments(),
			"headcountBands": catalog.HeadcountBands(),
			"cities":         catalog.Cities(),
			"obligations":    catalog.Obligations(),
		})
	}

	fmt.Fprintln(w, "Segmentos:")
	for _, s := range catalog.Segments() {
		fmt.Fprintf(w, "  %s\n", s)
	}
	fmt.Fprintln(w, "Porte:")
	for _, b := range catalog.HeadcountBands() {
		fmt.Fprintf(w, "  %-8s %s\n", b.Value, b.Label)
	}
	fmt.Fprintln(w, "Cidades:")
	for _, c := range catalog.Cities() {
		fmt.Fprintf(w, "  %s\n", c)
	}
	fmt.Fprintln(w, "Normas:")
	for _, o := range catalog.Obligations() {
		fmt.Fprintf(w, "  %-6s %s\n", o.Code, o.Name)
	}
	return nil
}
