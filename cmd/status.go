/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/xcstran/internal/catalog"
	"github.com/valpere/xcstran/internal/langcode"
)

var (
	statusInput     string
	statusLanguages []string
	statusHistory   int
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show translation coverage of a String Catalog",
	Long: `Show, per language, how many entries are translated, failed, missing,
unsupported (plural/device variations, substitutions) or in another state.

Without --languages every language present in the catalog is reported.
With --history the most recent translate runs are listed as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		input := cfg.Input
		if input == "" {
			return fmt.Errorf("--input is required")
		}

		doc, err := catalog.ParseFile(input)
		if err != nil {
			return err
		}

		langs, err := langcode.Normalize(cfg.Languages)
		if err != nil {
			return err
		}
		if len(langs) == 0 {
			for _, l := range doc.Languages() {
				if !langcode.Same(l, doc.SourceLanguage) {
					langs = append(langs, l)
				}
			}
		}

		fmt.Printf("%s: %d entries, source language %s\n", input, len(doc.Strings), langcode.Describe(doc.SourceLanguage))
		if err := writeStatus(os.Stdout, doc, langs); err != nil {
			return err
		}

		if statusHistory > 0 {
			return printHistory(cmd, statusHistory)
		}
		return nil
	},
}

func writeStatus(out io.Writer, doc *catalog.Document, langs []string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LANGUAGE\tNAME\tTRANSLATED\tERROR\tMISSING\tUNSUPPORTED\tOTHER\tDONE")
	for _, lang := range langs {
		st := doc.Stats(lang)
		pct := 100
		if st.Total > 0 {
			pct = st.Done() * 100 / st.Total
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d%%\n",
			lang, langcode.Name(lang), st.Translated, st.Errors, st.Missing, st.Unsupported, st.Other, pct)
	}
	return w.Flush()
}

func printHistory(cmd *cobra.Command, limit int) error {
	db, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTARTED\tSTATUS\tINPUT\tTARGETS\tPROVIDER\tMODEL")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Status, r.InputFile,
			strings.Join(r.Targets, ","), r.Provider, r.Model)
	}
	return w.Flush()
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusInput, "input", "i", "", "String Catalog (.xcstrings) to inspect")
	statusCmd.Flags().StringSliceVarP(&statusLanguages, "languages", "l", nil, "Languages to report (default: all in the catalog)")
	statusCmd.Flags().IntVar(&statusHistory, "history", 0, "Also list the N most recent translate runs")
}
