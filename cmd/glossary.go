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
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/xcstran/internal/catalog"
	"github.com/valpere/xcstran/internal/langcode"
	"github.com/valpere/xcstran/internal/store"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Manage required term translations",
	Long: `Manage terms that must always be translated the same way, such as
product names or screen titles.

Terms are stored per language pair. During "xcstran translate" an entry's
request lists the terms of the catalog's source language and the target
language that occur in the entry's text as whole words.`,
}

var (
	glossarySource string
	glossaryTarget string
	glossaryInput  string
)

var glossaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List glossary terms",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		terms, err := db.ListGlossary(cmd.Context(), store.GlossaryFilter{SourceLang: glossarySource, TargetLang: glossaryTarget})
		if err != nil {
			return fmt.Errorf("failed to list glossary: %w", err)
		}
		if len(terms) == 0 {
			fmt.Println("No glossary terms.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PAIR\tTERM\tTRANSLATION\tID")
		for _, t := range terms {
			fmt.Fprintf(w, "%s→%s\t%s\t%s\t%s\n", t.SourceLang, t.TargetLang, t.Source, t.Target, t.ID)
		}
		return w.Flush()
	},
}

var glossaryAddCmd = &cobra.Command{
	Use:   "add <term> <translation>",
	Short: "Add a term or change its translation",
	Long: `Add a required translation of a source-language term.

The source language comes from --source, or from the sourceLanguage of the
catalog named by --input. Adding a term that already exists for the pair
replaces its translation.

Examples:
  xcstran glossary add "Settings" "Réglages" -t fr -i Localizable.xcstrings
  xcstran glossary add "Settings" "Ajustes" -s en -t pt_BR`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := glossarySourceLang()
		if err != nil {
			return err
		}

		db, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		term, err := db.SetGlossaryTerm(cmd.Context(), store.GlossaryTerm{
			SourceLang: source,
			TargetLang: glossaryTarget,
			Source:     args[0],
			Target:     args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to add glossary term: %w", err)
		}
		fmt.Printf("%s → %s: %q = %q (id %s)\n",
			langcode.Describe(term.SourceLang), langcode.Describe(term.TargetLang), term.Source, term.Target, term.ID)
		return nil
	},
}

var glossaryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a glossary term by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		deleted, err := db.DeleteGlossaryTerm(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to delete glossary term: %w", err)
		}
		if !deleted {
			return fmt.Errorf("glossary term not found: %s", args[0])
		}
		fmt.Printf("Deleted glossary term %s\n", args[0])
		return nil
	},
}

// glossarySourceLang resolves the source language of a new term from
// --source or the catalog given with --input.
func glossarySourceLang() (string, error) {
	switch {
	case glossarySource != "":
		return glossarySource, nil
	case glossaryInput != "":
		doc, err := catalog.ParseFile(glossaryInput)
		if err != nil {
			return "", err
		}
		return doc.SourceLanguage, nil
	default:
		return "", fmt.Errorf("either --source or --input is required")
	}
}

func init() {
	rootCmd.AddCommand(glossaryCmd)

	glossaryListCmd.Flags().StringVarP(&glossarySource, "source", "s", "", "Only terms of this source language")
	glossaryListCmd.Flags().StringVarP(&glossaryTarget, "target", "t", "", "Only terms of this target language")

	glossaryAddCmd.Flags().StringVarP(&glossarySource, "source", "s", "", "Source language code (e.g. en)")
	glossaryAddCmd.Flags().StringVarP(&glossaryTarget, "target", "t", "", "Target language code (e.g. fr, pt-BR)")
	glossaryAddCmd.Flags().StringVarP(&glossaryInput, "input", "i", "", "Catalog whose source language the term belongs to")
	glossaryAddCmd.MarkFlagRequired("target")

	glossaryCmd.AddCommand(glossaryListCmd, glossaryAddCmd, glossaryDeleteCmd)
}
