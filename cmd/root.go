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
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	cfgFile   string
	verbose   bool
	logFormat string
	dbPath    string
)

var rootCmd = &cobra.Command{
	Use:   "xcstran",
	Short: "Fill missing String Catalog translations with an LLM",
	Long: `xcstran translates the missing entries of an Apple String Catalog
(.xcstrings) with an OpenAI-compatible chat API or a local Ollama server.

Languages are processed one at a time and the catalog is saved after each
language, so an interrupted run keeps every language it finished.

Settings are read from flags, XCSTRAN_* environment variables, a .env file
and an optional xcstran.yaml/.toml/.json config file.

Use "xcstran translate --help" for translation options.`,
	Version:       version,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./xcstran.yaml or $HOME/.config/xcstran/xcstran.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "./data/xcstran.db", "Database path for translation memory, glossary and run journal")
}
