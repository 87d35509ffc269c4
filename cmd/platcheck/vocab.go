package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Print the effective generator vocabulary as YAML",
	Long: `Prints the token vocabulary the generator draws from, after merging any
extras from the config file. Useful as a starting point for a custom
vocabulary section.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		vocab, err := cfg.BuildVocabulary()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		out, err := yaml.Marshal(map[string]any{"vocabulary": vocab})
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
}
