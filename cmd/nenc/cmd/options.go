package cmd

import (
	"encoding/json"
	"os"

	"github.com/msto63/nestedencoder/foundation/nenc"
	"github.com/spf13/cobra"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:     "options",
	Aliases: []string{"list", "encodings"},
	Short:   "Zeigt die verfuegbaren Kodierungen",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := nenc.New(nenc.Options{Logger: appLogger}).Options()
		if optionsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(catalog)
		}
		printCatalog(&catalog)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "Ausgabe als JSON")
}
