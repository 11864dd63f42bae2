package cmd

import (
	"io"

	tuienc "github.com/msto63/nestedencoder/internal/tui/encoder"
	"github.com/msto63/nestedencoder/pkg/core/logging"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:     "tui [text] [pattern]",
	Aliases: []string{"ui"},
	Short:   "Startet die interaktive Terminal-Oberflaeche",
	Long: `Startet die interaktive nenc Terminal-Oberflaeche.

Der Text wird bei jeder Eingabe neu kodiert.

Tastenkuerzel:
  Tab / Shift+Tab   Feld wechseln
  Ctrl+O            Kodierungen ein-/ausblenden
  Esc / Ctrl+C      Beenden`,
	Args: cobra.MaximumNArgs(2),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	var text, pattern string
	if len(args) > 0 {
		text = args[0]
	}
	if len(args) > 1 {
		pattern = args[1]
	}

	// log output would corrupt the alternate screen
	appLogger = logging.Setup(logging.LoggerConfig{
		ServiceName: appConfig.General.Name,
		Level:       "error",
		Output:      io.Discard,
	})

	// live encoding would flood the history, it stays off here
	svc, err := newService(false)
	if err != nil {
		return err
	}
	defer svc.Close()

	return tuienc.Run(svc, text, pattern)
}
