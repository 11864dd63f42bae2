package cmd

import (
	"fmt"
	"os"

	mdwlog "github.com/msto63/nestedencoder/foundation/core/log"
	"github.com/msto63/nestedencoder/internal/encoder/service"
	"github.com/msto63/nestedencoder/internal/encoder/store"
	"github.com/msto63/nestedencoder/pkg/core/config"
	"github.com/msto63/nestedencoder/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	appLogger *mdwlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nenc",
	Short: "nenc - Verschachtelte Zeichenketten-Kodierung",
	Long: `nenc kodiert einen Klartext durch eine Kette von Kodierungen.

Das Muster ist eine kommagetrennte Liste von Kodierungen, die von
links nach rechts angewendet werden, z.B. "ascii,hex" oder "rot13,base64".

Befehle:
  encode   - Text kodieren
  options  - Verfuegbare Kodierungen anzeigen
  serve    - HTTP- und gRPC-Server starten
  tui      - Interaktive Terminal-Oberflaeche
  history  - Kodierungsverlauf anzeigen
  status   - Erreichbarkeit der Server pruefen`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fehler: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/nenc.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

// setup loads the configuration and installs the default logger
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return fmt.Errorf("config nicht geladen: %w", err)
	}

	level := appConfig.General.LogLevel
	if verbose {
		level = "debug"
	}
	appLogger = logging.Setup(logging.LoggerConfig{
		ServiceName: appConfig.General.Name,
		Level:       level,
		Format:      appConfig.General.LogFormat,
	})
	return nil
}

// newService builds the encoder service from the loaded configuration.
// withHistory opens the history database when it is enabled.
func newService(withHistory bool) (*service.Service, error) {
	cfg := service.Config{
		MaxPatternLength: appConfig.Encoder.MaxPatternLength,
		StrictTokens:     appConfig.Encoder.StrictTokens,
		ExtendedRadix:    appConfig.Encoder.ExtendedRadix,
		Timeout:          appConfig.Encoder.Timeout.Duration,
		CacheEnabled:     appConfig.Cache.Enabled,
		CacheMaxItems:    appConfig.Cache.MaxItems,
		CacheTTL:         appConfig.Cache.TTL.Duration,
		Logger:           appLogger,
	}

	if withHistory && appConfig.History.Enabled {
		history, err := store.NewSQLiteHistoryStore(store.SQLiteConfig{Path: appConfig.HistoryPath()})
		if err != nil {
			return nil, fmt.Errorf("verlauf konnte nicht geoeffnet werden: %w", err)
		}
		cfg.History = history
	}

	return service.NewService(cfg), nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
