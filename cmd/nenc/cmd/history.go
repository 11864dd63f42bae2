package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyPrune bool
	historyStats bool
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Zeigt den Kodierungsverlauf",
	Long: `Zeigt die letzten Kodierungen aus dem Verlauf.

Gespeichert werden nur Metadaten (Muster, Laengen, Fehlercode),
niemals der Klartext oder das Ergebnis.

Beispiele:
  nenc history --limit 50
  nenc history --stats
  nenc history --prune     # Eintraege aelter als history.retention loeschen`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Anzahl der Eintraege")
	historyCmd.Flags().BoolVar(&historyPrune, "prune", false, "Abgelaufene Eintraege loeschen")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "Statistik anzeigen")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Ausgabe als JSON")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !appConfig.History.Enabled {
		return fmt.Errorf("verlauf ist deaktiviert (history.enabled = false)")
	}

	svc, err := newService(true)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if historyPrune {
		deleted, err := svc.PruneHistory(ctx, appConfig.History.Retention.Duration)
		if err != nil {
			return err
		}
		fmt.Printf("%d Eintraege geloescht\n", deleted)
		return nil
	}

	if historyStats {
		stats := svc.Stats(ctx)["history"]
		if historyJSON {
			return writeJSON(stats)
		}
		hs, _ := stats.(map[string]interface{})
		fmt.Println("Verlauf")
		fmt.Println("=======")
		fmt.Printf("  Eintraege:   %v\n", hs["total_entries"])
		fmt.Printf("  Fehler:      %v\n", hs["failed_entries"])
		if last, ok := hs["last_entry"]; ok {
			fmt.Printf("  Letzter:     %v\n", last)
		}
		if top, ok := hs["top_patterns"].(map[string]int64); ok && len(top) > 0 {
			fmt.Println("  Haeufigste Muster:")
			for pattern, count := range top {
				fmt.Printf("    %-30s %d\n", pattern, count)
			}
		}
		return nil
	}

	entries, err := svc.History(ctx, historyLimit)
	if err != nil {
		return err
	}
	if historyJSON {
		return writeJSON(entries)
	}
	if len(entries) == 0 {
		fmt.Println("Keine Eintraege")
		return nil
	}

	for _, e := range entries {
		status := "[+]"
		if !e.Succeeded() {
			status = "[-] " + e.ErrorCode
		}
		fmt.Printf("%s  %-30s %5d -> %-5d %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Pattern, e.InputLength, e.OutputLength, status)
	}
	return nil
}

func writeJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
