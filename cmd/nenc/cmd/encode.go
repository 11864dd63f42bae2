package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/msto63/nestedencoder/foundation/nenc"
	"github.com/msto63/nestedencoder/internal/encoder/server"
	"github.com/msto63/nestedencoder/internal/encoder/service"
	coreGrpc "github.com/msto63/nestedencoder/pkg/core/grpc"
	"github.com/spf13/cobra"
)

var (
	encodeTokens   []string
	encodeJSON     bool
	encodeRemote   string
	encodeStrict   bool
	encodeExtended bool
	encodeNoRecord bool
)

var encodeCmd = &cobra.Command{
	Use:     "encode [text] [pattern]",
	Aliases: []string{"enc", "e"},
	Short:   "Kodiert einen Text mit einem Muster",
	Long: `Kodiert den Klartext durch die Kodierungen des Musters.

Ohne Text wird der Katalog der verfuegbaren Kodierungen ausgegeben.
Mit --token wird jede Kodierung einzeln uebergeben, das Muster wird
dann nicht an Kommas getrennt.

Beispiele:
  nenc encode "Hi" "ascii,hex"            # 48 69
  nenc encode "Hello" rot13               # Uryyb
  nenc encode "Hi" --token ascii --token binary
  nenc encode "Hi" base64 --json
  nenc encode "Hi" hex --remote localhost:9090`,
	Args: cobra.MaximumNArgs(2),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringArrayVarP(&encodeTokens, "token", "t", nil, "Einzelne Kodierung (mehrfach angebbar)")
	encodeCmd.Flags().BoolVar(&encodeJSON, "json", false, "Ausgabe als JSON")
	encodeCmd.Flags().StringVar(&encodeRemote, "remote", "", "Adresse eines nenc gRPC-Servers")
	encodeCmd.Flags().BoolVar(&encodeStrict, "strict", false, "Unbekannte Kodierungen als Fehler behandeln")
	encodeCmd.Flags().BoolVar(&encodeExtended, "extended", false, "Alle Basen von 2 bis 36 erlauben")
	encodeCmd.Flags().BoolVar(&encodeNoRecord, "no-history", false, "Nicht im Verlauf speichern")
}

func runEncode(cmd *cobra.Command, args []string) error {
	var text, pattern string
	if len(args) > 0 {
		text = args[0]
	}
	if len(args) > 1 {
		pattern = args[1]
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), appConfig.Encoder.Timeout.Duration+5*time.Second)
	defer cancel()

	var (
		resp *nenc.Response
		err  error
	)
	if encodeRemote != "" {
		resp, err = encodeRemotely(ctx, text, pattern)
	} else {
		resp, err = encodeLocally(ctx, text, pattern)
	}
	if err != nil {
		return err
	}

	return printResponse(resp, encodeJSON)
}

func encodeLocally(ctx context.Context, text, pattern string) (*nenc.Response, error) {
	if encodeStrict {
		appConfig.Encoder.StrictTokens = true
	}
	if encodeExtended {
		appConfig.Encoder.ExtendedRadix = true
	}

	svc, err := newService(!encodeNoRecord)
	if err != nil {
		return nil, err
	}
	defer svc.Close()

	return svc.Encode(ctx, &service.Request{
		Text:    text,
		Pattern: pattern,
		Tokens:  encodeTokens,
	})
}

func encodeRemotely(ctx context.Context, text, pattern string) (*nenc.Response, error) {
	conn, err := coreGrpc.DialSimple(encodeRemote)
	if err != nil {
		return nil, fmt.Errorf("verbindung zu %s fehlgeschlagen: %w", encodeRemote, err)
	}
	defer conn.Close()

	client := server.NewClient(conn)
	if encodeTokens != nil {
		return client.EncodeTokens(ctx, text, encodeTokens)
	}
	return client.Encode(ctx, text, pattern)
}

// printResponse writes the result line, the catalog table or JSON to stdout
func printResponse(resp *nenc.Response, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	if resp.IsOptions() {
		printCatalog(resp.Options)
		return nil
	}
	fmt.Println(resp.Result.Result)
	return nil
}

func printCatalog(catalog *nenc.OptionsCatalog) {
	fmt.Println("Parameter:")
	for _, p := range catalog.Parameters {
		fmt.Printf("  %s\n", p)
	}
	fmt.Println()

	names := make([]string, 0, len(catalog.Encodings))
	for name := range catalog.Encodings {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Kodierungen:")
	for _, name := range names {
		fmt.Printf("  %-12s %s\n", name, catalog.Encodings[name])
	}
}
