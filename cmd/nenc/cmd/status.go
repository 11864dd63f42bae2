package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/msto63/nestedencoder/internal/encoder/server"
	coreGrpc "github.com/msto63/nestedencoder/pkg/core/grpc"
	"github.com/msto63/nestedencoder/pkg/core/health"
	"github.com/msto63/nestedencoder/pkg/core/version"
	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Zeigt den Status der Server",
	Long: `Zeigt den Status der nenc Server an.

Prueft fuer jeden Server zuerst, ob der Port erreichbar ist, und
anschliessend den HTTP-Endpunkt /health bzw. den gRPC-Gesundheitsdienst
des EncoderService.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// statusTarget is one server port inspected by nenc status.
type statusTarget struct {
	name     string
	port     int
	protocol string
	check    func(context.Context, string) (string, error)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("nenc Status")
	fmt.Println("===========")
	fmt.Println()

	host := appConfig.Server.Host
	if host == "0.0.0.0" || host == "" {
		host = "localhost"
	}

	targets := []statusTarget{
		{"HTTP API", appConfig.Server.HTTPPort, "HTTP", checkHTTP},
		{"EncoderService", appConfig.Server.GRPCPort, "gRPC", checkGRPC},
	}

	report := statusRegistry(host, targets).CheckWithTimeout(10 * time.Second)
	results := make(map[string]health.CheckResult, len(report.Checks))
	for _, r := range report.Checks {
		results[r.Name] = r
	}

	for _, t := range targets {
		icon, text := describeTarget(results, t)
		fmt.Printf("  %s %-20s :%d (%s) - %s\n", icon, t.name, t.port, t.protocol, text)
	}

	fmt.Println()
	if report.Healthy() {
		fmt.Println("Alle Server laufen.")
	} else {
		fmt.Println("Nicht alle Server sind erreichbar. Starten mit: nenc serve")
	}
	return nil
}

// statusRegistry registers a port reachability check and a protocol check
// for every target.
func statusRegistry(host string, targets []statusTarget) *health.Registry {
	registry := health.NewRegistry("nenc-status", version.CLI)
	for _, t := range targets {
		addr := net.JoinHostPort(host, strconv.Itoa(t.port))
		registry.Register(health.TCPCheck(portCheckName(t), addr, 2*time.Second))

		check := t.check
		registry.RegisterFunc(t.name, func(ctx context.Context) health.CheckResult {
			status, err := check(ctx, addr)
			if err != nil {
				return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
			}
			return health.CheckResult{Status: health.StatusHealthy, Message: status}
		})
	}
	return registry
}

func portCheckName(t statusTarget) string {
	return t.name + " port"
}

func describeTarget(results map[string]health.CheckResult, t statusTarget) (icon, text string) {
	port := results[portCheckName(t)]
	svc := results[t.name]
	switch {
	case port.Status != health.StatusHealthy:
		return "[-]", "stopped"
	case svc.Status != health.StatusHealthy:
		return "[!]", "Port offen, Dienst antwortet nicht"
	case svc.Message != "":
		return "[+]", svc.Message
	}
	return "[+]", "running"
}

func checkHTTP(ctx context.Context, addr string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+addr+"/health", nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var report health.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return "", err
	}
	return string(report.Status), nil
}

func checkGRPC(ctx context.Context, addr string) (string, error) {
	conn, err := coreGrpc.DialSimple(addr)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{
		Service: server.ServiceName,
	})
	if err != nil {
		return "", err
	}
	return resp.GetStatus().String(), nil
}
