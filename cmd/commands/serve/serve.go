package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nathanbeddoewebdev/donorlens/internal/app"
	"nathanbeddoewebdev/donorlens/internal/httpapi"
	"nathanbeddoewebdev/donorlens/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// NewCommand returns the "serve" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dashboards as JSON over HTTP",
		Long: `Serve dashboard view models and chart data as JSON.

Endpoints:
  GET /api/v1/dashboards             list tabs
  GET /api/v1/dashboards/{tab}       view model and charts

The gateway fetches with the stored API token. By default it binds to
localhost and serves only the configured organization. --allow-org-override
accepts ?org_id= so any caller can query other organizations with that token.
  GET /healthz                       liveness
  GET /metrics                       Prometheus metrics

Example:
  donorlens serve --addr :8080`,
		Args:         cobra.NoArgs,
		RunE:         runServe,
		SilenceUsage: true,
	}

	cmd.Flags().String("addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().Bool("allow-org-override", false, "Accept the org_id query parameter")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	verbose, _ := cmd.Flags().GetBool("verbose")
	allowOverride, _ := cmd.Flags().GetBool("allow-org-override")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, err := app.New(app.Options{
		LogWriter:  os.Stderr,
		LogFormat:  logger.FormatJSON,
		Verbose:    verbose,
		Registerer: reg,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []httpapi.Option{
		httpapi.WithGatherer(reg),
		httpapi.WithLogger(a.Logger),
	}
	if a.Audit != nil {
		opts = append(opts, httpapi.WithRecorder(a.Audit))
	}
	if allowOverride {
		a.Logger.Warn("organization override enabled; callers can query any organization with the stored token")
		opts = append(opts, httpapi.WithOrganizationOverride())
	}
	return httpapi.New(a.Runner, a.Session, opts...).Serve(ctx, addr)
}
