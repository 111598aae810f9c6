package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"patrimony-engine/internal/handler"
	"patrimony-engine/internal/model"
)

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve simulations over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmpl, err := loadTemplate(a.cfg.Simulation.TemplatePath)
			if err != nil {
				return err
			}

			h := handler.New(tmpl, a.logger, model.Mode(a.cfg.Simulation.DefaultMode), a.now())
			srv := h.Server(a.cfg)
			addr := ":" + strconv.Itoa(a.cfg.HTTP.Port)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe(addr) }()
			a.logger.Info("patrimony engine listening", slog.String("addr", addr), slog.String("env", a.cfg.Env.Env))

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
				a.logger.Info("shutting down")
				return srv.Shutdown()
			}
		},
	}
}
