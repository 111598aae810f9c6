package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"patrimony-engine/internal/algoclient"
)

func pipelineCmd(a *app) *cobra.Command {
	var (
		f            generateFlags
		objective    string
		subObjective string
		params       string
	)

	c := &cobra.Command{
		Use:   "pipeline",
		Short: "Generate a household and send it through fill-score, projection and strategy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var objParams map[string]any
			if err := json.Unmarshal([]byte(params), &objParams); err != nil {
				return fmt.Errorf("--params is not a JSON object: %w", err)
			}

			f.hasSeed = cmd.Flags().Changed("seed")
			resp, err := simulate(a, f)
			if err != nil {
				return err
			}
			if err := failure(resp); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if a.cfg.Algo.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Algo.Timeout)
				defer cancel()
			}

			client := algoclient.New(a.cfg.Algo, a.logger)
			res, err := client.Run(ctx, resp.SimulationResult.Payload, objective, subObjective, objParams)
			if err != nil {
				return err
			}

			out := map[string]any{
				"simulation_id":    resp.SimulationMetadata.SimulationID,
				"seed":             resp.SimulationMetadata.Seed,
				"request_id":       res.Projection.RequestID,
				"request_key":      res.Projection.RequestKey,
				"fill_score":       res.Fill.Output,
				"strategy":         res.Strategy.Output,
				"strategy_elapsed": res.Strategy.Elapsed.String(),
			}
			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}

	c.Flags().StringVarP(&f.input, "input", "i", "", "request file, YAML or JSON")
	c.Flags().StringVarP(&f.mode, "mode", "m", "", "manual|auto (overrides the request)")
	c.Flags().Int64Var(&f.seed, "seed", 0, "random seed for auto mode")
	c.Flags().StringVar(&objective, "objective", "Investir", "client objective")
	c.Flags().StringVar(&subObjective, "sub-objective", "Investir régulièrement", "sub-objective of the objective")
	c.Flags().StringVar(&params, "params", "{}", "objective parameters as a JSON object")
	return c
}
