package cli

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"patrimony-engine/internal/engine"
	"patrimony-engine/internal/model"
)

type generateFlags struct {
	input   string
	mode    string
	seed    int64
	hasSeed bool
	patch   bool
	output  string
}

func generateCmd(a *app) *cobra.Command {
	var f generateFlags

	c := &cobra.Command{
		Use:   "generate",
		Short: "Generate one household and print the filled document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.hasSeed = cmd.Flags().Changed("seed")
			resp, err := simulate(a, f)
			if err != nil {
				return err
			}
			if err := printResponse(cmd.OutOrStdout(), resp, f.output); err != nil {
				return err
			}
			return failure(resp)
		},
	}

	c.Flags().StringVarP(&f.input, "input", "i", "", "request file, YAML or JSON (default: sample household in manual mode)")
	c.Flags().StringVarP(&f.mode, "mode", "m", "", "manual|auto (overrides the request)")
	c.Flags().Int64Var(&f.seed, "seed", 0, "random seed for auto mode")
	c.Flags().BoolVar(&f.patch, "patch", false, "include the JSON patch from the template")
	c.Flags().StringVarP(&f.output, "output", "o", "response", "output: response|payload")
	return c
}

// simulate builds the request from flags and runs it.
func simulate(a *app, f generateFlags) (*model.SimulationResponse, error) {
	var (
		req *model.SimulationRequest
		err error
	)
	switch {
	case f.input != "":
		req, err = loadRequest(f.input)
	case f.mode == string(model.ModeManual):
		req, err = DefaultRequest()
	default:
		req = &model.SimulationRequest{}
	}
	if err != nil {
		return nil, err
	}

	if f.mode != "" {
		req.Mode = model.Mode(f.mode)
	}
	if req.Mode == "" {
		req.Mode = model.Mode(a.cfg.Simulation.DefaultMode)
	}
	if f.hasSeed {
		req.Seed = &f.seed
	}

	tmpl, err := loadTemplate(a.cfg.Simulation.TemplatePath)
	if err != nil {
		return nil, err
	}
	return engine.Process(req, engine.Options{
		Template: tmpl,
		Now:      a.now(),
		Logger:   a.logger,
		Patch:    f.patch,
	}), nil
}

func printResponse(w io.Writer, resp *model.SimulationResponse, output string) error {
	var v any
	switch output {
	case "response", "":
		v = resp
	case "payload":
		v = resp.SimulationResult.Payload
	default:
		return fmt.Errorf("unsupported output %q (expected response|payload)", output)
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func failure(resp *model.SimulationResponse) error {
	if resp.SimulationMetadata.SimulationOutcome != model.OutcomeFailure {
		return nil
	}
	for _, m := range resp.SimulationResult.Messages {
		if m.Level == model.LevelCritical {
			return fmt.Errorf("simulation failed: %s: %s", m.Code, m.Message)
		}
	}
	return fmt.Errorf("simulation failed")
}
