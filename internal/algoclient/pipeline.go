package algoclient

import (
	"context"

	"github.com/pkg/errors"
)

// PipelineResult collects the answer of every stage.
type PipelineResult struct {
	Fill       *Response
	Projection *Response
	Strategy   *Response
}

// Run chains the services the way a client journey does: fill the
// document, project it, then ask for and wait on a strategy for the
// chosen objective.
func (c *Client) Run(ctx context.Context, payload map[string]any, objective, subObjective string, params map[string]any) (*PipelineResult, error) {
	var (
		res PipelineResult
		err error
	)

	if res.Fill, err = c.FillScore(ctx, payload); err != nil {
		return nil, errors.Wrap(err, "fill score")
	}
	if res.Projection, err = c.Project(ctx, res.Fill.Output); err != nil {
		return nil, errors.Wrap(err, "projection")
	}

	req, err := NewStrategyRequest(res.Projection, objective, subObjective, params)
	if err != nil {
		return nil, err
	}
	if _, err = c.InitStrategy(ctx, req); err != nil {
		return nil, errors.Wrap(err, "init strategy")
	}
	if res.Strategy, err = c.PollStrategy(ctx, req.RequestID); err != nil {
		return nil, errors.Wrap(err, "poll strategy")
	}
	return &res, nil
}
