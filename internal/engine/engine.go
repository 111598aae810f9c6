package engine

import (
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"patrimony-engine/internal/calibration"
	"patrimony-engine/internal/generators"
	"patrimony-engine/internal/impute"
	"patrimony-engine/internal/jsonpatch"
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/simerr"
)

var validate = validator.New()

// Options tunes one simulation run. Zero values fall back to the built-in
// template, the wall clock and a discarding logger.
type Options struct {
	Template map[string]any
	Now      func() time.Time
	Logger   *slog.Logger
	// Patch adds the RFC 6902 diff from the template to the payload.
	Patch bool
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Assemble validates req and builds the household profile. Every draw comes
// from rng, so a fixed seed replays the same profile.
func Assemble(req *model.SimulationRequest, rng *rand.Rand, today time.Time) (*model.Profile, []model.CalculationMessage, error) {
	if err := validate.Struct(req); err != nil {
		return nil, nil, simerr.WrapValidation("engine.assemble", err)
	}

	ctx := &generators.Context{Rand: rng, Today: today}
	p := &model.Profile{}

	switch req.Mode {
	case model.ModeManual:
		personal, single, err := generators.PersonalFromInput(req.Situation.Personal, req.Situation.IsSingle)
		if err != nil {
			return nil, nil, err
		}
		cashflow, err := generators.CashflowFromInput(req.Situation.Cashflow, personal, single)
		if err != nil {
			return nil, nil, err
		}
		ctx.IsSingle = single
		p.IsSingle, p.Personal, p.Cashflow = single, personal, cashflow

		for _, d := range generators.Order {
			g, _ := generators.Get(d)
			if err := g.Manual(ctx, amountsFor(req.Amounts, d), p); err != nil {
				return nil, nil, errors.Wrapf(err, "manual %s", d)
			}
		}

	case model.ModeAuto:
		personal, err := generators.RandomPersonal(ctx)
		if err != nil {
			return nil, nil, err
		}
		ctx.IsSingle = model.LivesAlone(personal.UnionType)
		p.IsSingle, p.Personal = ctx.IsSingle, personal
		p.Cashflow = generators.RandomCashflow(ctx, personal)

		for _, d := range generators.Order {
			g, _ := generators.Get(d)
			if err := g.Auto(ctx, countsFor(req.Counts, d), p); err != nil {
				return nil, nil, errors.Wrapf(err, "auto %s", d)
			}
		}
	}

	if err := checkLinks(p); err != nil {
		return nil, nil, err
	}
	return p, ctx.Warnings(), nil
}

// checkLinks verifies that every linked loan points at an existing property
// and does not exceed its value.
func checkLinks(p *model.Profile) error {
	for i, l := range p.Loans {
		if l.LinkedProperty == nil {
			continue
		}
		idx := *l.LinkedProperty
		if idx < 0 || idx >= len(p.RealEstate) {
			return simerr.Linkage("engine.links", "loan %d (%s) links to property %d of %d", i, l.Type, idx, len(p.RealEstate))
		}
		if l.RemainingPrincipal > p.RealEstate[idx].Value {
			return simerr.Linkage("engine.links", "loan %d (%s) principal %.2f exceeds property %d value %.2f",
				i, l.Type, l.RemainingPrincipal, idx, p.RealEstate[idx].Value)
		}
	}
	return nil
}

func amountsFor(a model.Amounts, d calibration.Domain) model.AmountTree {
	switch d {
	case calibration.Financial:
		return a.Financial
	case calibration.RealEstate:
		return a.RealEstate
	case calibration.Professional:
		return a.Professional
	case calibration.Loans:
		return a.Loans
	}
	return nil
}

func countsFor(c model.Counts, d calibration.Domain) model.CountTree {
	switch d {
	case calibration.Financial:
		return c.Financial
	case calibration.RealEstate:
		return c.RealEstate
	case calibration.Professional:
		return c.Professional
	case calibration.Loans:
		return c.Loans
	}
	return nil
}

// Process runs one simulation and wraps the outcome in the response
// envelope. Failures become a CRITICAL message and a FAILURE outcome.
func Process(req *model.SimulationRequest, opts Options) *model.SimulationResponse {
	start := time.Now()
	today := opts.now().UTC()

	seed := today.UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	resp := newResponse(req, seed)
	payload, messages, err := run(req, opts, seed, today, &resp.SimulationResult)
	return finish(resp, opts, start, payload, messages, err)
}

// Reject answers a request whose body could not be decoded with the same
// FAILURE envelope a failed run gets. req holds whatever was decoded.
func Reject(req *model.SimulationRequest, err error, opts Options) *model.SimulationResponse {
	var seed int64
	if req.Seed != nil {
		seed = *req.Seed
	}
	return finish(newResponse(req, seed), opts, time.Now(), nil, nil, err)
}

func newResponse(req *model.SimulationRequest, seed int64) *model.SimulationResponse {
	return &model.SimulationResponse{
		SimulationMetadata: model.SimulationMetadata{
			SimulationID: uuid.New().String(),
			TenantID:     req.TenantID,
			Mode:         req.Mode,
			Seed:         seed,
		},
	}
}

func finish(resp *model.SimulationResponse, opts Options, start time.Time, payload map[string]any, messages []model.CalculationMessage, err error) *model.SimulationResponse {
	log := opts.logger()
	meta := &resp.SimulationMetadata

	outcome := model.OutcomeSuccess
	if err != nil {
		outcome = model.OutcomeFailure
		messages = append(messages, model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    simerr.Code(err),
			Message: err.Error(),
		})
		resp.SimulationResult.Profile = nil
		log.Warn("simulation failed",
			slog.String("simulation_id", meta.SimulationID),
			slog.String("code", simerr.Code(err)),
			slog.String("error", err.Error()))
	} else {
		resp.SimulationResult.Payload = payload
	}

	for i := range messages {
		messages[i].ID = i
	}
	if messages == nil {
		messages = []model.CalculationMessage{}
	}
	resp.SimulationResult.Messages = messages

	elapsed := time.Since(start)
	now := time.Now().UTC()
	meta.SimulationStartedAt = now.Add(-elapsed).Format(time.RFC3339)
	meta.SimulationCompletedAt = now.Format(time.RFC3339)
	meta.SimulationDurationMs = elapsed.Milliseconds()
	meta.SimulationOutcome = outcome

	log.Info("simulation done",
		slog.String("simulation_id", meta.SimulationID),
		slog.String("mode", string(meta.Mode)),
		slog.Int64("seed", meta.Seed),
		slog.String("outcome", outcome),
		slog.Int("messages", len(messages)),
		slog.Duration("elapsed", elapsed))
	return resp
}

func run(req *model.SimulationRequest, opts Options, seed int64, today time.Time, result *model.SimulationResult) (map[string]any, []model.CalculationMessage, error) {
	profile, warnings, err := Assemble(req, rand.New(rand.NewSource(seed)), today)
	if err != nil {
		return nil, nil, err
	}
	result.Profile = profile

	template := opts.Template
	if template == nil {
		if template, err = impute.DefaultTemplate(); err != nil {
			return nil, warnings, err
		}
	}
	payload, err := impute.Impute(template, profile, today)
	if err != nil {
		return nil, warnings, err
	}
	if opts.Patch {
		result.TemplatePatch = jsonpatch.Diff(template, payload, "")
	}
	return payload, warnings, nil
}
