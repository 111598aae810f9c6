package handler

import (
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"patrimony-engine/internal/config"
	"patrimony-engine/internal/engine"
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/simerr"
)

const (
	PathSimulate = "/v1/simulate"
	PathHealth   = "/healthz"
)

// Handler serves simulation runs over HTTP.
type Handler struct {
	template    map[string]any
	logger      *slog.Logger
	now         func() time.Time
	defaultMode model.Mode
}

// New builds a handler. template is shared read-only by concurrent requests.
func New(template map[string]any, logger *slog.Logger, defaultMode model.Mode, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{template: template, logger: logger, now: now, defaultMode: defaultMode}
}

// Serve routes a request.
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case PathSimulate:
		h.handleSimulate(ctx)
	case PathHealth:
		h.handleHealth(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Unknown path: "+string(ctx.Path()))
	}
}

func (h *Handler) handleHealth(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleSimulate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	body := ctx.PostBody()
	if !json.Valid(body) {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body")
		return
	}

	opts := engine.Options{
		Template: h.template,
		Now:      h.now,
		Logger:   h.logger,
		Patch:    ctx.QueryArgs().GetBool("patch"),
	}

	// Well-formed JSON with a bad field value, e.g. a non-numeric amount.
	var req model.SimulationRequest
	err := json.Unmarshal(body, &req)
	if req.Mode == "" {
		req.Mode = h.defaultMode
	}
	if err != nil {
		writeJSON(ctx, fasthttp.StatusOK, engine.Reject(&req, simerr.WrapValidation("handler.decode", err), opts))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, engine.Process(&req, opts))
}

// Server wraps the handler in a fasthttp server tuned by cfg.
func (h *Handler) Server(cfg *config.Config) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            h.Serve,
		Name:               cfg.Env.ServiceName,
		ReadTimeout:        cfg.HTTP.Timeouts.ReadTimeout,
		WriteTimeout:       cfg.HTTP.Timeouts.WriteTimeout,
		IdleTimeout:        cfg.HTTP.Timeouts.IdleTimeout,
		MaxRequestBodySize: cfg.HTTP.MaxRequestBodySize,
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error(`{"status":500,"message":"encode response"}`, fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
