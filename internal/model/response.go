package model

import "patrimony-engine/internal/jsonpatch"

type SimulationResponse struct {
	SimulationMetadata SimulationMetadata `json:"simulation_metadata"`
	SimulationResult   SimulationResult   `json:"simulation_result"`
}

type SimulationMetadata struct {
	SimulationID          string `json:"simulation_id"`
	TenantID              string `json:"tenant_id,omitempty"`
	Mode                  Mode   `json:"mode"`
	Seed                  int64  `json:"seed"`
	SimulationStartedAt   string `json:"simulation_started_at"`
	SimulationCompletedAt string `json:"simulation_completed_at"`
	SimulationDurationMs  int64  `json:"simulation_duration_ms"`
	SimulationOutcome     string `json:"simulation_outcome"`
}

type SimulationResult struct {
	Messages      []CalculationMessage `json:"messages"`
	Profile       *Profile             `json:"profile"`
	Payload       map[string]any       `json:"payload"`
	TemplatePatch []jsonpatch.Op       `json:"template_patch,omitempty"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
