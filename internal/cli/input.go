package cli

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"patrimony-engine/internal/impute"
	"patrimony-engine/internal/model"
	"patrimony-engine/internal/simerr"
)

//go:embed household.yaml
var defaultHousehold []byte

// DefaultRequest returns the sample household of the client form.
func DefaultRequest() (*model.SimulationRequest, error) {
	return decodeRequest("household.yaml", defaultHousehold)
}

// loadRequest reads a request file, YAML or JSON by extension.
func loadRequest(path string) (*model.SimulationRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return decodeRequest(path, b)
}

func decodeRequest(path string, b []byte) (*model.SimulationRequest, error) {
	var req model.SimulationRequest
	if hasYAMLExt(path) {
		if err := yaml.Unmarshal(b, &req); err != nil {
			return nil, simerr.WrapValidation("cli.input", errors.Wrapf(err, "decode %s", path))
		}
		return &req, nil
	}
	if err := json.Unmarshal(b, &req); err != nil {
		return nil, simerr.WrapValidation("cli.input", errors.Wrapf(err, "decode %s", path))
	}
	return &req, nil
}

// loadTemplate reads a template file, or returns the built-in one when path
// is empty.
func loadTemplate(path string) (map[string]any, error) {
	if path == "" {
		return impute.DefaultTemplate()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read template %s", path)
	}
	return impute.ParseTemplate(b)
}

func hasYAMLExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
