package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// EnvPrefix scopes the environment variables that override file values,
// e.g. PATSIM_HTTP_PORT -> http.port.
const EnvPrefix = "PATSIM_"

const defaultPath = "."

//go:embed defaults.yaml
var defaults []byte

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int `json:"port" yaml:"port"`
		MaxRequestBodySize int `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`

		Timeouts struct {
			ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
			WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout  time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	Algo AlgoConfig `json:"algo" yaml:"algo"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SimulationConfig selects the document template and the run defaults.
type SimulationConfig struct {
	// TemplatePath points at a JSON template; empty uses the built-in one.
	TemplatePath string `json:"templatePath" yaml:"templatePath"`
	DefaultMode  string `json:"defaultMode" yaml:"defaultMode"`
	// ValuationDate pins "today" as YYYY-MM-DD; empty uses the clock.
	ValuationDate string `json:"valuationDate" yaml:"valuationDate"`
}

// AlgoConfig locates the scoring and strategy services.
type AlgoConfig struct {
	FillScoreURL    string        `json:"fillScoreURL" yaml:"fillScoreURL"`
	ProjectionURL   string        `json:"projectionURL" yaml:"projectionURL"`
	InitStrategyURL string        `json:"initStrategyURL" yaml:"initStrategyURL"`
	PollStrategyURL string        `json:"pollStrategyURL" yaml:"pollStrategyURL"`
	PollInterval    time.Duration `json:"pollInterval" yaml:"pollInterval"`
	Timeout         time.Duration `json:"timeout" yaml:"timeout"`

	// AWS signs requests with SigV4 when credentials are set.
	AWS struct {
		Region          string `json:"region" yaml:"region"`
		Service         string `json:"service" yaml:"service"`
		AccessKeyID     string `json:"accessKeyID" yaml:"accessKeyID"`
		SecretAccessKey string `json:"secretAccessKey" yaml:"secretAccessKey"`
		SessionToken    string `json:"sessionToken" yaml:"sessionToken"`
	} `json:"aws" yaml:"aws"`
}

// bytesProvider feeds an in-memory YAML document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, errors.New("bytesProvider does not support Read")
}

// LoadWithEnv layers the built-in defaults, the first <currEnv>.yaml found
// in the search paths and PATSIM_* environment variables.
// A missing file is not an error.
func LoadWithEnv(currEnv string, configPath ...string) (*Config, error) {
	cfg := new(Config)
	koanfInstance := koanf.New(".")

	if err := koanfInstance.Load(bytesProvider(defaults), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "read default config failed")
	}

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)
				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := koanfInstance.Load(file.Provider(candidate), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s config failed", currEnv)
		}
		break
	}

	existingConfigMap := koanfInstance.Raw()

	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(strings.TrimPrefix(k, EnvPrefix), existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, cfg.validate()
}

// New loads config.yaml from the usual locations.
func New() (*Config, error) {
	return LoadWithEnv("config", "config", "../config", "../../config")
}

// Valuation returns the pinned valuation date, or the zero time when the
// clock should be used.
func (c *Config) Valuation() (time.Time, error) {
	if c.Simulation.ValuationDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", c.Simulation.ValuationDate)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "simulation.valuationDate")
	}
	return t, nil
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return errors.Errorf("http.port %d out of range", c.HTTP.Port)
	}
	switch c.Simulation.DefaultMode {
	case "manual", "auto":
	default:
		return errors.Errorf("simulation.defaultMode must be manual or auto, got %q", c.Simulation.DefaultMode)
	}
	if c.Algo.PollInterval <= 0 {
		return errors.Errorf("algo.pollInterval must be positive, got %s", c.Algo.PollInterval)
	}
	if _, err := c.Valuation(); err != nil {
		return err
	}
	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
