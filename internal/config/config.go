package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

// SeverityRule is a named override: when its condition matches an area, the
// rule contributes Description to the reasoning trail and, for HIGH rules,
// floors the score at 0.8.
type SeverityRule struct {
	Level       string `toml:"level"`
	Description string `toml:"description"`
}

type SeverityConfig struct {
	// Keyword -> additive weight, matched as substrings of negative findings.
	Weights map[string]float64 `toml:"weights"`

	// Multiplier names: multiple_areas, structural, wet_areas.
	AreaMultipliers map[string]float64 `toml:"area_multipliers"`

	HighThreshold   float64 `toml:"high_threshold"`
	MediumThreshold float64 `toml:"medium_threshold"`

	Rules map[string]SeverityRule `toml:"rules"`
}

// CorrelationPattern pairs a negative-side and a positive-side keyword pattern
// with the root cause that the pair suggests.
type CorrelationPattern struct {
	Negative  string `toml:"negative"`
	Positive  string `toml:"positive"`
	RootCause string `toml:"root_cause"`
}

type CorrelationConfig struct {
	Patterns []CorrelationPattern `toml:"patterns"`

	// Area-name substring -> substrings of areas considered adjacent to it.
	AdjacentAreas map[string][]string `toml:"adjacent_areas"`

	// Area type classification keywords (wet_area, living_area, ...).
	AreaKeywords map[string][]string `toml:"area_keywords"`
}

type DeduplicationConfig struct {
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	UseEmbeddings       bool    `toml:"use_embeddings"`
}

type Config struct {
	LLM           LLMConfig           `toml:"llm"`
	Severity      SeverityConfig      `toml:"severity"`
	Correlation   CorrelationConfig   `toml:"correlation"`
	Deduplication DeduplicationConfig `toml:"deduplication"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	// Decode into a zero config, then backfill the tables the file left out.
	// Unmarshaling over Default() would append re-declared pattern arrays
	// instead of replacing them.
	cfg := &Config{
		Deduplication: DeduplicationConfig{UseEmbeddings: true},
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	d := Default()

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = d.LLM.Provider
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = d.LLM.Model
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = d.LLM.BaseURL
	}

	if len(cfg.Severity.Weights) == 0 {
		cfg.Severity.Weights = d.Severity.Weights
	}
	if len(cfg.Severity.AreaMultipliers) == 0 {
		cfg.Severity.AreaMultipliers = d.Severity.AreaMultipliers
	}
	if cfg.Severity.HighThreshold == 0 {
		cfg.Severity.HighThreshold = d.Severity.HighThreshold
	}
	if cfg.Severity.MediumThreshold == 0 {
		cfg.Severity.MediumThreshold = d.Severity.MediumThreshold
	}
	if len(cfg.Severity.Rules) == 0 {
		cfg.Severity.Rules = d.Severity.Rules
	}

	if len(cfg.Correlation.Patterns) == 0 {
		cfg.Correlation.Patterns = d.Correlation.Patterns
	}
	if len(cfg.Correlation.AdjacentAreas) == 0 {
		cfg.Correlation.AdjacentAreas = d.Correlation.AdjacentAreas
	}
	if len(cfg.Correlation.AreaKeywords) == 0 {
		cfg.Correlation.AreaKeywords = d.Correlation.AreaKeywords
	}

	if cfg.Deduplication.SimilarityThreshold == 0 {
		cfg.Deduplication.SimilarityThreshold = d.Deduplication.SimilarityThreshold
	}
}

// Default returns the built-in rule tables so the engine runs without a config
// file. A TOML file replaces whatever tables it declares; unset tables keep
// these values.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3",
			BaseURL:  "http://localhost:11434",
		},
		Severity: SeverityConfig{
			Weights: map[string]float64{
				"leakage":       1.0,
				"dampness":      0.7,
				"crack":         0.6,
				"efflorescence": 0.5,
				"tile gap":      0.4,
				"seepage":       0.6,
			},
			AreaMultipliers: map[string]float64{
				"multiple_areas": 1.5,
				"structural":     1.8,
				"wet_areas":      1.3,
			},
			HighThreshold:   0.75,
			MediumThreshold: 0.45,
			Rules: map[string]SeverityRule{
				"active_leakage_plumbing": {
					Level:       "HIGH",
					Description: "Active leakage with plumbing issues requires immediate attention",
				},
				"external_crack_internal_damp": {
					Level:       "HIGH",
					Description: "External cracks combined with internal dampness suggest water ingress",
				},
				"recurring_dampness": {
					Level:       "MEDIUM",
					Description: "Recurring dampness across multiple areas indicates ongoing moisture ingress",
				},
				"skirting_dampness_multiple": {
					Level:       "MEDIUM",
					Description: "Skirting dampness in multiple rooms indicates ground-level moisture issue",
				},
				"tile_gaps_adjacent_damp": {
					Level:       "MEDIUM",
					Description: "Tile joint gaps with adjacent area dampness suggest plumbing seepage",
				},
				"mild_isolated": {
					Level:       "LOW",
					Description: "Mild and isolated dampness with no active leakage",
				},
			},
		},
		Correlation: CorrelationConfig{
			Patterns: []CorrelationPattern{
				{
					Negative:  "skirting dampness",
					Positive:  "tile joint gap",
					RootCause: "Plumbing seepage from bathroom through tile joints causing dampness in adjacent room skirting",
				},
				{
					Negative:  "dampness",
					Positive:  "external wall crack",
					RootCause: "Water ingress through external wall cracks leading to internal dampness",
				},
				{
					Negative:  "ceiling leakage",
					Positive:  "plumbing issue",
					RootCause: "Plumbing leakage from above unit causing ceiling water damage",
				},
				{
					Negative:  "wall dampness",
					Positive:  "tile joint gap",
					RootCause: "Moisture migration through compromised tile joints in wet areas",
				},
				{
					Negative:  "efflorescence",
					Positive:  "dampness",
					RootCause: "Prolonged moisture exposure causing salt crystallization (efflorescence)",
				},
			},
			AdjacentAreas: map[string][]string{
				"common_bathroom": {"hall", "common_bedroom"},
				"master_bathroom": {"master_bedroom"},
				"kitchen":         {"hall", "common_bedroom"},
				"parking":         {"hall"},
			},
			AreaKeywords: map[string][]string{
				"wet_area":    {"bathroom", "kitchen", "toilet", "washroom"},
				"living_area": {"hall", "living", "drawing", "lounge"},
				"bedroom":     {"bedroom", "master", "common"},
				"utility":     {"parking", "balcony", "terrace", "corridor"},
			},
		},
		Deduplication: DeduplicationConfig{
			SimilarityThreshold: 0.85,
			UseEmbeddings:       true,
		},
	}
}
