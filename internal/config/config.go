// Package config provides configuration loading for evalcorpus.
package config

import (
	"fmt"

	"github.com/jonwraymond/evalcorpus/corpus"
	"github.com/jonwraymond/evalcorpus/relevance"
	"github.com/jonwraymond/evalcorpus/snippet"
	"github.com/jonwraymond/evalcorpus/synth"
)

// Config is the full runtime configuration.
type Config struct {
	Generate GenerateConfig `koanf:"generate"`
	Fetch    FetchConfig    `koanf:"fetch"`
	Log      LogConfig      `koanf:"log"`
}

// BandConfig is a snippet length window in bytes.
type BandConfig struct {
	Min int `koanf:"min"`
	Max int `koanf:"max"`
}

// ThresholdConfig holds the strict band similarity cutoffs.
type ThresholdConfig struct {
	High      float64 `koanf:"high"`
	MediumMin float64 `koanf:"medium_min"`
	MediumMax float64 `koanf:"medium_max"`
	LowMax    float64 `koanf:"low_max"`
}

// GenerateConfig holds the dataset generation parameters.
type GenerateConfig struct {
	TargetCount   int   `koanf:"target_count"`
	MinimumAccept int   `koanf:"minimum_accept"`
	Seed          int64 `koanf:"seed"`
	MinUsableText int   `koanf:"min_usable_text"`

	QueryBand       BandConfig `koanf:"query_band"`
	GroundTruthBand BandConfig `koanf:"ground_truth_band"`
	RelevanceBand   BandConfig `koanf:"relevance_band"`

	Thresholds ThresholdConfig `koanf:"thresholds"`
}

// FetchConfig holds the GitHub corpus acquisition parameters.
type FetchConfig struct {
	Query        string `koanf:"query"`
	MaxRepos     int    `koanf:"max_repos"`
	TokenEnv     string `koanf:"token_env"`
	FetchReadmes bool   `koanf:"fetch_readmes"`
}

// LogConfig holds logger construction parameters.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	g := &cfg.Generate
	if g.TargetCount == 0 {
		g.TargetCount = 210
	}
	if g.MinimumAccept == 0 {
		g.MinimumAccept = 200
	}
	if g.MinUsableText == 0 {
		g.MinUsableText = 80
	}
	applyBandDefaults(&g.QueryBand, 80, 320)
	applyBandDefaults(&g.GroundTruthBand, 150, 600)
	applyBandDefaults(&g.RelevanceBand, 80, 320)

	t := &g.Thresholds
	if t.High == 0 {
		t.High = 0.30
	}
	if t.MediumMin == 0 {
		t.MediumMin = 0.06
	}
	if t.MediumMax == 0 {
		t.MediumMax = 0.30
	}
	if t.LowMax == 0 {
		t.LowMax = 0.02
	}

	if cfg.Fetch.Query == "" {
		cfg.Fetch.Query = "service discovery architecture"
	}
	if cfg.Fetch.MaxRepos == 0 {
		cfg.Fetch.MaxRepos = 200
	}
	if cfg.Fetch.TokenEnv == "" {
		cfg.Fetch.TokenEnv = "GITHUB_TOKEN"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func applyBandDefaults(b *BandConfig, min, max int) {
	if b.Min == 0 {
		b.Min = min
	}
	if b.Max == 0 {
		b.Max = max
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	g := c.Generate
	if g.MinimumAccept > g.TargetCount {
		return fmt.Errorf("generate.minimum_accept %d exceeds generate.target_count %d",
			g.MinimumAccept, g.TargetCount)
	}
	if g.MinUsableText < 50 || g.MinUsableText > 200 {
		return fmt.Errorf("generate.min_usable_text %d outside [50, 200]", g.MinUsableText)
	}
	for _, band := range []struct {
		name string
		b    BandConfig
	}{
		{"generate.query_band", g.QueryBand},
		{"generate.ground_truth_band", g.GroundTruthBand},
		{"generate.relevance_band", g.RelevanceBand},
	} {
		if band.b.Min <= 0 || band.b.Max < band.b.Min {
			return fmt.Errorf("%s {min %d, max %d} is not a valid window",
				band.name, band.b.Min, band.b.Max)
		}
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q must be json or console", c.Log.Format)
	}
	return nil
}

// PoolOptions maps the generation section onto pool construction.
func (c *Config) PoolOptions() corpus.PoolOptions {
	return corpus.PoolOptions{MinUsableText: c.Generate.MinUsableText}
}

// BuilderConfig maps the generation section onto the record builder.
func (c *Config) BuilderConfig() synth.BuilderConfig {
	g := c.Generate
	return synth.BuilderConfig{
		QueryBand:       snippet.Band{Min: g.QueryBand.Min, Max: g.QueryBand.Max},
		GroundTruthBand: snippet.Band{Min: g.GroundTruthBand.Min, Max: g.GroundTruthBand.Max},
		RelevanceBand:   snippet.Band{Min: g.RelevanceBand.Min, Max: g.RelevanceBand.Max},
	}
}

// AssemblerConfig maps the generation section onto the assembler.
func (c *Config) AssemblerConfig() synth.AssemblerConfig {
	return synth.AssemblerConfig{
		TargetCount:   c.Generate.TargetCount,
		MinimumAccept: c.Generate.MinimumAccept,
	}
}

// Thresholds maps the generation section onto the classifier cutoffs.
func (c *Config) Thresholds() relevance.Thresholds {
	t := c.Generate.Thresholds
	return relevance.Thresholds{
		High:      t.High,
		MediumMin: t.MediumMin,
		MediumMax: t.MediumMax,
		LowMax:    t.LowMax,
	}
}
