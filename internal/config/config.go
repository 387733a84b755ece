// Package config holds the run configuration: service endpoints, request
// timeout and the catalogue cascade. Defaults cover the standard CDS services;
// a YAML file can overlay any of them.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-starcolor/internal/catalog"
)

// Duration wraps time.Duration with YAML support for strings like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	err := value.Decode(&raw)
	if err != nil {
		return errors.Wrap(err, "duration must be a string")
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", raw)
	}
	*d = Duration(parsed)

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config is the full run configuration.
type Config struct {
	VizierURL string           `yaml:"vizier_url"`
	SimbadURL string           `yaml:"simbad_url"`
	Timeout   Duration         `yaml:"timeout"`
	Simbad    bool             `yaml:"simbad"`
	Catalogs  []catalog.Source `yaml:"catalogs"`
}

// Default returns the built-in configuration: the CDS mirrors and the
// GCPD -> APASS9 -> Tycho-2 cascade with the SIMBAD flux fallback.
func Default() *Config {
	return &Config{
		VizierURL: "https://vizier.cds.unistra.fr",
		SimbadURL: "https://simbad.cds.unistra.fr",
		Timeout:   Duration(30 * time.Second),
		Simbad:    true,
		Catalogs: []catalog.Source{
			{Name: "GCPD", ID: "II/215", Columns: []string{"Vmag", "B-V", "U-B"}},
			{Name: "APASS", ID: "II/336/apass9", Columns: []string{"Vmag", "Bmag", "B-V"}},
			{Name: "Tycho-2", ID: "I/259/tyc2", Columns: []string{"BTmag", "VTmag"}, Tycho: true},
		},
	}
}

// Load returns the default configuration overlaid with the given YAML file.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read config file %s", path)
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse config file %s", path)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}

	return cfg, nil
}

// Validate rejects configurations the resolver cannot run with.
func (c *Config) Validate() error {
	if c.VizierURL == "" {
		return errors.New("vizier_url must be set")
	}
	if c.Simbad && c.SimbadURL == "" {
		return errors.New("simbad_url must be set when the SIMBAD fallback is enabled")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if len(c.Catalogs) == 0 && !c.Simbad {
		return errors.New("at least one catalogue or the SIMBAD fallback is required")
	}
	for i, src := range c.Catalogs {
		if src.ID == "" {
			return errors.Errorf("catalogue %d is missing its VizieR id", i)
		}
		if src.Name == "" {
			return errors.Errorf("catalogue %s is missing its name", src.ID)
		}
	}

	return nil
}
