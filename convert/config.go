package convert

import (
	"bytes"
	stderrors "errors"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/wippyai/esmconv/errors"
)

// Config selects the runtime helper names the converter recognizes.
// The zero value matches nothing; start from DefaultConfig.
type Config struct {
	// Namespaces lists the identifiers the bundler binds its runtime
	// helper object to.
	Namespaces []string `toml:"namespaces"`
	// Marker is the helper method that flags a module as ESM.
	Marker string `toml:"marker"`
	// Definer is the helper method that declares one export getter.
	Definer string `toml:"definer"`
	// CheckCollisions runs a scope-aware check before each rename and skips
	// exports whose new name would capture or shadow another binding.
	CheckCollisions bool `toml:"check_collisions"`
}

// DefaultConfig matches webpack's runtime helpers.
func DefaultConfig() Config {
	return Config{
		Namespaces: []string{"require", "__webpack_require__"},
		Marker:     "r",
		Definer:    "d",
	}
}

// Validate reports a config that could never match anything.
func (c Config) Validate() error {
	if len(c.Namespaces) == 0 {
		return errors.InvalidInput(errors.PhaseConfig, "no namespaces configured")
	}
	for _, ns := range c.Namespaces {
		if ns == "" {
			return errors.InvalidInput(errors.PhaseConfig, "empty namespace name")
		}
		if !isIdentifierName(ns) {
			return errors.InvalidInput(errors.PhaseConfig, "namespace "+ns+" is not an identifier")
		}
	}
	if c.Marker == "" || c.Definer == "" {
		return errors.InvalidInput(errors.PhaseConfig, "marker and definer names are required")
	}
	if !isIdentifierName(c.Marker) || !isIdentifierName(c.Definer) {
		return errors.InvalidInput(errors.PhaseConfig, "marker and definer must be identifiers")
	}
	return nil
}

// ParseConfig decodes TOML. Omitted keys take their DefaultConfig values
// and unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var se *toml.StrictMissingError
		if stderrors.As(err, &se) {
			return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "unknown configuration keys")
		}
		b := errors.New(errors.PhaseConfig, errors.KindSyntax).Cause(err).Detail("invalid TOML")
		var de *toml.DecodeError
		if stderrors.As(err, &de) {
			row, col := de.Position()
			b = b.At(row, col)
		}
		return Config{}, b.Build()
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Namespaces == nil {
		c.Namespaces = def.Namespaces
	}
	if c.Marker == "" {
		c.Marker = def.Marker
	}
	if c.Definer == "" {
		c.Definer = def.Definer
	}
	return c
}

// LoadConfig reads a TOML config file. An empty path yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			File(path).Cause(err).Detail("read config").Build()
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.WithFile(err, path)
	}
	return cfg, nil
}
