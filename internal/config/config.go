// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pbnjay/memory"
	"gopkg.in/yaml.v3"

	"degen-core/degenerate"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the whole degen configuration file.
type Config struct {
	Engine  Engine  `yaml:"engine"`
	Server  Server  `yaml:"server"`
	Cache   Cache   `yaml:"cache"`
	Log     Log     `yaml:"log"`
	Tracing Tracing `yaml:"tracing"`
}

type Engine struct {
	MaxDuration     time.Duration `yaml:"max_duration" validate:"gte=0"`
	MaxCombinations int           `yaml:"max_combinations" validate:"gte=0"`
	Coverage        string        `yaml:"coverage" validate:"oneof=all any"`
	Table           string        `yaml:"table"` // path to a YAML/JSON codon table; empty = standard
}

type Server struct {
	Addr           string        `yaml:"addr" validate:"required"`
	Workers        int           `yaml:"workers" validate:"gte=1"`
	RateLimit      float64       `yaml:"rate_limit" validate:"gte=0"` // requests/second; 0 disables
	Burst          int           `yaml:"burst" validate:"gte=1"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
}

type Cache struct {
	Size int           `yaml:"size" validate:"gte=0"` // in-memory entries; 0 = derived from system memory
	Dir  string        `yaml:"dir"`                   // badger directory; empty disables the disk tier
	TTL  time.Duration `yaml:"ttl" validate:"gte=0"`
}

type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type Tracing struct {
	Exporter string `yaml:"exporter" validate:"oneof=none stdout"`
}

func Default() Config {
	eng := degenerate.DefaultConfig()
	return Config{
		Engine: Engine{
			MaxDuration:     eng.MaxDuration,
			MaxCombinations: eng.MaxCombinations,
			Coverage:        string(eng.Coverage),
		},
		Server: Server{
			Addr:           ":8080",
			Workers:        4,
			RateLimit:      20,
			Burst:          40,
			RequestTimeout: 2 * time.Minute,
		},
		Cache:   Cache{Size: 0, TTL: 24 * time.Hour},
		Log:     Log{Level: "info", Format: "text"},
		Tracing: Tracing{Exporter: "none"},
	}
}

// Load reads path onto Default(). An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML onto Default() and validates the result. Unknown keys are errors.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%w: %s fails %q (value %v)", ErrInvalid, f.Namespace(), f.Tag(), f.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// EngineConfig converts the engine section for degenerate.New.
func (c Config) EngineConfig() degenerate.Config {
	return degenerate.Config{
		MaxDuration:     c.Engine.MaxDuration,
		MaxCombinations: c.Engine.MaxCombinations,
		Coverage:        degenerate.Coverage(c.Engine.Coverage),
	}
}

// CacheSize resolves Cache.Size, deriving one entry per MiB of system
// memory (clamped to [1024, 65536]) when unset.
func (c Config) CacheSize() int {
	if c.Cache.Size > 0 {
		return c.Cache.Size
	}
	n := int(memory.TotalMemory() >> 20)
	switch {
	case n < 1024:
		return 1024
	case n > 65536:
		return 65536
	}
	return n
}
