package tuning

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed tuning.schema.json
var schemaJSON string

type Tuning struct {
	Seed                 int64 `yaml:"seed"`
	WorldType            int   `yaml:"world_type"`
	WorldGenThreads      int   `yaml:"world_gen_threads"`
	ChunkLoadThreads     int   `yaml:"chunk_load_threads"`
	EnableMultithreading bool  `yaml:"enable_multithreading"`

	LoadRadius    int `yaml:"load_radius"`
	LoadBudget    int `yaml:"load_budget"`
	EvictRadius   int `yaml:"evict_radius"`
	FluidMaxSteps int `yaml:"fluid_max_steps"`
	TickRateHz    int `yaml:"tick_rate_hz"`

	ColdStore ColdStore `yaml:"cold_store"`
}

type ColdStore struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

func Defaults() Tuning {
	return Tuning{
		WorldType:            1,
		WorldGenThreads:      2,
		ChunkLoadThreads:     2,
		EnableMultithreading: true,
		LoadRadius:           6,
		LoadBudget:           250,
		FluidMaxSteps:        1 << 16,
		TickRateHz:           20,
		ColdStore:            ColdStore{Backend: "memory"},
	}
}

// Normalize replaces out-of-range values with defaults.
func (t *Tuning) Normalize() {
	d := Defaults()
	if t.WorldType < 1 || t.WorldType > 3 {
		t.WorldType = d.WorldType
	}
	if t.WorldGenThreads <= 0 {
		t.WorldGenThreads = d.WorldGenThreads
	}
	if t.ChunkLoadThreads <= 0 {
		t.ChunkLoadThreads = d.ChunkLoadThreads
	}
	if t.LoadRadius < 0 {
		t.LoadRadius = d.LoadRadius
	}
	if t.LoadBudget <= 0 {
		t.LoadBudget = d.LoadBudget
	}
	if t.EvictRadius < 0 {
		t.EvictRadius = 0
	}
	if t.EvictRadius > 0 && t.EvictRadius <= t.LoadRadius {
		// Evicting inside the load sphere would thrash.
		t.EvictRadius = t.LoadRadius + 2
	}
	if t.FluidMaxSteps <= 0 {
		t.FluidMaxSteps = d.FluidMaxSteps
	}
	if t.TickRateHz <= 0 {
		t.TickRateHz = d.TickRateHz
	}
	t.ColdStore.Backend = strings.ToLower(strings.TrimSpace(t.ColdStore.Backend))
	if t.ColdStore.Backend == "" {
		t.ColdStore.Backend = d.ColdStore.Backend
	}
}

// Load reads a tuning.yaml, validates it against the embedded schema and
// overlays it on Defaults.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := Validate(raw); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.Normalize()
	return t, nil
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("tuning.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// Validate checks a YAML document against the tuning schema.
func Validate(raw []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	// The validator wants JSON-shaped values; round-trip through encoding/json.
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return s.Validate(v)
}
