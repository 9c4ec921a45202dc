package weights

import (
	"embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	yamlv3 "gopkg.in/yaml.v3"
)

//go:embed schemas/weights.cue
var schemaFS embed.FS

// Override is the shape of the optional weights override file. Absent
// sections leave the built-in defaults untouched; factor and multiplier
// entries override individual values without replacing whole tables.
type Override struct {
	Categories  map[string]float64            `yaml:"categories"`
	Factors     map[string]map[string]float64 `yaml:"factors"`
	Multipliers map[string]map[string]float64 `yaml:"multipliers"`
	Grades      map[string]int                `yaml:"grades"`
}

// Load returns the weight configuration, validated. With an empty path the
// built-in defaults are returned; otherwise the YAML override at path is
// schema-checked with CUE, merged over the defaults, and the merged result
// validated. Any failure here is a programming or deployment mistake and
// callers treat it as fatal.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading weights file: %w", err)
		}

		var raw map[string]any
		if err := yamlv3.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing weights file: %w", err)
		}
		if err := validateOverrideSchema(raw); err != nil {
			return nil, fmt.Errorf("weights file %s: %w", path, err)
		}

		var ov Override
		if err := yamlv3.Unmarshal(data, &ov); err != nil {
			return nil, fmt.Errorf("parsing weights file: %w", err)
		}
		applyOverride(cfg, &ov)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weight configuration: %w", err)
	}
	return cfg, nil
}

// validateOverrideSchema checks the raw override document against the
// embedded CUE schema before it is unmarshalled into typed form.
func validateOverrideSchema(data map[string]any) error {
	content, err := schemaFS.ReadFile("schemas/weights.cue")
	if err != nil {
		return fmt.Errorf("could not read embedded schema: %w", err)
	}

	ctx := cuecontext.New()
	inst := ctx.CompileBytes(content, cue.Filename("weights.cue"))
	if err := inst.Err(); err != nil {
		return fmt.Errorf("could not compile schema: %w", err)
	}

	def := inst.LookupPath(cue.ParsePath("#Weights"))
	if !def.Exists() {
		return fmt.Errorf("schema definition #Weights not found")
	}

	dataValue := ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return fmt.Errorf("error encoding override data: %w", err)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// applyOverride merges override values onto the default configuration.
func applyOverride(cfg *Config, ov *Override) {
	for i, cw := range cfg.Categories {
		if w, ok := ov.Categories[cw.Key]; ok {
			cfg.Categories[i].Weight = w
		}
	}

	for catKey, factors := range ov.Factors {
		list, ok := cfg.Factors[catKey]
		if !ok {
			continue
		}
		for i, f := range list {
			if max, ok := factors[f.Name]; ok {
				list[i].Max = max
			}
		}
	}

	for ctxName, table := range ov.Multipliers {
		dst, ok := cfg.Multipliers[ctxName]
		if !ok {
			continue
		}
		for key, v := range table {
			dst[key] = v
		}
	}

	for i, g := range cfg.Grades {
		if min, ok := ov.Grades[g.Grade]; ok {
			cfg.Grades[i].Min = min
		}
	}
}
