package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/talgya/settleplan/internal/selection"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("scenario.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// scalar keeps a YAML scalar's text so classes and categories can be given
// either as ordinals or as names.
type scalar string

func (s *scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a scalar", ErrSyntax, node.Line)
	}
	*s = scalar(node.Value)
	return nil
}

type yamlDocument struct {
	Settlements []struct {
		Name  string `yaml:"name"`
		Class scalar `yaml:"class"`
	} `yaml:"settlements"`
	Facilities []struct {
		Name        string `yaml:"name"`
		Category    scalar `yaml:"category"`
		Cost        int    `yaml:"cost"`
		LifeQuality int    `yaml:"life_quality"`
		Economy     int    `yaml:"economy"`
		Environment int    `yaml:"environment"`
	} `yaml:"facilities"`
	Plans []struct {
		Settlement string `yaml:"settlement"`
		Policy     string `yaml:"policy"`
	} `yaml:"plans"`
}

// ParseYAML reads the YAML format.
func ParseYAML(data []byte) (*Scenario, error) {
	if err := validateShape(data); err != nil {
		return nil, err
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	sc := &Scenario{}
	for i, s := range doc.Settlements {
		st, err := ParseSettlement(s.Name, string(s.Class))
		if err != nil {
			return nil, fmt.Errorf("settlements[%d]: %w", i, err)
		}
		sc.Settlements = append(sc.Settlements, st)
	}
	for i, f := range doc.Facilities {
		ft, err := ParseFacility([]string{
			f.Name, string(f.Category), strconv.Itoa(f.Cost),
			strconv.Itoa(f.LifeQuality), strconv.Itoa(f.Economy), strconv.Itoa(f.Environment),
		})
		if err != nil {
			return nil, fmt.Errorf("facilities[%d]: %w", i, err)
		}
		sc.Facilities = append(sc.Facilities, ft)
	}
	for i, p := range doc.Plans {
		code, err := selection.ParseCode(p.Policy)
		if err != nil {
			return nil, fmt.Errorf("plans[%d]: %w", i, err)
		}
		sc.Plans = append(sc.Plans, PlanEntry{Settlement: p.Settlement, Policy: code})
	}
	return sc, nil
}

// validateShape checks the raw document against the embedded schema. YAML is
// round-tripped through JSON so the validator sees JSON numbers.
func validateShape(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing scenario YAML: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	buf, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaFailure, err)
	}
	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaFailure, err)
	}

	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaFailure, err)
	}
	return nil
}
