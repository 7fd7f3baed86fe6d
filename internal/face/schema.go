package face

import (
	"strings"
)

// SchemaKind is the detector output layout.
type SchemaKind string

const (
	SchemaAuto   SchemaKind = "auto"
	SchemaDirect SchemaKind = "direct"
	SchemaAnchor SchemaKind = "anchor"
)

// SchemaConfig declares the output tensor names for each layout.
type SchemaConfig struct {
	Kind           SchemaKind
	Boxes          string
	Scores         string
	Regressors     string
	Classificators string
}

// DefaultSchemaConfig returns the common output names.
func DefaultSchemaConfig() SchemaConfig {
	return SchemaConfig{
		Kind:           SchemaAuto,
		Boxes:          "boxes",
		Scores:         "scores",
		Regressors:     "regressors",
		Classificators: "classificators",
	}
}

// Schema is the resolved detector output layout with the tensor names to read.
type Schema struct {
	Kind   SchemaKind `json:"kind"`
	First  string     `json:"first"`
	Second string     `json:"second"`
}

// String returns the schema as string.
func (s Schema) String() string {
	return string(s.Kind) + "(" + s.First + ", " + s.Second + ")"
}

// ResolveSchema classifies the declared model outputs once at load time.
// Names must match exactly, auto requires exactly one layout to match.
func ResolveSchema(outputs []string, c SchemaConfig) (Schema, error) {
	names := make(map[string]bool, len(outputs))

	for _, n := range outputs {
		names[n] = true
	}

	direct := c.Boxes != "" && c.Scores != "" && names[c.Boxes] && names[c.Scores]
	anchor := c.Regressors != "" && c.Classificators != "" && names[c.Regressors] && names[c.Classificators]

	directSchema := Schema{Kind: SchemaDirect, First: c.Boxes, Second: c.Scores}
	anchorSchema := Schema{Kind: SchemaAnchor, First: c.Regressors, Second: c.Classificators}
	declared := strings.Join(outputs, ", ")

	switch c.Kind {
	case SchemaDirect:
		if !direct {
			return Schema{}, ErrUnknownSchema.Withf("direct layout needs %s and %s, model declares [%s]", c.Boxes, c.Scores, declared)
		}

		return directSchema, nil
	case SchemaAnchor:
		if !anchor {
			return Schema{}, ErrUnknownSchema.Withf("anchor layout needs %s and %s, model declares [%s]", c.Regressors, c.Classificators, declared)
		}

		return anchorSchema, nil
	case SchemaAuto, "":
		switch {
		case direct && anchor:
			return Schema{}, ErrUnknownSchema.Withf("ambiguous outputs [%s]", declared)
		case direct:
			return directSchema, nil
		case anchor:
			return anchorSchema, nil
		default:
			return Schema{}, ErrUnknownSchema.Withf("model declares [%s]", declared)
		}
	default:
		return Schema{}, ErrUnknownSchema.Withf("unsupported layout %s", c.Kind)
	}
}
