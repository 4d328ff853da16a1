package schema

import (
	"strconv"
	"strings"

	"github.com/wordgrain/wgtools/parser"
)

const defsPrefix = "#/$defs/"

// Definition is the property table of one $defs entry.
type Definition struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Rows        []PropertyRow `json:"properties"`
}

// PropertyRow describes one property of a definition.
type PropertyRow struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Constraints string `json:"constraints,omitempty"`
	Description string `json:"description,omitempty"`
}

// Describe returns a property table for every $defs entry of s that declares
// properties, in document order.
func Describe(s *Schema) []Definition {
	if s == nil {
		return nil
	}
	var defs []Definition
	for _, d := range s.Defs {
		if d.Schema.Object == nil || len(d.Schema.Object.Properties) == 0 {
			continue
		}
		def := Definition{Name: d.Name, Description: d.Schema.Description}
		for _, p := range d.Schema.Object.Properties {
			def.Rows = append(def.Rows, PropertyRow{
				Name:        p.Name,
				Type:        TypeName(p.Schema),
				Required:    d.Schema.Object.IsRequired(p.Name),
				Constraints: Constraints(p.Schema),
				Description: p.Schema.Description,
			})
		}
		defs = append(defs, def)
	}
	return defs
}

// TypeName renders the type of a property the way the schema table shows it:
// a $defs reference by name, arrays as "T[]", formats as "type (format)" and
// enumerations as "enum".
func TypeName(s *Schema) string {
	if s.Ref != "" {
		return strings.TrimPrefix(s.Ref, defsPrefix)
	}
	base := "any"
	if len(s.Types) > 0 {
		base = strings.Join(s.Types, " | ")
	}
	if base == KindArray && s.Array != nil && s.Array.Items != nil {
		items := s.Array.Items
		if items.Ref != "" {
			return strings.TrimPrefix(items.Ref, defsPrefix) + "[]"
		}
		if len(items.Types) > 0 {
			return strings.Join(items.Types, " | ") + "[]"
		}
		return "any[]"
	}
	if s.String != nil && s.String.Format != "" {
		base += " (" + s.String.Format + ")"
	}
	if s.Enum != nil {
		base = KindEnum
	}
	return base
}

// Constraints summarises the validation keywords of a property, for example
// "min: 0; max: 1" or "before, after, either; default: \"either\"".
func Constraints(s *Schema) string {
	var parts []string
	if s.Number != nil {
		if s.Number.Minimum != nil {
			parts = append(parts, "min: "+formatNumber(*s.Number.Minimum))
		}
		if s.Number.Maximum != nil {
			parts = append(parts, "max: "+formatNumber(*s.Number.Maximum))
		}
	}
	if s.String != nil {
		if s.String.MinLength != nil {
			parts = append(parts, "minLength: "+strconv.Itoa(*s.String.MinLength))
		}
		if s.String.MaxLength != nil {
			parts = append(parts, "maxLength: "+strconv.Itoa(*s.String.MaxLength))
		}
		if s.String.Pattern != "" {
			parts = append(parts, "pattern: "+s.String.Pattern)
		}
	}
	if len(s.Enum) > 0 {
		values := make([]string, len(s.Enum))
		for i, v := range s.Enum {
			if str, ok := v.(string); ok {
				values[i] = str
			} else {
				values[i] = parser.Canonical(v)
			}
		}
		parts = append(parts, strings.Join(values, ", "))
	}
	if s.HasDefault {
		parts = append(parts, "default: "+parser.Canonical(s.Default))
	}
	return strings.Join(parts, "; ")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
