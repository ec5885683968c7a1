package output

import (
	"fmt"
	"strings"

	"github.com/lox/notionctl/internal/notion"
)

const (
	maxDisplayedOptions  = 5
	maxExpressionDisplay = 50
)

// SchemaJSON describes every database property with its full configuration.
func SchemaJSON(db notion.Object) DatabaseSchema {
	props := notion.PropertiesOf(db)
	out := DatabaseSchema{
		ID:         db.Str("id"),
		Title:      DatabaseTitle(db),
		URL:        db.Str("url"),
		Properties: make([]PropertySchema, 0, props.Len()),
	}
	for _, name := range props.Names() {
		prop, _ := props.Get(name)
		out.Properties = append(out.Properties, propertySchema(name, prop))
	}
	return out
}

func propertySchema(name string, prop notion.Object) PropertySchema {
	typ := prop.Type()
	config := prop.Map(typ)
	ps := PropertySchema{
		Name: name,
		ID:   prop.Str("id"),
		Type: typ,
	}

	switch typ {
	case "select", "multi_select", "status":
		ps.Options = []SchemaOption{}
		for _, opt := range notion.Objects(config.Value("options")) {
			ps.Options = append(ps.Options, SchemaOption{
				Name:  opt.Str("name"),
				ID:    opt.Str("id"),
				Color: opt.Str("color"),
			})
		}
	case "number":
		if config.Has("format") {
			ps.Format = ptr(config.Str("format"))
		}
	case "formula":
		if config.Has("expression") {
			ps.Expression = ptr(config.Str("expression"))
		}
	case "relation":
		ps.Relation = &RelationConfig{
			DatabaseID:         config.Str("database_id"),
			SyncedPropertyName: config.Str("synced_property_name"),
		}
		if ps.Relation.SyncedPropertyName == "" {
			// Dual relations nest the synced name one level down.
			ps.Relation.SyncedPropertyName = config.Map("dual_property").Str("synced_property_name")
		}
	case "rollup":
		ps.Rollup = &RollupConfig{
			RelationPropertyName: config.Str("relation_property_name"),
			RelationPropertyID:   config.Str("relation_property_id"),
			RollupPropertyName:   config.Str("rollup_property_name"),
			RollupPropertyID:     config.Str("rollup_property_id"),
			Function:             config.Str("function"),
		}
	}
	return ps
}

// SchemaTable summarises the schema for display. Option lists and long
// formula expressions are shortened; SchemaJSON keeps them whole.
func SchemaTable(db notion.Object) *Table {
	schema := SchemaJSON(db)
	t := NewTable(fmt.Sprintf("Schema: %s", schema.Title),
		Column{Header: "Property", Color: ColorCyan},
		Column{Header: "Type", Color: ColorGreen},
		Column{Header: "Configuration", Color: ColorDefault},
	)
	for _, ps := range schema.Properties {
		t.AddRow(ps.Name, ps.Type, describeConfig(ps))
	}
	return t
}

func describeConfig(ps PropertySchema) string {
	switch {
	case ps.Options != nil:
		return "Options: " + summarizeOptions(ps.Options)
	case ps.Format != nil:
		return "Format: " + *ps.Format
	case ps.Expression != nil:
		return "Formula: " + truncate(*ps.Expression, maxExpressionDisplay)
	case ps.Relation != nil:
		s := "Database: " + ps.Relation.DatabaseID
		if ps.Relation.SyncedPropertyName != "" {
			s += fmt.Sprintf(" (synced: %s)", ps.Relation.SyncedPropertyName)
		}
		return s
	case ps.Rollup != nil:
		r := ps.Rollup
		return fmt.Sprintf("Rollup: %s (%s) → %s (%s), %s",
			r.RelationPropertyName, r.RelationPropertyID,
			r.RollupPropertyName, r.RollupPropertyID,
			r.Function)
	default:
		return ""
	}
}

func summarizeOptions(opts []SchemaOption) string {
	if len(opts) == 0 {
		return "(none)"
	}
	shown := opts
	if len(shown) > maxDisplayedOptions {
		shown = shown[:maxDisplayedOptions]
	}
	names := make([]string, len(shown))
	for i, opt := range shown {
		names[i] = opt.Name
	}
	s := strings.Join(names, ", ")
	if extra := len(opts) - len(shown); extra > 0 {
		s += fmt.Sprintf(" (+%d more)", extra)
	}
	return s
}

// truncate shortens s to limit runes followed by "...".
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
