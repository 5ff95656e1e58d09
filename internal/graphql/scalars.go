package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// dateTimeType serializes timestamps as RFC 3339 strings and parses the
// same format back. Unparsable input coerces to nil, which the engine
// reports as an invalid-value error.
var dateTimeType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "DateTime",
	Description: "An ISO-8601 (RFC 3339) timestamp",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case time.Time:
			if v.IsZero() {
				return nil
			}
			return v.UTC().Format(time.RFC3339)
		case *time.Time:
			if v == nil || v.IsZero() {
				return nil
			}
			return v.UTC().Format(time.RFC3339)
		case string:
			if _, err := time.Parse(time.RFC3339, v); err != nil {
				return nil
			}
			return v
		default:
			return nil
		}
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		return parseDateTime(s)
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		lit, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		return parseDateTime(lit.Value)
	},
})

func parseDateTime(s string) interface{} {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return t
}

// jsonType passes structured values through unchanged in both directions.
var jsonType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "JSON",
	Description: "An arbitrary structured value",
	Serialize: func(value interface{}) interface{} {
		return value
	},
	ParseValue: func(value interface{}) interface{} {
		return value
	},
	ParseLiteral: astToValue,
})

// astToValue converts a literal AST node to its plain Go value.
func astToValue(valueAST ast.Value) interface{} {
	switch v := valueAST.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		return v.Value
	case *ast.FloatValue:
		return v.Value
	case *ast.EnumValue:
		return v.Value
	case *ast.ListValue:
		out := make([]interface{}, len(v.Values))
		for i, item := range v.Values {
			out[i] = astToValue(item)
		}
		return out
	case *ast.ObjectValue:
		out := make(map[string]interface{}, len(v.Fields))
		for _, field := range v.Fields {
			out[field.Name.Value] = astToValue(field.Value)
		}
		return out
	default:
		return nil
	}
}
