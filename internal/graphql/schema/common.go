package schema

import (
	"fmt"

	"github.com/graphql-go/graphql"
	apperrors "github.com/zatekoja/smarthealthcare/pkg/errors"
)

// failure prefixes err with the operation that failed, e.g.
// "Error creating appointment: Patient not found".
func failure(operation string, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		return fmt.Errorf("%s: %s", operation, appErr.Detail())
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// deleteResultType is the {success, message} payload of delete mutations
func deleteResultType(name string) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.String},
		},
	})
}

func deleteResult(message string) map[string]interface{} {
	return map[string]interface{}{
		"success": "true",
		"message": message,
	}
}

// optionalString returns nil when the argument was not supplied
func optionalString(args map[string]interface{}, name string) *string {
	if v, ok := args[name].(string); ok {
		return &v
	}
	return nil
}

func optionalStringList(args map[string]interface{}, name string) *[]string {
	raw, ok := args[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return &out
}

func nonNullID() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
}

func nonNullString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}
}

func nullableString() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.String}
}
