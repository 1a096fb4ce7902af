package schema

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// DoctorService is the doctor surface the GraphQL schema resolves against
type DoctorService interface {
	List(ctx context.Context) ([]*entities.Doctor, error)
	Get(ctx context.Context, id string) (*entities.Doctor, error)
	SearchBySpecialization(ctx context.Context, specialization string) ([]*entities.Doctor, error)
	Create(ctx context.Context, input entities.DoctorInput) (*entities.Doctor, error)
	Update(ctx context.Context, id string, input entities.DoctorInput) (*entities.Doctor, error)
	Delete(ctx context.Context, id string) (*entities.Doctor, error)
}

var doctorType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Doctor",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.ID},
		"name":           &graphql.Field{Type: graphql.String},
		"specialization": &graphql.Field{Type: graphql.String},
		"phone":          &graphql.Field{Type: graphql.String},
		"schedule":       &graphql.Field{Type: graphql.NewList(graphql.String)},
		"createdAt":      &graphql.Field{Type: graphql.DateTime},
		"updatedAt":      &graphql.Field{Type: graphql.DateTime},
	},
})

func doctorInput(args map[string]interface{}) entities.DoctorInput {
	return entities.DoctorInput{
		Name:           optionalString(args, "name"),
		Specialization: optionalString(args, "specialization"),
		Phone:          optionalString(args, "phone"),
		Schedule:       optionalStringList(args, "schedule"),
	}
}

// NewDoctorSchema builds the doctor service's GraphQL schema
func NewDoctorSchema(service DoctorService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"doctors": &graphql.Field{
				Type: graphql.NewList(doctorType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					doctors, err := service.List(p.Context)
					if err != nil {
						return nil, failure("Error fetching doctors", err)
					}
					return doctors, nil
				},
			},
			"doctor": &graphql.Field{
				Type: doctorType,
				Args: graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					doctor, err := service.Get(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, failure("Error fetching doctor", err)
					}
					return doctor, nil
				},
			},
			"doctorBySpecialization": &graphql.Field{
				Type: graphql.NewList(doctorType),
				Args: graphql.FieldConfigArgument{"specialization": nonNullString()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					doctors, err := service.SearchBySpecialization(p.Context, p.Args["specialization"].(string))
					if err != nil {
						return nil, failure("Error searching doctors", err)
					}
					if len(doctors) == 0 {
						return nil, failure("Error searching doctors", errors.New("No doctors found with that specialization"))
					}
					return doctors, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createDoctor": &graphql.Field{
				Type: doctorType,
				Args: graphql.FieldConfigArgument{
					"name":           nonNullString(),
					"specialization": nonNullString(),
					"phone":          nonNullString(),
					"schedule":       &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					doctor, err := service.Create(p.Context, doctorInput(p.Args))
					if err != nil {
						return nil, failure("Error creating doctor", err)
					}
					return doctor, nil
				},
			},
			"updateDoctor": &graphql.Field{
				Type: doctorType,
				Args: graphql.FieldConfigArgument{
					"id":             nonNullID(),
					"name":           nullableString(),
					"specialization": nullableString(),
					"phone":          nullableString(),
					"schedule":       &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					doctor, err := service.Update(p.Context, p.Args["id"].(string), doctorInput(p.Args))
					if err != nil {
						return nil, failure("Error updating doctor", err)
					}
					return doctor, nil
				},
			},
			"deleteDoctor": &graphql.Field{
				Type: deleteResultType("DeleteDoctorResponse"),
				Args: graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := service.Delete(p.Context, p.Args["id"].(string)); err != nil {
						return nil, failure("Error deleting doctor", err)
					}
					return deleteResult("Doctor deleted successfully"), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
