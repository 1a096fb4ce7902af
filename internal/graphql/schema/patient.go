package schema

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// PatientService is the patient surface the GraphQL schema resolves against
type PatientService interface {
	List(ctx context.Context) ([]*entities.Patient, error)
	Get(ctx context.Context, id string) (*entities.Patient, error)
	SearchByName(ctx context.Context, name string) ([]*entities.Patient, error)
	Create(ctx context.Context, input entities.PatientInput) (*entities.Patient, error)
	Update(ctx context.Context, id string, input entities.PatientInput) (*entities.Patient, error)
	Delete(ctx context.Context, id string) (*entities.Patient, error)
}

var patientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Patient",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.ID},
		"name":       &graphql.Field{Type: graphql.String},
		"birth_date": &graphql.Field{Type: graphql.String},
		"gender":     &graphql.Field{Type: graphql.String},
		"phone":      &graphql.Field{Type: graphql.String},
		"address":    &graphql.Field{Type: graphql.String},
		"blood_type": &graphql.Field{Type: graphql.String},
		"createdAt":  &graphql.Field{Type: graphql.DateTime},
		"updatedAt":  &graphql.Field{Type: graphql.DateTime},
	},
})

func patientInput(args map[string]interface{}) entities.PatientInput {
	return entities.PatientInput{
		Name:      optionalString(args, "name"),
		BirthDate: optionalString(args, "birth_date"),
		Gender:    optionalString(args, "gender"),
		Phone:     optionalString(args, "phone"),
		Address:   optionalString(args, "address"),
		BloodType: optionalString(args, "blood_type"),
	}
}

// NewPatientSchema builds the patient service's GraphQL schema
func NewPatientSchema(service PatientService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"patients": &graphql.Field{
				Type: graphql.NewList(patientType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					patients, err := service.List(p.Context)
					if err != nil {
						return nil, failure("Error fetching patients", err)
					}
					return patients, nil
				},
			},
			"patient": &graphql.Field{
				Type: patientType,
				Args: graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					patient, err := service.Get(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, failure("Error fetching patient", err)
					}
					return patient, nil
				},
			},
			"patientByName": &graphql.Field{
				Type: graphql.NewList(patientType),
				Args: graphql.FieldConfigArgument{"name": nonNullString()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					patients, err := service.SearchByName(p.Context, p.Args["name"].(string))
					if err != nil {
						return nil, failure("Error searching patients", err)
					}
					if len(patients) == 0 {
						return nil, failure("Error searching patients", errors.New("No patients found with that name"))
					}
					return patients, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createPatient": &graphql.Field{
				Type: patientType,
				Args: graphql.FieldConfigArgument{
					"name":       nonNullString(),
					"birth_date": nonNullString(),
					"gender":     nonNullString(),
					"phone":      nonNullString(),
					"address":    nullableString(),
					"blood_type": nullableString(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					patient, err := service.Create(p.Context, patientInput(p.Args))
					if err != nil {
						return nil, failure("Error creating patient", err)
					}
					return patient, nil
				},
			},
			"updatePatient": &graphql.Field{
				Type: patientType,
				Args: graphql.FieldConfigArgument{
					"id":         nonNullID(),
					"name":       nullableString(),
					"birth_date": nullableString(),
					"gender":     nullableString(),
					"phone":      nullableString(),
					"address":    nullableString(),
					"blood_type": nullableString(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					patient, err := service.Update(p.Context, p.Args["id"].(string), patientInput(p.Args))
					if err != nil {
						return nil, failure("Error updating patient", err)
					}
					return patient, nil
				},
			},
			"deletePatient": &graphql.Field{
				Type: deleteResultType("DeletePatientResponse"),
				Args: graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := service.Delete(p.Context, p.Args["id"].(string)); err != nil {
						return nil, failure("Error deleting patient", err)
					}
					return deleteResult("Patient deleted successfully"), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
