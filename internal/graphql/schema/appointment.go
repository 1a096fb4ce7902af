package schema

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/zatekoja/smarthealthcare/internal/domain/entities"
)

// AppointmentService is the appointment surface the GraphQL schema resolves against
type AppointmentService interface {
	List(ctx context.Context) ([]*entities.Appointment, error)
	Get(ctx context.Context, id string) (*entities.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]*entities.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]*entities.Appointment, error)
	Create(ctx context.Context, input entities.AppointmentInput) (*entities.Appointment, error)
	Update(ctx context.Context, id string, input entities.AppointmentInput) (*entities.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*entities.Appointment, error)
	Delete(ctx context.Context, id string) (*entities.Appointment, error)
}

var appointmentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Appointment",
	Fields: graphql.Fields{
		"id":               &graphql.Field{Type: graphql.ID},
		"patient_id":       &graphql.Field{Type: graphql.String},
		"doctor_id":        &graphql.Field{Type: graphql.String},
		"appointment_date": &graphql.Field{Type: graphql.String},
		"status":           &graphql.Field{Type: graphql.String},
		"complaint":        &graphql.Field{Type: graphql.String},
		"createdAt":        &graphql.Field{Type: graphql.DateTime},
		"updatedAt":        &graphql.Field{Type: graphql.DateTime},
	},
})

func appointmentInput(args map[string]interface{}) entities.AppointmentInput {
	return entities.AppointmentInput{
		PatientID:       optionalString(args, "patient_id"),
		DoctorID:        optionalString(args, "doctor_id"),
		AppointmentDate: optionalString(args, "appointment_date"),
		Status:          optionalString(args, "status"),
		Complaint:       optionalString(args, "complaint"),
	}
}

// NewAppointmentSchema builds the appointment service's GraphQL schema
func NewAppointmentSchema(service AppointmentService) (graphql.Schema, error) {
	listBy := func(list func(context.Context, string) ([]*entities.Appointment, error), arg, empty string) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			appointments, err := list(p.Context, p.Args[arg].(string))
			if err != nil {
				return nil, failure("Error fetching appointments", err)
			}
			if len(appointments) == 0 {
				return nil, failure("Error fetching appointments", errors.New(empty))
			}
			return appointments, nil
		}
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"appointments": &graphql.Field{
				Type: graphql.NewList(appointmentType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					appointments, err := service.List(p.Context)
					if err != nil {
						return nil, failure("Error fetching appointments", err)
					}
					return appointments, nil
				},
			},
			"appointment": &graphql.Field{
				Type: appointmentType,
				Args: graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					appointment, err := service.Get(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, failure("Error fetching appointment", err)
					}
					return appointment, nil
				},
			},
			"appointmentByPatient": &graphql.Field{
				Type:    graphql.NewList(appointmentType),
				Args:    graphql.FieldConfigArgument{"patientId": nonNullID()},
				Resolve: listBy(service.ListByPatient, "patientId", "No appointments found for this patient"),
			},
			"appointmentByDoctor": &graphql.Field{
				Type:    graphql.NewList(appointmentType),
				Args:    graphql.FieldConfigArgument{"doctorId": nonNullID()},
				Resolve: listBy(service.ListByDoctor, "doctorId", "No appointments found for this doctor"),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createAppointment": &graphql.Field{
				Type: appointmentType,
				Args: graphql.FieldConfigArgument{
					"patient_id":       nonNullID(),
					"doctor_id":        nonNullID(),
					"appointment_date": nonNullString(),
					"complaint":        nullableString(),
					"status":           nullableString(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					appointment, err := service.Create(p.Context, appointmentInput(p.Args))
					if err != nil {
						return nil, failure("Error creating appointment", err)
					}
					return appointment, nil
				},
			},
			"updateAppointment": &graphql.Field{
				Type: appointmentType,
				Args: graphql.FieldConfigArgument{
					"id":               nonNullID(),
					"patient_id":       &graphql.ArgumentConfig{Type: graphql.ID},
					"doctor_id":        &graphql.ArgumentConfig{Type: graphql.ID},
					"appointment_date": nullableString(),
					"complaint":        nullableString(),
					"status":           nullableString(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					appointment, err := service.Update(p.Context, p.Args["id"].(string), appointmentInput(p.Args))
					if err != nil {
						return nil, failure("Error updating appointment", err)
					}
					return appointment, nil
				},
			},
			"updateAppointmentStatus": &graphql.Field{
				Type: appointmentType,
				Args: graphql.FieldConfigArgument{
					"id":     nonNullID(),
					"status": nonNullString(),
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					appointment, err := service.UpdateStatus(p.Context, p.Args["id"].(string), p.Args["status"].(string))
					if err != nil {
						return nil, failure("Error updating appointment", err)
					}
					return appointment, nil
				},
			},
			"deleteAppointment": &graphql.Field{
				Type: deleteResultType("DeleteAppointmentResponse"),
				Args: graphql.FieldConfigArgument{"id": nonNullID()},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := service.Delete(p.Context, p.Args["id"].(string)); err != nil {
						return nil, failure("Error deleting appointment", err)
					}
					return deleteResult("Appointment deleted successfully"), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
