package entities

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Gender of a patient
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// BloodType of a patient. The empty value means unknown.
type BloodType string

const (
	BloodTypeOPositive  BloodType = "O+"
	BloodTypeAPositive  BloodType = "A+"
	BloodTypeBPositive  BloodType = "B+"
	BloodTypeABPositive BloodType = "AB+"
	BloodTypeONegative  BloodType = "O-"
	BloodTypeANegative  BloodType = "A-"
	BloodTypeBNegative  BloodType = "B-"
	BloodTypeABNegative BloodType = "AB-"
)

// BloodTypes lists every accepted non-empty blood type.
var BloodTypes = []BloodType{
	BloodTypeOPositive, BloodTypeAPositive, BloodTypeBPositive, BloodTypeABPositive,
	BloodTypeONegative, BloodTypeANegative, BloodTypeBNegative, BloodTypeABNegative,
}

var birthDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Patient represents a registered patient
type Patient struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	BirthDate string    `json:"birth_date" db:"birth_date"`
	Gender    Gender    `json:"gender" db:"gender"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	BloodType BloodType `json:"blood_type" db:"blood_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Validate checks required fields, the birth date format and enum values
func (p Patient) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required.Error("Patient name is required")),
		validation.Field(&p.BirthDate,
			validation.Required.Error("Birth date is required"),
			validation.Match(birthDatePattern).Error("Birth date must be in format YYYY-MM-DD"),
		),
		validation.Field(&p.Gender,
			validation.Required.Error("Gender is required"),
			validation.In(GenderMale, GenderFemale).Error("Gender must be male or female"),
		),
		validation.Field(&p.Phone, validation.Required.Error("Phone number is required")),
		validation.Field(&p.BloodType, validation.In(bloodTypeValues()...).Error("Blood type must be one of O+, A+, B+, AB+, O-, A-, B-, AB-")),
	)
}

func bloodTypeValues() []interface{} {
	values := make([]interface{}, len(BloodTypes))
	for i, bt := range BloodTypes {
		values[i] = bt
	}
	return values
}

// PatientInput carries client-supplied patient fields. Nil means "not provided".
type PatientInput struct {
	Name      *string `json:"name"`
	BirthDate *string `json:"birth_date"`
	Gender    *string `json:"gender"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	BloodType *string `json:"blood_type"`
}

// ApplyTo merges the provided fields into p, trimming free-text values.
func (in PatientInput) ApplyTo(p *Patient) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.BirthDate != nil {
		p.BirthDate = *in.BirthDate
	}
	if in.Gender != nil {
		p.Gender = Gender(*in.Gender)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.BloodType != nil {
		p.BloodType = BloodType(*in.BloodType)
	}
}
