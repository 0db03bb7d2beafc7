package domain

// Gender values accepted by the patient service
type Gender string

const (
	GenderMale           Gender = "MALE"
	GenderFemale         Gender = "FEMALE"
	GenderOther          Gender = "OTHER"
	GenderPreferNotToSay Gender = "PREFER_NOT_TO_SAY"
)

// Patient is the profile owned by a PATIENT user
type Patient struct {
	ID                    string   `json:"id"`
	UserID                string   `json:"userId"`
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	DateOfBirth           string   `json:"dateOfBirth,omitempty"`
	Gender                Gender   `json:"gender,omitempty"`
	AddressLine1          string   `json:"addressLine1,omitempty"`
	AddressLine2          string   `json:"addressLine2,omitempty"`
	City                  string   `json:"city,omitempty"`
	State                 string   `json:"state,omitempty"`
	PostalCode            string   `json:"postalCode,omitempty"`
	Country               string   `json:"country,omitempty"`
	EmergencyContactName  string   `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string   `json:"emergencyContactPhone,omitempty"`
	Allergies             []string `json:"allergies,omitempty"`
	MedicalConditions     []string `json:"medicalConditions,omitempty"`
}

// ShippingAddress prefills a checkout address from the profile
func (p *Patient) ShippingAddress() ShippingAddress {
	return ShippingAddress{
		AddressLine1: p.AddressLine1,
		AddressLine2: p.AddressLine2,
		City:         p.City,
		State:        p.State,
		PostalCode:   p.PostalCode,
		Country:      p.Country,
	}
}

// CreatePatientRequest is the payload for POST /patients
type CreatePatientRequest struct {
	FirstName             string   `json:"firstName"`
	LastName              string   `json:"lastName"`
	DateOfBirth           string   `json:"dateOfBirth,omitempty"`
	Gender                Gender   `json:"gender,omitempty"`
	AddressLine1          string   `json:"addressLine1,omitempty"`
	AddressLine2          string   `json:"addressLine2,omitempty"`
	City                  string   `json:"city,omitempty"`
	State                 string   `json:"state,omitempty"`
	PostalCode            string   `json:"postalCode,omitempty"`
	Country               string   `json:"country,omitempty"`
	EmergencyContactName  string   `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string   `json:"emergencyContactPhone,omitempty"`
	Allergies             []string `json:"allergies,omitempty"`
	MedicalConditions     []string `json:"medicalConditions,omitempty"`
}

// Validate checks the names the patient service requires
func (r CreatePatientRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" {
		return ErrInvalidInput
	}
	return nil
}

// UpdatePatientRequest is the payload for PUT /patients/me.
// Nil fields are left unchanged by the patient service.
type UpdatePatientRequest struct {
	FirstName             *string  `json:"firstName,omitempty"`
	LastName              *string  `json:"lastName,omitempty"`
	DateOfBirth           *string  `json:"dateOfBirth,omitempty"`
	Gender                *Gender  `json:"gender,omitempty"`
	AddressLine1          *string  `json:"addressLine1,omitempty"`
	AddressLine2          *string  `json:"addressLine2,omitempty"`
	City                  *string  `json:"city,omitempty"`
	State                 *string  `json:"state,omitempty"`
	PostalCode            *string  `json:"postalCode,omitempty"`
	Country               *string  `json:"country,omitempty"`
	EmergencyContactName  *string  `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone *string  `json:"emergencyContactPhone,omitempty"`
	Allergies             []string `json:"allergies,omitempty"`
	MedicalConditions     []string `json:"medicalConditions,omitempty"`
}
