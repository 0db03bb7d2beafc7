package domain

// PrescriptionType records how a prescription entered the system
type PrescriptionType string

const (
	PrescriptionUploaded PrescriptionType = "UPLOADED"
	PrescriptionERx      PrescriptionType = "ERX"
	PrescriptionManual   PrescriptionType = "MANUAL"
)

// PrescriptionStatus is the pharmacist verification state
type PrescriptionStatus string

const (
	PrescriptionPending  PrescriptionStatus = "PENDING"
	PrescriptionVerified PrescriptionStatus = "VERIFIED"
	PrescriptionRejected PrescriptionStatus = "REJECTED"
	PrescriptionExpired  PrescriptionStatus = "EXPIRED"
)

// Prescription is an uploaded or electronic prescription
type Prescription struct {
	ID               string             `json:"id"`
	PatientID        string             `json:"patientId"`
	PrescriptionType PrescriptionType   `json:"prescriptionType"`
	FileURL          string             `json:"fileUrl,omitempty"`
	FileType         string             `json:"fileType,omitempty"`
	Status           PrescriptionStatus `json:"status"`
	VerifiedBy       string             `json:"verifiedBy,omitempty"`
	VerifiedAt       string             `json:"verifiedAt,omitempty"`
	RejectionReason  string             `json:"rejectionReason,omitempty"`
	ExpiresAt        string             `json:"expiresAt,omitempty"`
	CreatedAt        string             `json:"createdAt"`
	UpdatedAt        string             `json:"updatedAt"`
}

// HasFile reports whether a stored file can be streamed for this prescription
func (p *Prescription) HasFile() bool {
	return p.FileURL != ""
}
