package domain

import (
	"net/url"
	"strconv"
)

// MedicineForm is the dosage form of a medicine
type MedicineForm string

const (
	FormTablet    MedicineForm = "TABLET"
	FormCapsule   MedicineForm = "CAPSULE"
	FormSyrup     MedicineForm = "SYRUP"
	FormInjection MedicineForm = "INJECTION"
	FormCream     MedicineForm = "CREAM"
	FormDrops     MedicineForm = "DROPS"
	FormOther     MedicineForm = "OTHER"
)

// DrugSchedule is the regulatory schedule of a medicine
type DrugSchedule string

const (
	ScheduleH    DrugSchedule = "H"
	ScheduleH1   DrugSchedule = "H1"
	ScheduleX    DrugSchedule = "X"
	ScheduleNone DrugSchedule = "NONE"
)

// MedicineStatus is the catalog lifecycle state
type MedicineStatus string

const (
	MedicineActive       MedicineStatus = "ACTIVE"
	MedicineInactive     MedicineStatus = "INACTIVE"
	MedicineDiscontinued MedicineStatus = "DISCONTINUED"
)

// Medicine is a catalog entry with stock and price aggregates
type Medicine struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	GenericName          string         `json:"genericName,omitempty"`
	Manufacturer         string         `json:"manufacturer,omitempty"`
	Strength             string         `json:"strength,omitempty"`
	Form                 MedicineForm   `json:"form"`
	PrescriptionRequired bool           `json:"prescriptionRequired"`
	Schedule             DrugSchedule   `json:"schedule,omitempty"`
	Description          string         `json:"description,omitempty"`
	ImageURL             string         `json:"imageUrl,omitempty"`
	Status               MedicineStatus `json:"status"`
	TotalStock           int            `json:"totalStock"`
	MinPrice             float64        `json:"minPrice"`
	MinMRP               float64        `json:"minMrp"`
	MaxDiscount          float64        `json:"maxDiscount"`
	InStock              bool           `json:"inStock"`
	CreatedAt            string         `json:"createdAt"`
	UpdatedAt            string         `json:"updatedAt"`
}

// MedicineSearchParams filters GET /catalog/medicines
type MedicineSearchParams struct {
	Search               string
	Form                 MedicineForm
	Schedule             DrugSchedule
	PrescriptionRequired *bool
}

// Values encodes the params as a query string, omitting unset filters
func (p MedicineSearchParams) Values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Form != "" {
		v.Set("form", string(p.Form))
	}
	if p.Schedule != "" {
		v.Set("schedule", string(p.Schedule))
	}
	if p.PrescriptionRequired != nil {
		v.Set("prescriptionRequired", strconv.FormatBool(*p.PrescriptionRequired))
	}
	return v
}
