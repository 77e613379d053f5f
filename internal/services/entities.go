package services

import (
	"github.com/vvka-141/claimload/internal/frame"
	"github.com/vvka-141/claimload/pkg/claimload"
)

// entity describes one source feed: where it lands in blob storage, which
// staging table receives it, and how its columns are typed. The column order
// doubles as the staging column order for the bulk COPY.
type entity struct {
	name         string
	object       string
	stagingTable string
	finalTable   string
	columns      []string
	types        map[string]frame.Kind
}

var providerEntity = entity{
	name:         "provider",
	object:       claimload.ProviderObject,
	stagingTable: claimload.StgProviderTable,
	finalTable:   claimload.ProviderTable,
	columns:      []string{"Name", "Region", "Specialty"},
	types: map[string]frame.Kind{
		"Name":      frame.String,
		"Region":    frame.String,
		"Specialty": frame.String,
	},
}

var patientEntity = entity{
	name:         "patient",
	object:       claimload.PatientObject,
	stagingTable: claimload.StgPatientTable,
	finalTable:   claimload.PatientTable,
	columns:      []string{"FirstName", "LastName", "BirthDate", "Gender"},
	types: map[string]frame.Kind{
		"FirstName": frame.String,
		"LastName":  frame.String,
		"BirthDate": frame.Date,
		"Gender":    frame.String,
	},
}

var claimEntity = entity{
	name:         "claim",
	object:       claimload.ClaimObject,
	stagingTable: claimload.StgClaimTable,
	finalTable:   claimload.ClaimTable,
	columns: []string{
		"PatientFirstName", "PatientLastName", "PatientBirthDate",
		"ProviderName", "ProviderRegion",
		"AmountBilled", "AmountPaid", "Status", "DateSubmitted", "DatePaid",
	},
	types: map[string]frame.Kind{
		"PatientFirstName": frame.String,
		"PatientLastName":  frame.String,
		"PatientBirthDate": frame.Date,
		"ProviderName":     frame.String,
		"ProviderRegion":   frame.String,
		"AmountBilled":     frame.Float,
		"AmountPaid":       frame.Float,
		"Status":           frame.String,
		"DateSubmitted":    frame.Date,
		"DatePaid":         frame.Date,
	},
}

// loadOrder is the fixed sequence feeds are fetched and staged in. Claims
// depend on providers and patients by natural key, so they come last.
var loadOrder = []entity{providerEntity, patientEntity, claimEntity}
