package models

// VehicleRecord is one vehicle compliance record as the backend stores it.
// The vehicle number is the natural key: posting a record with an existing
// vehicle number updates it, and deletes are keyed by vehicle number.
type VehicleRecord struct {
	VehicleNumber                  string `json:"vehicleNumber"`
	FcExpiryDate                   string `json:"fcExpiryDate"`
	InsuranceExpiryDate            string `json:"insuranceExpiryDate"`
	PermitExpiryDate               string `json:"permitExpiryDate"`
	TaxDueDate                     string `json:"taxDueDate"`
	PollutionCertificateExpiryDate string `json:"pollutionCertificateExpiryDate"`
	ContactNumber                  string `json:"contactNumber"`
}

// VehicleListPage is the backend's list response: one page of records plus
// the authoritative total count across all pages.
type VehicleListPage struct {
	Vehicles      []VehicleRecord `json:"vehicles"`
	TotalVehicles int             `json:"totalVehicles"`
}

// FleetMetadata holds the dashboard aggregates.
type FleetMetadata struct {
	TotalVehicles int `json:"totalVehicles"`
	ExpiringSoon  int `json:"expiringSoon"`
}
