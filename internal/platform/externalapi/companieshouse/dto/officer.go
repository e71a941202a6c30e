package dto

// PartialDate is a month/year date such as an officer's date of birth.
type PartialDate struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// OfficerItem is one entry of GET /company/{number}/officers.
type OfficerItem struct {
	Name        string `json:"name"`
	OfficerRole string `json:"officer_role"`
	AppointedOn string `json:"appointed_on"`
	ResignedOn  string `json:"resigned_on"`
	Links       struct {
		Officer struct {
			Appointments string `json:"appointments"`
		} `json:"officer"`
	} `json:"links"`
}

// OfficerListResponse is the body of GET /company/{number}/officers.
type OfficerListResponse struct {
	Items       []OfficerItem `json:"items"`
	ActiveCount int           `json:"active_count"`
}

// OfficerSearchItem is one hit of GET /search/officers.
type OfficerSearchItem struct {
	Title            string       `json:"title"`
	Kind             string       `json:"kind"`
	AppointmentCount int          `json:"appointment_count"`
	DateOfBirth      *PartialDate `json:"date_of_birth"`
	Address          Address      `json:"address"`
	Links            struct {
		Self string `json:"self"`
	} `json:"links"`
}

// OfficerSearchResponse is the body of GET /search/officers.
type OfficerSearchResponse struct {
	Items        []OfficerSearchItem `json:"items"`
	TotalResults int                 `json:"total_results"`
}

// AppointmentItem is one entry of GET /officers/{id}/appointments.
type AppointmentItem struct {
	OfficerRole string `json:"officer_role"`
	AppointedOn string `json:"appointed_on"`
	ResignedOn  string `json:"resigned_on"`
	AppointedTo struct {
		CompanyName   string `json:"company_name"`
		CompanyNumber string `json:"company_number"`
		CompanyStatus string `json:"company_status"`
	} `json:"appointed_to"`
}

// OfficerAppointmentsResponse is the body of GET /officers/{id}/appointments.
type OfficerAppointmentsResponse struct {
	Name         string            `json:"name"`
	TotalResults int               `json:"total_results"`
	DateOfBirth  *PartialDate      `json:"date_of_birth"`
	Items        []AppointmentItem `json:"items"`
}
