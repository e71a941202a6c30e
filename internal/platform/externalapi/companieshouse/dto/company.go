// Package dto contains the wire representations of Companies House API responses.
package dto

// Address is a registered office or correspondence address.
type Address struct {
	Premises     string `json:"premises"`
	AddressLine1 string `json:"address_line_1"`
	Locality     string `json:"locality"`
	PostalCode   string `json:"postal_code"`
}

// CompanySearchItem is one hit of GET /search/companies.
type CompanySearchItem struct {
	Title          string  `json:"title"`
	CompanyNumber  string  `json:"company_number"`
	CompanyStatus  string  `json:"company_status"`
	DateOfCreation string  `json:"date_of_creation"`
	Kind           string  `json:"kind"`
	Address        Address `json:"address"`
}

// CompanySearchResponse is the body of GET /search/companies.
type CompanySearchResponse struct {
	Items        []CompanySearchItem `json:"items"`
	TotalResults int                 `json:"total_results"`
}

// CompanyProfileResponse is the body of GET /company/{number}.
type CompanyProfileResponse struct {
	CompanyName             string   `json:"company_name"`
	CompanyNumber           string   `json:"company_number"`
	CompanyStatus           string   `json:"company_status"`
	Type                    string   `json:"type"`
	DateOfCreation          string   `json:"date_of_creation"`
	DateOfCessation         string   `json:"date_of_cessation"`
	RegisteredOfficeAddress Address  `json:"registered_office_address"`
	SICCodes                []string `json:"sic_codes"`
	Accounts                struct {
		Overdue      bool `json:"overdue"`
		LastAccounts struct {
			MadeUpTo string `json:"made_up_to"`
			Type     string `json:"type"`
		} `json:"last_accounts"`
	} `json:"accounts"`
}
