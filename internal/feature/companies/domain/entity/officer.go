package entity

import "strings"

// Officer は企業の役員を表します。
type Officer struct {
	Name             string
	OfficerRole      string
	AppointedOn      string
	ResignedOn       string
	AppointmentsLink string // links.officer.appointments
}

// OfficerID は役員の任命一覧リンクから役員IDを抽出します。
func (o Officer) OfficerID() string {
	return officerIDFromLink(o.AppointmentsLink)
}

// IsActive は辞任日が記録されていない場合にtrueを返します。
func (o Officer) IsActive() bool {
	return o.ResignedOn == ""
}

// OfficerList は企業の役員一覧を表します。
type OfficerList struct {
	Items       []Officer
	ActiveCount int
}

// PartialDate は月と年のみの日付（生年月など）を表します。
type PartialDate struct {
	Month int
	Year  int
}

// OfficerSummary は役員検索結果の1件を表します。
type OfficerSummary struct {
	Title            string
	Kind             string
	SelfLink         string
	AppointmentCount int
	DateOfBirth      *PartialDate
	Address          Address
}

// OfficerID は検索結果のselfリンクから役員IDを抽出します。
func (o OfficerSummary) OfficerID() string {
	return officerIDFromLink(o.SelfLink)
}

// OfficerSearchResult は役員検索のレスポンスを表します。
type OfficerSearchResult struct {
	Items        []OfficerSummary
	TotalResults int
}

// Appointment は役員の任命先企業を表します。
type Appointment struct {
	CompanyName   string
	CompanyNumber string
	CompanyStatus string
	OfficerRole   string
	AppointedOn   string
	ResignedOn    string
}

// OfficerAppointments は役員の任命一覧を表します。
type OfficerAppointments struct {
	Name         string
	TotalResults int
	DateOfBirth  *PartialDate
	Items        []Appointment
}

// officerIDFromLink は "/officers/{id}/appointments" 形式のリンクからIDを取り出します。
func officerIDFromLink(link string) string {
	parts := strings.Split(strings.Trim(link, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if parts[i] == "officers" {
			return parts[i+1]
		}
	}
	return ""
}
