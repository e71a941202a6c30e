package handler

import (
	"company_valuation/internal/api"
	"company_valuation/internal/feature/companies/domain/entity"
)

// ToAddress converts a registry address into its API representation.
func ToAddress(a entity.Address) api.Address {
	return api.Address{
		Premises:     a.Premises,
		AddressLine1: a.AddressLine1,
		Locality:     a.Locality,
		PostalCode:   a.PostalCode,
	}
}

// ToCompanyProfile converts a company profile into its API representation.
func ToCompanyProfile(p *entity.CompanyProfile) api.CompanyProfile {
	sic := p.SICCodes
	if sic == nil {
		sic = []string{}
	}
	return api.CompanyProfile{
		CompanyName:             p.CompanyName,
		CompanyNumber:           p.CompanyNumber,
		CompanyStatus:           p.CompanyStatus,
		Type:                    p.Type,
		DateOfCreation:          p.DateOfCreation,
		DateOfCessation:         p.DateOfCessation,
		RegisteredOfficeAddress: ToAddress(p.RegisteredOfficeAddress),
		LastAccounts: api.LastAccounts{
			MadeUpTo: p.LastAccounts.MadeUpTo,
			Type:     p.LastAccounts.Type,
		},
		AccountsOverdue: p.AccountsOverdue,
		SICCodes:        sic,
	}
}

// ToAccountsMetadata converts accounts metadata into its API representation.
func ToAccountsMetadata(m entity.AccountsMetadata) api.AccountsMetadata {
	return api.AccountsMetadata{
		LastAccountsDate: m.LastAccountsDate,
		AccountsType:     m.AccountsType,
		SourceLink:       m.SourceLink,
	}
}

func toOfficerList(l *entity.OfficerList) api.OfficerList {
	items := make([]api.Officer, 0, len(l.Items))
	for _, o := range l.Items {
		items = append(items, api.Officer{
			Name:        o.Name,
			OfficerID:   o.OfficerID(),
			OfficerRole: o.OfficerRole,
			AppointedOn: o.AppointedOn,
			ResignedOn:  o.ResignedOn,
		})
	}
	return api.OfficerList{Items: items, ActiveCount: l.ActiveCount}
}

func toFilings(h *entity.FilingHistory) []api.FilingRecord {
	out := make([]api.FilingRecord, 0, len(h.Items))
	for _, f := range h.Items {
		out = append(out, api.FilingRecord{
			Category:     f.Category,
			Description:  f.Description,
			Type:         f.Type,
			Date:         f.Date,
			DocumentLink: f.DocumentLink,
		})
	}
	return out
}

func toPartialDate(d *entity.PartialDate) *api.PartialDate {
	if d == nil {
		return nil
	}
	return &api.PartialDate{Month: d.Month, Year: d.Year}
}
