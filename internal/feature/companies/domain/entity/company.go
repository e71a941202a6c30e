// Package entity はcompaniesフィーチャーのドメインモデルを定義します。
package entity

// Address は登記住所を表します。
type Address struct {
	Premises     string
	AddressLine1 string
	Locality     string
	PostalCode   string
}

// CompanySummary は企業検索結果の1件を表します。
type CompanySummary struct {
	Title          string
	CompanyNumber  string
	CompanyStatus  string
	DateOfCreation string
	Kind           string
	Address        Address
}

// CompanySearchResult は企業検索のレスポンスを表します。
type CompanySearchResult struct {
	Items        []CompanySummary
	TotalResults int
}

// LastAccounts は企業プロフィールに記録されている直近の決算情報です。
type LastAccounts struct {
	MadeUpTo string
	Type     string
}

// CompanyProfile は登記所の企業プロフィールを表します。
type CompanyProfile struct {
	CompanyName             string
	CompanyNumber           string
	CompanyStatus           string
	Type                    string
	DateOfCreation          string
	DateOfCessation         string
	RegisteredOfficeAddress Address
	LastAccounts            LastAccounts
	AccountsOverdue         bool
	SICCodes                []string
}

// IsActive は企業ステータスがactiveかどうかを返します。
func (p *CompanyProfile) IsActive() bool {
	return p.CompanyStatus == StatusActive
}

const (
	// StatusActive は営業中の企業ステータスです。
	StatusActive = "active"
	// StatusDissolved は解散済みの企業ステータスです。
	StatusDissolved = "dissolved"
	// StatusLiquidation は清算中の企業ステータスです。
	StatusLiquidation = "liquidation"
)

// CompanyDetail は企業ページに表示する情報一式です。
type CompanyDetail struct {
	Profile          *CompanyProfile
	Officers         *OfficerList
	FilingHistory    *FilingHistory
	AccountsMetadata AccountsMetadata
}
