package entity

import "fmt"

// FilingHistoryWebURL は登記所ウェブサイトのファイリング履歴ページURLのテンプレートです。
const FilingHistoryWebURL = "https://find-and-update.company-information.service.gov.uk/company/%s/filing-history"

// AccountsMetadata は企業の直近決算に関する表示用メタデータです。
type AccountsMetadata struct {
	LastAccountsDate string
	AccountsType     string
	SourceLink       string
}

// ExtractAccountsMetadata はプロフィールとファイリング履歴から直近決算のメタデータを導出します。
// プロフィール側の値を優先し、無い場合は最新の決算ファイリングを使います。
func ExtractAccountsMetadata(profile *CompanyProfile, history FilingHistory) AccountsMetadata {
	latest, found := history.LatestAccounts()

	date := profile.LastAccounts.MadeUpTo
	if date == "" && found {
		date = latest.Date
	}
	if date == "" {
		date = "Unknown"
	}

	accountsType := profile.LastAccounts.Type
	if accountsType == "" && found {
		accountsType = latest.Description
	}
	if accountsType == "" {
		accountsType = "Unknown"
	}

	return AccountsMetadata{
		LastAccountsDate: date,
		AccountsType:     accountsType,
		SourceLink:       fmt.Sprintf(FilingHistoryWebURL, profile.CompanyNumber),
	}
}
