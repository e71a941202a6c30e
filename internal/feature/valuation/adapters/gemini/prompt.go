package gemini

import (
	"fmt"
	"strings"

	"company_valuation/internal/feature/valuation/domain/entity"
)

const analysisPromptTemplate = `You are an expert financial analyst. I am providing you with the Annual Accounts of a UK company.
%s
%s

Your task is to determine a REALISTIC MARKET VALUATION.
Many small companies do not disclose "Net Profit" directly. In these cases, you MUST calculate an "Imputed Profit" from the change in "Retained Earnings" (Profit & Loss Account reserves) between the previous year and the current year, plus any Dividends if found.

Step 1: Extract Financials
- Net Assets (Total Equity)
- Net Profit (if explicit). If NOT explicit, calculate Retained Earnings Current Year - Retained Earnings Previous Year and use it as "Estimated Profit".
- Turnover (Revenue).
- Debtors, Cash, Creditors (<1yr), Creditors (>1yr).

Step 2: Determine Sector & Multiplier
- Identify the specific Industry Sector.
- Assign a "Valuation Multiplier" based on typical UK SME standards for this sector (e.g. Construction ~3x, Retail ~4x, Technology/SaaS ~6-10x, Consulting ~4x).

Step 3: Calculate Valuation
- Method: (Estimated Profit * Multiplier) + Net Assets.
- Conservative (Low): uses the base multiplier.
- High-End (High): uses (Multiplier * 1.5) or adds a premium for Growth/IP.
- Solvency Check: if Net Assets are negative AND Profit is negative, Valuation is 0.

Step 4: Generate Output
Return only the following JSON object:

{
  "netAssets": number | null,
  "turnover": number | null,
  "profit": number | null,
  "shareholderFunds": number | null,
  "debtors": number | null,
  "cashAtBank": number | null,
  "currentLiabilities": number | null,
  "longTermLiabilities": number | null,
  "estimatedProfit": number,
  "valuationMultiplier": number,
  "valuationMethodology": "string",
  "valuationLow": number,
  "valuationHigh": number,
  "valuationEstimate": number,
  "employeeCount": "string",
  "starRating": number,
  "sector": "string",
  "businessDescription": "string",
  "currency": "GBP",
  "confidence": "High" | "Medium" | "Low",
  "keyHighlights": ["Point 1", "Point 2"],
  "executiveSummary": "Narrative..."
}`

const verdictPromptTemplate = `You are a financial expert comparing two UK companies: %[1]s and %[2]s.

%[1]s Metrics:
%[3]s

%[2]s Metrics:
%[4]s

Task:
Provide a concise, 3-sentence verdict on which company appears financially stronger and why.
- Focus on Liquidity (Cash/Liabilities) and Asset Base.
- Mention if one is significantly larger or older (established).
- Use clear, professional language.
- Highlight the winner using **bold** text (e.g. "**%[1]s** demonstrates...").
- Do NOT refer to them as "Company A" or "Company B". Use their actual names.

Output strictly the paragraph verdict. No JSON.`

// buildAnalysisPrompt は企業ステータスに応じた時制の指示を含む分析プロンプトを組み立てます。
func buildAnalysisPrompt(hint entity.StatusHint) string {
	status := ""
	if hint.CompanyStatus != "" {
		status = fmt.Sprintf("The company status is currently: %s.", strings.ToUpper(hint.CompanyStatus))
	}
	tense := "Write in the present tense as usual."
	if hint.PastTense {
		tense = "IMPORTANT: The company is no longer trading. You MUST write the 'executiveSummary' and 'businessDescription' in the PAST TENSE (e.g. 'The company was...', 'It traded in...')."
	}
	return fmt.Sprintf(analysisPromptTemplate, status, tense)
}

func buildVerdictPrompt(nameA, nameB string, metricsA, metricsB []string) string {
	return fmt.Sprintf(verdictPromptTemplate, nameA, nameB, strings.Join(metricsA, "\n"), strings.Join(metricsB, "\n"))
}
