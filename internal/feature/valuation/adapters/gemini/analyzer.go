package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	comparison "company_valuation/internal/feature/comparison/usecase"
	"company_valuation/internal/feature/valuation/domain"
	"company_valuation/internal/feature/valuation/domain/entity"
	"company_valuation/internal/feature/valuation/usecase"
)

const pdfMIMEType = "application/pdf"

// contentGenerator は *genai.Models のうち利用するメソッドだけを切り出したものです。
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAnalyzer はGoogle Gemini APIで決算書PDFを分析します。
type GeminiAnalyzer struct {
	models contentGenerator
	model  string
}

var (
	_ usecase.Analyzer            = (*GeminiAnalyzer)(nil)
	_ comparison.VerdictGenerator = (*GeminiAnalyzer)(nil)
)

// NewGeminiAnalyzer はAPIキーを使ってGeminiAnalyzerの新しいインスタンスを生成します。
func NewGeminiAnalyzer(ctx context.Context, cfg Config) (*GeminiAnalyzer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return newAnalyzer(client.Models, cfg.Model), nil
}

func newAnalyzer(models contentGenerator, model string) *GeminiAnalyzer {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiAnalyzer{models: models, model: model}
}

// Analyze は決算書PDFをインラインで送信し、財務スナップショットを生成します。
func (g *GeminiAnalyzer) Analyze(ctx context.Context, document []byte, hint entity.StatusHint) (*entity.AnalysisResult, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(buildAnalysisPrompt(hint)),
		genai.NewPartFromBytes(document, pdfMIMEType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(0.2)),
	})
	if err != nil {
		return nil, classify(err)
	}

	text := resp.Text()
	result, err := parseAnalysis(text)
	if err != nil {
		slog.Error("failed to parse gemini analysis", "error", err, "raw", text)
		return nil, err
	}
	return result, nil
}

// GenerateVerdict は2社の指標を比較した短い評価文（勝者は太字のマークダウン）を生成します。
func (g *GeminiAnalyzer) GenerateVerdict(ctx context.Context, nameA, nameB string, metricsA, metricsB []string) (string, error) {
	prompt := buildVerdictPrompt(nameA, nameB, metricsA, metricsB)
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classify(err)
	}

	verdict := strings.TrimSpace(resp.Text())
	if verdict == "" {
		return "", fmt.Errorf("%w: empty verdict", domain.ErrAnalysisFormat)
	}
	return verdict, nil
}

// classify はGemini APIのエラーをドメインエラーに変換します。
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", domain.ErrRateLimitExceeded, err)
	}
	if domain.IsRateLimitMessage(err.Error()) {
		return fmt.Errorf("%w: %w", domain.ErrRateLimitExceeded, err)
	}
	return fmt.Errorf("%w: gemini request failed: %w", domain.ErrAnalysisFormat, err)
}
