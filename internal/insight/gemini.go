package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/agrovia/farm-api/internal/config"
	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Analyzer produces a short written analysis of a financial report.
type Analyzer struct {
	apiKey string
	model  string
}

// NewAnalyzer creates a Gemini-backed analyzer.
func NewAnalyzer(cfg config.InsightConfig) *Analyzer {
	return &Analyzer{
		apiKey: cfg.GeminiAPIKey,
		model:  cfg.Model,
	}
}

// Enabled reports whether an API key is configured.
func (a *Analyzer) Enabled() bool {
	return a.apiKey != ""
}

// Summarize asks the model for a short commentary on the report figures.
func (a *Analyzer) Summarize(ctx context.Context, report *domain.FinancialReport) (string, error) {
	if !a.Enabled() {
		return "", fmt.Errorf("analyzer is not configured (missing API key)")
	}

	model := a.model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(model)
	var temperature float32 = 0.2
	generativeModel.Temperature = &temperature

	resp, err := generativeModel.GenerateContent(ctx, genai.Text(buildPrompt(report)))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var output strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output.WriteString(string(text))
		}
	}

	return strings.TrimSpace(output.String()), nil
}

func buildPrompt(report *domain.FinancialReport) string {
	var b strings.Builder

	b.WriteString("You are a farm management advisor. Write a short financial analysis ")
	b.WriteString("(at most three paragraphs, plain text, no markdown) of the figures below. ")
	b.WriteString("Point out the balance, the dominant expense categories and anything unusual.\n\n")

	fmt.Fprintf(&b, "Farm: %s\nPlots: %s\nPeriod: %s\n", report.FarmName, strings.Join(report.Plots, ", "), report.Period)
	fmt.Fprintf(&b, "Total income: %.2f\nTotal expenses: %.2f\nBalance: %.2f\n", report.Summary.TotalIncome, report.Summary.TotalExpenses, report.Summary.Balance)

	if len(report.Summary.IncomeByCategory) > 0 {
		b.WriteString("Income by category:\n")
		for _, c := range report.Summary.IncomeByCategory {
			fmt.Fprintf(&b, "  %s: %.2f\n", c.Category, c.Amount)
		}
	}
	if len(report.Summary.ExpenseByCategory) > 0 {
		b.WriteString("Expenses by category:\n")
		for _, c := range report.Summary.ExpenseByCategory {
			fmt.Fprintf(&b, "  %s: %.2f\n", c.Category, c.Amount)
		}
	}

	return b.String()
}
