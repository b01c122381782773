package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/agrovia/farm-api/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ReportAnalyzer writes a short commentary on an assembled report.
type ReportAnalyzer interface {
	Enabled() bool
	Summarize(ctx context.Context, report *domain.FinancialReport) (string, error)
}

// ReportService assembles financial reports over a plot selection
type ReportService struct {
	transactionRepo domain.TransactionRepository
	plotRepo        domain.PlotRepository
	farmRepo        domain.FarmRepository
	authz           *Authorizer
	registry        *domain.StateRegistry
	analyzer        ReportAnalyzer
	logger          zerolog.Logger
}

// NewReportService creates a new report service
func NewReportService(
	transactionRepo domain.TransactionRepository,
	plotRepo domain.PlotRepository,
	farmRepo domain.FarmRepository,
	authz *Authorizer,
	registry *domain.StateRegistry,
	analyzer ReportAnalyzer,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		transactionRepo: transactionRepo,
		plotRepo:        plotRepo,
		farmRepo:        farmRepo,
		authz:           authz,
		registry:        registry,
		analyzer:        analyzer,
		logger:          logger,
	}
}

// Generate builds a financial report for the selected plots and period.
// All plots must belong to one farm, and the caller needs the financial
// report permission on it.
func (s *ReportService) Generate(ctx context.Context, userID uuid.UUID, req domain.FinancialReportRequest) (*domain.FinancialReport, error) {
	plots, err := s.plotRepo.ListByIDs(ctx, req.PlotIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get plots: %w", err)
	}
	if len(plots) != len(req.PlotIDs) {
		return nil, domain.ErrPlotNotFound
	}

	farmID := plots[0].FarmID
	for _, p := range plots[1:] {
		if p.FarmID != farmID {
			return nil, domain.ErrPlotsSpanFarms
		}
	}

	if _, err := s.authz.Authorize(ctx, userID, farmID, domain.PermReadFinancialReport); err != nil {
		return nil, err
	}

	activeID, err := s.registry.Resolve(domain.EntityTransaction, domain.StateActive)
	if err != nil {
		return nil, err
	}

	var (
		farm    *domain.Farm
		entries []domain.TransactionEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		farm, err = s.farmRepo.GetByID(gctx, farmID)
		if err != nil {
			return fmt.Errorf("failed to get farm: %w", err)
		}
		if farm == nil {
			return domain.ErrFarmNotFound
		}
		return nil
	})
	g.Go(func() error {
		var err error
		entries, err = s.transactionRepo.ListEntries(gctx, req.PlotIDs, req.From, req.To, activeID)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report, err := buildReport(farm, plots, entries, req)
	if err != nil {
		return nil, err
	}

	if req.IncludeAnalysis && s.analyzer != nil && s.analyzer.Enabled() {
		analysis, err := s.analyzer.Summarize(ctx, report)
		if err != nil {
			// The figures stand on their own; a failed analysis is not fatal
			s.logger.Warn().Err(err).Msg("report analysis failed")
		} else {
			report.Analysis = analysis
		}
	}

	return report, nil
}

func buildReport(farm *domain.Farm, plots []domain.Plot, entries []domain.TransactionEntry, req domain.FinancialReportRequest) (*domain.FinancialReport, error) {
	type bucket struct {
		income    float64
		expenses  float64
		incomeBy  map[string]float64
		expenseBy map[string]float64
	}
	newBucket := func() *bucket {
		return &bucket{incomeBy: map[string]float64{}, expenseBy: map[string]float64{}}
	}

	perPlot := make(map[uuid.UUID]*bucket, len(plots))
	for _, p := range plots {
		perPlot[p.ID] = newBucket()
	}
	total := newBucket()

	for _, e := range entries {
		b, ok := perPlot[e.PlotID]
		if !ok {
			continue
		}
		switch e.Type {
		case domain.TransactionTypeIncome:
			b.income += e.Value
			b.incomeBy[e.Category] += e.Value
			total.income += e.Value
			total.incomeBy[e.Category] += e.Value
		case domain.TransactionTypeExpense:
			b.expenses += e.Value
			b.expenseBy[e.Category] += e.Value
			total.expenses += e.Value
			total.expenseBy[e.Category] += e.Value
		default:
			return nil, fmt.Errorf("type %q on transaction %s: %w", e.Type, e.ID, domain.ErrUnknownTransaction)
		}
	}

	report := &domain.FinancialReport{
		FarmName: farm.Name,
		Period:   fmt.Sprintf("%s to %s", req.From.Format("2006-01-02"), req.To.Format("2006-01-02")),
	}

	for _, p := range plots {
		b := perPlot[p.ID]
		report.Plots = append(report.Plots, p.Name)
		report.PerPlot = append(report.PerPlot, domain.PlotFinancials{
			PlotID:            p.ID,
			PlotName:          p.Name,
			Income:            b.income,
			Expenses:          b.expenses,
			Balance:           b.income - b.expenses,
			IncomeByCategory:  categoryTotals(b.incomeBy),
			ExpenseByCategory: categoryTotals(b.expenseBy),
		})
	}

	report.Summary = domain.FarmFinancials{
		TotalIncome:       total.income,
		TotalExpenses:     total.expenses,
		Balance:           total.income - total.expenses,
		IncomeByCategory:  categoryTotals(total.incomeBy),
		ExpenseByCategory: categoryTotals(total.expenseBy),
	}

	if req.IncludeHistory {
		report.History = entries
	}

	return report, nil
}

func categoryTotals(amounts map[string]float64) []domain.CategoryTotal {
	totals := make([]domain.CategoryTotal, 0, len(amounts))
	for category, amount := range amounts {
		totals = append(totals, domain.CategoryTotal{Category: category, Amount: amount})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Category < totals[j].Category })
	return totals
}
