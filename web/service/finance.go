package service

import (
	"time"

	"github.com/daftarhq/daftar/caching"
	"github.com/daftarhq/daftar/database"
	"github.com/daftarhq/daftar/database/model"
)

const (
	financeCacheTTL    = 30 * time.Second
	dashboardCacheTTL  = 10 * time.Second
	keyFinanceSummary  = "finance:summary"
	keyDashboardCounts = "dashboard:counts"

	recentTransactionLimit = 10
)

// financeCache keeps the aggregate numbers warm between dashboard polls.
var financeCache = caching.NewCache(financeCacheTTL)

// FinanceSummary is the firm-wide income/expense aggregate.
type FinanceSummary struct {
	Income    float64 `json:"income"`
	Expenses  float64 `json:"expenses"`
	NetProfit float64 `json:"netProfit"`
}

// DashboardStats backs the landing page counters.
type DashboardStats struct {
	ProjectsCount int64   `json:"projectsCount"`
	ClientsCount  int64   `json:"clientsCount"`
	Revenue       float64 `json:"revenue"`
	PendingTasks  int64   `json:"pendingTasks"`
	TeamSize      int64   `json:"teamSize"`
}

type FinanceService struct {
	projectService ProjectService
	clientService  ClientService
	taskService    TaskService
	userService    UserService
}

func (s *FinanceService) sumTransactions(txType model.TransactionType) (float64, error) {
	db := database.GetDB()
	var total float64
	err := db.Model(model.Transaction{}).
		Where("type = ?", txType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// Summary totals income and expense transactions. Results are cached
// briefly since the SPA polls this endpoint.
func (s *FinanceService) Summary() (*FinanceSummary, error) {
	if cached, ok := financeCache.Get(keyFinanceSummary); ok {
		if summary, ok := cached.(*FinanceSummary); ok {
			return summary, nil
		}
	}

	income, err := s.sumTransactions(model.Income)
	if err != nil {
		return nil, err
	}
	expenses, err := s.sumTransactions(model.Outcome)
	if err != nil {
		return nil, err
	}

	summary := &FinanceSummary{
		Income:    income,
		Expenses:  expenses,
		NetProfit: income - expenses,
	}
	financeCache.Set(keyFinanceSummary, summary)
	return summary, nil
}

// RecentTransactions returns the latest transactions with their project and
// client attached.
func (s *FinanceService) RecentTransactions() ([]model.Transaction, error) {
	db := database.GetDB()
	var transactions []model.Transaction
	err := db.Preload("Project").
		Preload("Client").
		Order("date desc").
		Limit(recentTransactionLimit).
		Find(&transactions).Error
	return transactions, err
}

// CreateTransaction stores a transaction. When the caller is unknown the
// record is attributed to the first user, mirroring the bootstrap behavior
// of the old panel.
func (s *FinanceService) CreateTransaction(tx *model.Transaction) error {
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	if tx.CreatedBy == 0 {
		if first, err := s.userService.GetFirstUser(); err == nil {
			tx.CreatedBy = first.Id
		}
	}
	db := database.GetDB()
	if err := db.Create(tx).Error; err != nil {
		return err
	}
	financeCache.Delete(keyFinanceSummary)
	financeCache.Delete(keyDashboardCounts)
	return nil
}

// Dashboard aggregates the counters for the landing page.
func (s *FinanceService) Dashboard() (*DashboardStats, error) {
	if cached, ok := financeCache.Get(keyDashboardCounts); ok {
		if stats, ok := cached.(*DashboardStats); ok {
			return stats, nil
		}
	}

	projects, err := s.projectService.Count()
	if err != nil {
		return nil, err
	}
	clients, err := s.clientService.Count()
	if err != nil {
		return nil, err
	}
	pending, err := s.taskService.CountPending()
	if err != nil {
		return nil, err
	}
	revenue, err := s.sumTransactions(model.Income)
	if err != nil {
		return nil, err
	}
	team, err := s.userService.CountUsers()
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		ProjectsCount: projects,
		ClientsCount:  clients,
		Revenue:       revenue,
		PendingTasks:  pending,
		TeamSize:      team,
	}
	// The landing page polls these counters, so they expire faster than
	// the finance summary.
	financeCache.SetWithTTL(keyDashboardCounts, stats, dashboardCacheTTL)
	return stats, nil
}
