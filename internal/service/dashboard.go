package service

import (
	"context"
	"sort"
	"sync"

	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const recentTransactions = 5

// DashboardSummary is the derived overview shown at the top of the
// dashboard. MoneyIn counts deposits; MoneyOut counts successful
// non-deposit movements.
type DashboardSummary struct {
	TotalBalance decimal.Decimal
	MoneyIn      decimal.Decimal
	MoneyOut     decimal.Decimal
	PendingCount int
}

// DashboardService assembles the dashboard from the accounts and
// transactions resources.
type DashboardService struct {
	accounts     ports.AccountAPI
	transactions ports.TransactionAPI
	log          zerolog.Logger

	mu      sync.Mutex
	all     []domain.Account
	history []domain.Transaction
}

func NewDashboardService(accounts ports.AccountAPI, transactions ports.TransactionAPI, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		accounts:     accounts,
		transactions: transactions,
		log:          log.With().Str("component", "dashboard").Logger(),
	}
}

// Refresh fetches accounts and transaction history. Account data is
// required; a history failure degrades to an empty activity panel.
func (s *DashboardService) Refresh(ctx context.Context) error {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return err
	}

	history, err := s.transactions.List(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("transaction history unavailable")
		history = nil
	}

	s.mu.Lock()
	s.all = accounts
	s.history = history
	s.mu.Unlock()
	return nil
}

func (s *DashboardService) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all
}

// Summary derives the overview numbers from the loaded data.
func (s *DashboardService) Summary() DashboardSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum DashboardSummary
	for _, a := range s.all {
		sum.TotalBalance = sum.TotalBalance.Add(a.Balance)
	}
	for _, tx := range s.history {
		if tx.Status == domain.TransactionStatusPending {
			sum.PendingCount++
		}
		if tx.IsCredit() {
			sum.MoneyIn = sum.MoneyIn.Add(tx.Amount)
		} else if tx.Status == domain.TransactionStatusSuccessful {
			sum.MoneyOut = sum.MoneyOut.Add(tx.Amount)
		}
	}
	return sum
}

// Recent returns the newest transactions for the activity panel.
func (s *DashboardService) Recent() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := make([]domain.Transaction, len(s.history))
	copy(recent, s.history)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentTransactions {
		recent = recent[:recentTransactions]
	}
	return recent
}
