package service

import (
	"context"
	"sync"

	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/pkg/apperror"

	"github.com/rs/zerolog"
)

// AccountsService backs the accounts screen: the account list and the
// per-account transaction history.
type AccountsService struct {
	accounts     ports.AccountAPI
	transactions ports.TransactionAPI
	log          zerolog.Logger

	mu       sync.Mutex
	all      []domain.Account
	selected *domain.Account
	history  []domain.Transaction
}

func NewAccountsService(accounts ports.AccountAPI, transactions ports.TransactionAPI, log zerolog.Logger) *AccountsService {
	return &AccountsService{
		accounts:     accounts,
		transactions: transactions,
		log:          log.With().Str("component", "accounts").Logger(),
	}
}

// Refresh reloads the account list. The selection is kept when the
// selected account still exists, otherwise dropped.
func (s *AccountsService) Refresh(ctx context.Context) error {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = accounts
	if s.selected != nil {
		keep := false
		for i := range accounts {
			if accounts[i].ID == s.selected.ID {
				s.selected = &accounts[i]
				keep = true
				break
			}
		}
		if !keep {
			s.selected = nil
			s.history = nil
		}
	}
	return nil
}

func (s *AccountsService) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all
}

func (s *AccountsService) Selected() *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *AccountsService) History() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// Select picks an account from the loaded list and fetches its
// transactions.
func (s *AccountsService) Select(ctx context.Context, accountID string) error {
	s.mu.Lock()
	var picked *domain.Account
	for i := range s.all {
		if s.all[i].ID == accountID {
			picked = &s.all[i]
			break
		}
	}
	if picked == nil {
		s.mu.Unlock()
		return apperror.Validation("Unknown account.")
	}
	s.selected = picked
	s.history = nil
	s.mu.Unlock()

	history, err := s.transactions.ForAccount(ctx, accountID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.selected != nil && s.selected.ID == accountID {
		s.history = history
	}
	s.mu.Unlock()
	return nil
}
