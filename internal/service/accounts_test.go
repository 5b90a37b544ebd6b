package service

import (
	"context"
	"testing"

	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports/mocks"
	"sfa-bank-client/pkg/apperror"
	"sfa-bank-client/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAccountsService(t *testing.T) (*AccountsService, *mocks.MockAccountAPI, *mocks.MockTransactionAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountAPI(ctrl)
	transactions := mocks.NewMockTransactionAPI(ctrl)
	return NewAccountsService(accounts, transactions, logger.NewWithWriter("error", nil)), accounts, transactions
}

func twoAccounts() []domain.Account {
	return []domain.Account{
		{ID: "a1", Number: "0011223344", Balance: decimal.NewFromInt(250000), Status: domain.AccountStatusActive},
		{ID: "a2", Number: "5566778899", Balance: decimal.NewFromInt(50000), Status: domain.AccountStatusFrozen},
	}
}

func TestAccountsService_SelectLoadsHistory(t *testing.T) {
	svc, accounts, transactions := newAccountsService(t)

	accounts.EXPECT().List(gomock.Any()).Return(twoAccounts(), nil)
	require.NoError(t, svc.Refresh(context.Background()))

	transactions.EXPECT().ForAccount(gomock.Any(), "a2").Return([]domain.Transaction{
		{ID: "t1", Type: domain.TransactionTypeDeposit},
	}, nil)
	require.NoError(t, svc.Select(context.Background(), "a2"))

	require.NotNil(t, svc.Selected())
	assert.Equal(t, "a2", svc.Selected().ID)
	assert.Len(t, svc.History(), 1)
}

func TestAccountsService_SelectUnknownAccount(t *testing.T) {
	svc, accounts, _ := newAccountsService(t)

	accounts.EXPECT().List(gomock.Any()).Return(twoAccounts(), nil)
	require.NoError(t, svc.Refresh(context.Background()))

	err := svc.Select(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Nil(t, svc.Selected())
}

func TestAccountsService_RefreshKeepsSelection(t *testing.T) {
	svc, accounts, transactions := newAccountsService(t)

	accounts.EXPECT().List(gomock.Any()).Return(twoAccounts(), nil)
	require.NoError(t, svc.Refresh(context.Background()))
	transactions.EXPECT().ForAccount(gomock.Any(), "a1").Return(nil, nil)
	require.NoError(t, svc.Select(context.Background(), "a1"))

	updated := twoAccounts()
	updated[0].Balance = decimal.NewFromInt(240000)
	accounts.EXPECT().List(gomock.Any()).Return(updated, nil)
	require.NoError(t, svc.Refresh(context.Background()))

	require.NotNil(t, svc.Selected())
	assert.True(t, decimal.NewFromInt(240000).Equal(svc.Selected().Balance))
}

func TestAccountsService_RefreshDropsVanishedSelection(t *testing.T) {
	svc, accounts, transactions := newAccountsService(t)

	accounts.EXPECT().List(gomock.Any()).Return(twoAccounts(), nil)
	require.NoError(t, svc.Refresh(context.Background()))
	transactions.EXPECT().ForAccount(gomock.Any(), "a2").Return([]domain.Transaction{{ID: "t1"}}, nil)
	require.NoError(t, svc.Select(context.Background(), "a2"))

	accounts.EXPECT().List(gomock.Any()).Return(twoAccounts()[:1], nil)
	require.NoError(t, svc.Refresh(context.Background()))

	assert.Nil(t, svc.Selected())
	assert.Empty(t, svc.History())
}
