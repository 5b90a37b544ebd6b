package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"sfa-bank-client/config"
	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/internal/core/ports/mocks"
	"sfa-bank-client/internal/service"
	"sfa-bank-client/pkg/apperror"
	"sfa-bank-client/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	auth         *mocks.MockAuthAPI
	accounts     *mocks.MockAccountAPI
	transactions *mocks.MockTransactionAPI
	payments     *mocks.MockPaymentAPI
	pins         *mocks.MockPinAPI
	session      *service.SessionService
	out          *bytes.Buffer
}

func newAppFixture(t *testing.T, input string) (*App, *appFixture) {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &appFixture{
		auth:         mocks.NewMockAuthAPI(ctrl),
		accounts:     mocks.NewMockAccountAPI(ctrl),
		transactions: mocks.NewMockTransactionAPI(ctrl),
		payments:     mocks.NewMockPaymentAPI(ctrl),
		pins:         mocks.NewMockPinAPI(ctrl),
		out:          &bytes.Buffer{},
	}

	store := mocks.NewMockSessionStore(ctrl)
	store.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()
	store.EXPECT().Clear().Return(nil).AnyTimes()
	log := logger.NewWithWriter("error", nil)
	f.session = service.NewSessionService(store, log)

	deps := Deps{
		Session:      f.session,
		Auth:         f.auth,
		Accounts:     f.accounts,
		Transactions: f.transactions,
		Payments:     f.payments,
		Pins:         f.pins,
		Limits:       config.LimitsConfig{SingleTransfer: 500000, DailyTransfer: 1000000},
		Currency:     config.CurrencyConfig{Symbol: "₦", Code: "NGN"},
	}
	return NewApp(deps, strings.NewReader(input), f.out, log), f
}

func TestApp_LoginThenQuit(t *testing.T) {
	app, f := newAppFixture(t, strings.Join([]string{
		"1",                // sign in
		"jane@example.com", // email
		"hunter22",         // password
		"q",                // quit from the main menu
	}, "\n"))

	f.auth.EXPECT().Login(gomock.Any(), "jane@example.com", "hunter22").
		Return(&ports.AuthResult{
			User:  domain.User{ID: "u1", Username: "jdoe", Email: "jane@example.com", FullName: "Jane Doe"},
			Token: "tok",
		}, nil)

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, f.out.String(), "Welcome back, Jane Doe.")
	assert.True(t, f.session.Authenticated())
}

func TestApp_LoginFailureShowsServerMessage(t *testing.T) {
	app, f := newAppFixture(t, strings.Join([]string{
		"1",
		"jane@example.com",
		"wrong",
		"q",
	}, "\n"))

	f.auth.EXPECT().Login(gomock.Any(), "jane@example.com", "wrong").
		Return(nil, apperror.Server(401, "Invalid credentials"))

	require.NoError(t, app.Run(context.Background()))
	assert.Contains(t, f.out.String(), "Invalid credentials")
	assert.False(t, f.session.Authenticated())
}

func TestApp_LogoutReturnsToWelcome(t *testing.T) {
	app, f := newAppFixture(t, strings.Join([]string{
		"1",
		"jane@example.com",
		"hunter22",
		"7", // sign out
		"q", // quit from the welcome menu
	}, "\n"))

	f.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ports.AuthResult{User: domain.User{ID: "u1", Username: "jdoe", Email: "j@e.com"}, Token: "tok"}, nil)

	require.NoError(t, app.Run(context.Background()))

	assert.Contains(t, f.out.String(), "Signed out.")
	assert.False(t, f.session.Authenticated())
	// The welcome menu comes back after signing out.
	assert.GreaterOrEqual(t, strings.Count(f.out.String(), "1) Sign in"), 2)
}

func TestApp_DashboardRendersFormattedData(t *testing.T) {
	app, f := newAppFixture(t, strings.Join([]string{
		"1",
		"jane@example.com",
		"hunter22",
		"1", // dashboard
		"q",
	}, "\n"))

	f.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ports.AuthResult{User: domain.User{ID: "u1", Username: "jdoe", Email: "j@e.com", FullName: "Jane Doe"}, Token: "tok"}, nil)
	f.accounts.EXPECT().List(gomock.Any()).Return([]domain.Account{
		{ID: "a1", Number: "0011223344", Type: "savings", Balance: decimal.NewFromInt(250000), Status: domain.AccountStatusActive},
	}, nil)
	f.transactions.EXPECT().List(gomock.Any()).Return([]domain.Transaction{
		{ID: "t1", Type: domain.TransactionTypeDeposit, Amount: decimal.NewFromInt(50000), Status: domain.TransactionStatusSuccessful},
	}, nil)

	require.NoError(t, app.Run(context.Background()))

	out := f.out.String()
	assert.Contains(t, out, "Total balance: ₦250,000.00")
	assert.Contains(t, out, "Money in:      ₦50,000.00")
	assert.Contains(t, out, "****3344")
}
