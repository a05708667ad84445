package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/cyclepass/station/internal/models"
)

type mockUserDirectory struct {
	mock.Mock
}

func (m *mockUserDirectory) UserByToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserDirectory) Balance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type mockBikeLister struct {
	mock.Mock
}

func (m *mockBikeLister) Available(ctx context.Context) ([]models.Bike, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bike), args.Error(1)
}

type mockRentalDesk struct {
	mock.Mock
}

func (m *mockRentalDesk) Open(ctx context.Context, userID int64) (*models.Rental, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}

func (m *mockRentalDesk) Begin(ctx context.Context, userID, bikeID int64, now time.Time) (*models.Rental, error) {
	args := m.Called(ctx, userID, bikeID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}

func (m *mockRentalDesk) Return(ctx context.Context, userID int64, now time.Time) (*Receipt, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Receipt), args.Error(1)
}

func (m *mockRentalDesk) ExtendCharge(ctx context.Context, userID int64, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) CardDetected(token string) { m.Called(token) }

func (m *mockNotifier) Balance(balance int64) { m.Called(balance) }

func (m *mockNotifier) InsufficientBalance(balance, required int64) { m.Called(balance, required) }

func (m *mockNotifier) UnregisteredCard(token string) { m.Called(token) }

func (m *mockNotifier) NoBikesAvailable() { m.Called() }

func (m *mockNotifier) InvalidSelection(bikeID int64) { m.Called(bikeID) }

func (m *mockNotifier) RentalStarted(bike models.Bike, at time.Time) { m.Called(bike, at) }

func (m *mockNotifier) RentalActive(bikeID int64, remaining time.Duration) {
	m.Called(bikeID, remaining)
}

func (m *mockNotifier) AutoDeducted(bikeID int64, amount int64) { m.Called(bikeID, amount) }

func (m *mockNotifier) BikeReturned(bikeName string, total int64, at time.Time) {
	m.Called(bikeName, total, at)
}

type mockTerminal struct {
	mock.Mock
}

func (m *mockTerminal) SelectBike(bikes []models.Bike) (int64, error) {
	args := m.Called(bikes)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockTerminal) ConfirmReturn() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}
