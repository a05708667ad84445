package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/cyclepass/station/internal/models"
)

func TestBikeService_Available(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewBikeService(db)
	ctx := context.Background()

	t.Run("lists bikes without open rentals in id order", func(t *testing.T) {
		mock.ExpectQuery("SELECT b.id, b.name FROM bikes b WHERE NOT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
				AddRow(1, "Bike A").
				AddRow(3, "Bike C"))

		bikes, err := service.Available(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []models.Bike{
			{ID: 1, Name: "Bike A"},
			{ID: 3, Name: "Bike C"},
		}, bikes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no bikes available", func(t *testing.T) {
		mock.ExpectQuery("SELECT b.id, b.name FROM bikes b").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		bikes, err := service.Available(ctx)
		assert.NoError(t, err)
		assert.Empty(t, bikes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure", func(t *testing.T) {
		mock.ExpectQuery("SELECT b.id, b.name FROM bikes b").
			WillReturnError(errors.New("connection refused"))

		_, err := service.Available(ctx)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
