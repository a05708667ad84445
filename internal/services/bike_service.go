package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cyclepass/station/internal/models"
)

// BikeService derives bike availability from the rental table. A bike is
// available iff it has no open rental; there is no stored availability flag
// to drift out of sync.
type BikeService struct {
	db *sql.DB
}

func NewBikeService(db *sql.DB) *BikeService {
	return &BikeService{db: db}
}

// Available returns all rentable bikes ordered by id ascending, so the
// operator display is stable between polls.
func (s *BikeService) Available(ctx context.Context) ([]models.Bike, error) {
	rows, err := s.db.QueryContext(ctx, queryAvailableBikes)
	if err != nil {
		return nil, fmt.Errorf("listing available bikes: %w", err)
	}
	defer rows.Close()

	var bikes []models.Bike
	for rows.Next() {
		var bike models.Bike
		if err := rows.Scan(&bike.ID, &bike.Name); err != nil {
			return nil, fmt.Errorf("scanning bike row: %w", err)
		}
		bikes = append(bikes, bike)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading bike rows: %w", err)
	}
	return bikes, nil
}
