package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tripforge/internal/models/db_models"
)

type ItineraryRepositoryInterface interface {
	CreateItinerary(ctx context.Context, itinerary *db_models.Itinerary) error
	GetItineraryByID(ctx context.Context, id string) (*db_models.Itinerary, error)
	ListItinerariesByDestination(ctx context.Context, destination string, page, pageSize int) ([]db_models.Itinerary, error)
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepositoryInterface {
	return &ItineraryRepository{db: db}
}

type ItineraryRepository struct {
	db *gorm.DB
}

func (r *ItineraryRepository) CreateItinerary(ctx context.Context, itinerary *db_models.Itinerary) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.WithContext(ctx).Create(itinerary).Error
	})
}

func (r *ItineraryRepository) GetItineraryByID(ctx context.Context, id string) (*db_models.Itinerary, error) {
	var itinerary db_models.Itinerary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&itinerary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func (r *ItineraryRepository) ListItinerariesByDestination(ctx context.Context, destination string, page, pageSize int) ([]db_models.Itinerary, error) {
	var itineraries []db_models.Itinerary
	err := r.db.WithContext(ctx).
		Where("destination = ?", destination).
		Scopes(func(db *gorm.DB) *gorm.DB {
			offset := (page - 1) * pageSize
			return db.Offset(offset).Limit(pageSize)
		}).
		Order("created_at DESC").
		Find(&itineraries).Error
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}
