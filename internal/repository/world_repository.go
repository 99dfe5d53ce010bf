package repository

import (
	"hedgefront_backend/internal/model"

	"gorm.io/gorm"
)

type WorldRepository struct {
	DB *gorm.DB
}

func NewWorldRepository(db *gorm.DB) *WorldRepository {
	return &WorldRepository{DB: db}
}

func (r *WorldRepository) Create(world *model.World) error {
	return r.DB.Create(world).Error
}

func (r *WorldRepository) Update(world *model.World) error {
	return r.DB.Save(world).Error
}

func (r *WorldRepository) FindByID(id string) (*model.World, error) {
	var world model.World
	err := r.DB.First(&world, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &world, nil
}

// FindByOrderIndex resolves the "previous world" for gating. A missing row is
// reported as gorm.ErrRecordNotFound; callers treat it as an absent world,
// not a failure.
func (r *WorldRepository) FindByOrderIndex(orderIndex int) (*model.World, error) {
	var world model.World
	err := r.DB.Where("order_index = ?", orderIndex).First(&world).Error
	if err != nil {
		return nil, err
	}
	return &world, nil
}

// ListOrdered returns all worlds with their levels and lessons, everything
// sorted by order index.
func (r *WorldRepository) ListOrdered() ([]model.World, error) {
	var worlds []model.World
	err := r.DB.
		Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Order("levels.order_index ASC")
		}).
		Preload("Levels.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order_index ASC")
		}).
		Order("order_index ASC").
		Find(&worlds).Error
	return worlds, err
}
