package repository

import (
	"hedgefront_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) CreateLevel(level *model.Level) error {
	return r.DB.Create(level).Error
}

func (r *LessonRepository) FindLevelByID(id string) (*model.Level, error) {
	var level model.Level
	err := r.DB.First(&level, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// InWorldOrder returns every lesson of a world sorted by
// (level.order_index, lesson.order_index). This total order defines
// previous/next lessons and the prerequisite chain.
func (r *LessonRepository) InWorldOrder(worldID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.
		Joins("JOIN levels ON levels.id = lessons.level_id").
		Where("levels.world_id = ?", worldID).
		Order("levels.order_index ASC, lessons.order_index ASC").
		Find(&lessons).Error
	return lessons, err
}

// BossLessonInWorld returns the world's boss battle lesson, or
// gorm.ErrRecordNotFound when the world has none.
func (r *LessonRepository) BossLessonInWorld(worldID string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.
		Joins("JOIN levels ON levels.id = lessons.level_id").
		Where("levels.world_id = ? AND lessons.is_boss_battle = ?", worldID, true).
		First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}
