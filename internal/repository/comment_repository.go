package repository

import (
	"hedgefront_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByLesson returns every comment on a lesson, oldest first. Threading is
// reconstructed by the service from ParentID.
func (r *CommentRepository) ListByLesson(lessonID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Where("lesson_id = ?", lessonID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}
