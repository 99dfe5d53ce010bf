package service

import (
	"context"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/util"
	"hedgefront_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminStats are the review-dashboard counters.
// swagger:model AdminStats
type AdminStats struct {
	TotalUsers          int64 `json:"totalUsers"`
	ActiveSubscriptions int64 `json:"activeSubscriptions"`
	PendingSubmissions  int64 `json:"pendingSubmissions"`
}

type AdminService struct {
	UserRepo         *repository.UserRepository
	SubscriptionRepo *repository.SubscriptionRepository
	SubmissionRepo   *repository.SubmissionRepository
	WorldRepo        *repository.WorldRepository
	LessonRepo       *repository.LessonRepository
	Course           *CourseService
	Storage          *StorageService
}

func NewAdminService(
	userRepo *repository.UserRepository,
	subscriptionRepo *repository.SubscriptionRepository,
	submissionRepo *repository.SubmissionRepository,
	worldRepo *repository.WorldRepository,
	lessonRepo *repository.LessonRepository,
	course *CourseService,
	storage *StorageService,
) *AdminService {
	return &AdminService{
		UserRepo:         userRepo,
		SubscriptionRepo: subscriptionRepo,
		SubmissionRepo:   submissionRepo,
		WorldRepo:        worldRepo,
		LessonRepo:       lessonRepo,
		Course:           course,
		Storage:          storage,
	}
}

func (s *AdminService) Stats() (*AdminStats, error) {
	totalUsers, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	activeSubs, err := s.SubscriptionRepo.CountByStatus(model.SubscriptionActive)
	if err != nil {
		return nil, err
	}
	pending, err := s.SubmissionRepo.CountByStatus(model.SubmissionPending)
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalUsers:          totalUsers,
		ActiveSubscriptions: activeSubs,
		PendingSubmissions:  pending,
	}, nil
}

// WorldInput is the authoring payload for creating or updating a world.
type WorldInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Slug        string `json:"slug" binding:"required"`
	OrderIndex  int    `json:"orderIndex" binding:"required,min=1"`
	IsFree      bool   `json:"isFree"`
	ImageURL    string `json:"imageUrl"`
	Difficulty  string `json:"difficulty"`
	IsPublished bool   `json:"isPublished"`
}

func (s *AdminService) CreateWorld(ctx context.Context, input WorldInput) (*model.World, error) {
	world := &model.World{
		Title:       input.Title,
		Description: input.Description,
		Slug:        input.Slug,
		OrderIndex:  input.OrderIndex,
		IsFree:      input.IsFree,
		ImageURL:    input.ImageURL,
		Difficulty:  model.WorldDifficulty(input.Difficulty),
		IsPublished: input.IsPublished,
	}
	if world.Difficulty == "" {
		world.Difficulty = model.DifficultyBeginner
	}
	if err := s.WorldRepo.Create(world); err != nil {
		return nil, err
	}
	s.Course.InvalidateCatalog(ctx)
	return world, nil
}

func (s *AdminService) UpdateWorld(ctx context.Context, worldID string, input WorldInput) (*model.World, error) {
	world, err := s.WorldRepo.FindByID(worldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorldNotFound
		}
		return nil, err
	}

	world.Title = input.Title
	world.Description = input.Description
	world.Slug = input.Slug
	world.OrderIndex = input.OrderIndex
	world.IsFree = input.IsFree
	world.ImageURL = input.ImageURL
	if input.Difficulty != "" {
		world.Difficulty = model.WorldDifficulty(input.Difficulty)
	}
	world.IsPublished = input.IsPublished

	if err := s.WorldRepo.Update(world); err != nil {
		return nil, err
	}
	s.Course.InvalidateCatalog(ctx)
	return world, nil
}

// LevelInput is the authoring payload for a level inside a world.
type LevelInput struct {
	Title      string `json:"title" binding:"required"`
	OrderIndex int    `json:"orderIndex" binding:"required,min=1"`
}

func (s *AdminService) CreateLevel(ctx context.Context, worldID string, input LevelInput) (*model.Level, error) {
	if _, err := s.WorldRepo.FindByID(worldID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorldNotFound
		}
		return nil, err
	}

	level := &model.Level{
		WorldID:    worldID,
		Title:      input.Title,
		OrderIndex: input.OrderIndex,
	}
	if err := s.LessonRepo.CreateLevel(level); err != nil {
		return nil, err
	}
	s.Course.InvalidateCatalog(ctx)
	return level, nil
}

// LessonInput is the authoring payload for a lesson inside a level.
type LessonInput struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	VideoURL        string `json:"videoUrl"`
	XPValue         int    `json:"xpValue" binding:"required,min=1"`
	OrderIndex      int    `json:"orderIndex" binding:"required,min=1"`
	IsBossBattle    bool   `json:"isBossBattle"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (s *AdminService) CreateLesson(ctx context.Context, levelID string, input LessonInput) (*model.Lesson, error) {
	if _, err := s.LessonRepo.FindLevelByID(levelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLevelNotFound
		}
		return nil, err
	}

	lesson := &model.Lesson{
		LevelID:         levelID,
		Title:           input.Title,
		Description:     input.Description,
		VideoURL:        input.VideoURL,
		XPValue:         input.XPValue,
		OrderIndex:      input.OrderIndex,
		IsBossBattle:    input.IsBossBattle,
		DurationMinutes: input.DurationMinutes,
	}
	if err := s.LessonRepo.Create(lesson); err != nil {
		return nil, err
	}
	s.Course.InvalidateCatalog(ctx)
	return lesson, nil
}

// UploadLessonVideo stores an instructor-uploaded lesson video and probes it
// to fill DurationMinutes when the payload did not specify one.
func (s *AdminService) UploadLessonVideo(ctx context.Context, lessonID string, file *multipart.FileHeader) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	objectKey := filepath.Join("lesson-videos", lesson.ID, filepath.Base(file.Filename))
	videoURL, err := s.Storage.Provider.Upload(ctx, objectKey, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	lesson.VideoURL = videoURL

	if lesson.DurationMinutes == 0 {
		if minutes := probeDurationMinutes(file); minutes > 0 {
			lesson.DurationMinutes = minutes
		}
	}

	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	s.Course.InvalidateCatalog(ctx)
	return lesson, nil
}

// probeDurationMinutes spools the upload to a temp file and runs ffprobe on
// it. Best effort: a probe failure leaves the duration unset.
func probeDurationMinutes(file *multipart.FileHeader) int {
	src, err := file.Open()
	if err != nil {
		return 0
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "lesson-video-*"+filepath.Ext(file.Filename))
	if err != nil {
		return 0
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.ReadFrom(src); err != nil {
		return 0
	}

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		logger.Log.Warn("video probe failed", zap.String("lessonVideo", file.Filename), zap.Error(err))
		return 0
	}
	return info.DurationMinutes()
}
