package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/util"
	"hedgefront_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	catalogCacheKey = "catalog:worlds"
	catalogCacheTTL = 5 * time.Minute
)

// WorldView is one row of the world map, personalized with the caller's
// progress and lock state.
// swagger:model WorldView
type WorldView struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	ImageURL           string  `json:"imageUrl"`
	Difficulty         string  `json:"difficulty"`
	ProgressPercentage float64 `json:"progressPercentage"`
	IsLocked           bool    `json:"isLocked"`
	OrderIndex         int     `json:"orderIndex"`
}

// swagger:model CommentView
type CommentView struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	UserName  string        `json:"userName"`
	AvatarURL string        `json:"avatarUrl,omitempty"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
	ParentID  *string       `json:"parentId,omitempty"`
	Replies   []CommentView `json:"replies,omitempty"`
}

// swagger:model LessonDetailView
type LessonDetailView struct {
	ID              string        `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	VideoURL        string        `json:"videoUrl"`
	XPValue         int           `json:"xpValue"`
	IsCompleted     bool          `json:"isCompleted"`
	IsBossBattle    bool          `json:"isBossBattle"`
	DurationMinutes int           `json:"durationMinutes"`
	NextLessonID    *string       `json:"nextLessonId,omitempty"`
	PrevLessonID    *string       `json:"prevLessonId,omitempty"`
	Comments        []CommentView `json:"comments"`
}

type CourseService struct {
	WorldRepo    *repository.WorldRepository
	LessonRepo   *repository.LessonRepository
	ProgressRepo *repository.ProgressRepository
	CommentRepo  *repository.CommentRepository
	UserRepo     *repository.UserRepository
	ProfileRepo  *repository.ProfileRepository
	Access       *AccessService
	Redis        *redis.Client
}

func NewCourseService(
	worldRepo *repository.WorldRepository,
	lessonRepo *repository.LessonRepository,
	progressRepo *repository.ProgressRepository,
	commentRepo *repository.CommentRepository,
	userRepo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	access *AccessService,
	rdb *redis.Client,
) *CourseService {
	return &CourseService{
		WorldRepo:    worldRepo,
		LessonRepo:   lessonRepo,
		ProgressRepo: progressRepo,
		CommentRepo:  commentRepo,
		UserRepo:     userRepo,
		ProfileRepo:  profileRepo,
		Access:       access,
		Redis:        rdb,
	}
}

// catalog loads the full world/level/lesson tree, redis-cached because the
// catalog changes rarely and every world-map request walks all of it.
func (s *CourseService) catalog(ctx context.Context) ([]model.World, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var worlds []model.World
			if jsonErr := json.Unmarshal([]byte(cached), &worlds); jsonErr == nil {
				return worlds, nil
			}
		}
	}

	worlds, err := s.WorldRepo.ListOrdered()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(worlds); err == nil {
			if err := s.Redis.Set(ctx, catalogCacheKey, data, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}
	return worlds, nil
}

// InvalidateCatalog drops the cached tree; authoring writes call it.
func (s *CourseService) InvalidateCatalog(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

// ListWorlds returns the ordered world map for a user: per-world completion
// percentage plus the lock flag from the access gate.
func (s *CourseService) ListWorlds(ctx context.Context, userID string) ([]WorldView, error) {
	worlds, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CompletedLessonMap(userID)
	if err != nil {
		return nil, err
	}

	subscriptionActive, err := s.Access.SubscriptionActive(userID)
	if err != nil {
		return nil, err
	}

	views := make([]WorldView, 0, len(worlds))
	for i := range worlds {
		world := &worlds[i]

		total := 0
		done := 0
		for _, level := range world.Levels {
			for _, lesson := range level.Lessons {
				total++
				if completed[lesson.ID] {
					done++
				}
			}
		}
		percentage := 0.0
		if total > 0 {
			percentage = math.Round(float64(done)/float64(total)*10000) / 100
		}

		locked, err := s.Access.IsWorldLocked(userID, world, subscriptionActive)
		if err != nil {
			return nil, err
		}

		views = append(views, WorldView{
			ID:                 world.ID,
			Title:              world.Title,
			Description:        world.Description,
			ImageURL:           world.ImageURL,
			Difficulty:         string(world.Difficulty),
			ProgressPercentage: percentage,
			IsLocked:           locked,
			OrderIndex:         world.OrderIndex,
		})
	}
	return views, nil
}

// GetLessonDetail authorizes then assembles the lesson view: neighbors in
// the world order, completion flag and the threaded comments.
func (s *CourseService) GetLessonDetail(ctx context.Context, userID, lessonID string) (*LessonDetailView, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	level, err := s.LessonRepo.FindLevelByID(lesson.LevelID)
	if err != nil {
		return nil, err
	}
	world, err := s.WorldRepo.FindByID(level.WorldID)
	if err != nil {
		return nil, err
	}

	ordered, err := s.LessonRepo.InWorldOrder(world.ID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range ordered {
		if ordered[i].ID == lesson.ID {
			idx = i
			break
		}
	}

	if err := s.Access.CheckLessonAccess(userID, world, ordered, idx); err != nil {
		return nil, err
	}

	isCompleted, err := s.ProgressRepo.IsCompleted(userID, lessonID)
	if err != nil {
		return nil, err
	}

	var nextID, prevID *string
	if idx >= 0 && idx < len(ordered)-1 {
		nextID = &ordered[idx+1].ID
	}
	if idx > 0 {
		prevID = &ordered[idx-1].ID
	}

	comments, err := s.threadedComments(lessonID)
	if err != nil {
		return nil, err
	}

	return &LessonDetailView{
		ID:              lesson.ID,
		Title:           lesson.Title,
		Description:     lesson.Description,
		VideoURL:        lesson.VideoURL,
		XPValue:         lesson.XPValue,
		IsCompleted:     isCompleted,
		IsBossBattle:    lesson.IsBossBattle,
		DurationMinutes: lesson.DurationMinutes,
		NextLessonID:    nextID,
		PrevLessonID:    prevID,
		Comments:        comments,
	}, nil
}

// AddComment posts a comment or reply on a lesson.
func (s *CourseService) AddComment(userID, lessonID, content string, parentID *string) (*model.Comment, error) {
	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	if parentID != nil {
		parent, err := s.CommentRepo.FindByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCommentNotFound
			}
			return nil, err
		}
		// one level of nesting: replies to replies attach to the root
		if parent.ParentID != nil {
			parentID = parent.ParentID
		}
	}

	comment := &model.Comment{
		UserID:   userID,
		LessonID: lessonID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// threadedComments groups flat comment rows into root comments with one
// level of replies.
func (s *CourseService) threadedComments(lessonID string) ([]CommentView, error) {
	comments, err := s.CommentRepo.ListByLesson(lessonID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct {
		name   string
		avatar string
	})
	display := func(userID string) (string, string) {
		if cached, ok := names[userID]; ok {
			return cached.name, cached.avatar
		}
		name := ""
		avatar := ""
		if profile, err := s.ProfileRepo.FindByUserID(userID); err == nil {
			name = profile.FirstName + " " + profile.LastName
			avatar = profile.AvatarURL
		} else if user, err := s.UserRepo.FindByID(userID); err == nil {
			name = user.Email
		}
		names[userID] = struct {
			name   string
			avatar string
		}{name, avatar}
		return name, avatar
	}

	roots := make([]CommentView, 0)
	replies := make(map[string][]CommentView)
	for _, c := range comments {
		name, avatar := display(c.UserID)
		view := CommentView{
			ID:        c.ID,
			UserID:    c.UserID,
			UserName:  name,
			AvatarURL: avatar,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			ParentID:  c.ParentID,
		}
		if c.ParentID == nil {
			roots = append(roots, view)
		} else {
			replies[*c.ParentID] = append(replies[*c.ParentID], view)
		}
	}
	for i := range roots {
		roots[i].Replies = replies[roots[i].ID]
	}
	return roots, nil
}
