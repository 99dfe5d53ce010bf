package service

import (
	"errors"

	"hedgefront_backend/internal/model"
	"hedgefront_backend/internal/repository"
	"hedgefront_backend/internal/util"

	"gorm.io/gorm"
)

// WorldLocked decides world visibility for one user.
//
// Free worlds are always open. Paid worlds need an active subscription, and
// from the second world on, an approved boss submission in the previous
// world — unless that world has no boss battle. A missing previous-world
// record unlocks rather than erroring: a dangling order index is a catalog
// problem, not the student's.
func WorldLocked(world *model.World, subscriptionActive bool, previousWorld *model.World, previousBoss *model.Lesson, bossApproved bool) bool {
	if world.IsFree {
		return false
	}
	if !subscriptionActive {
		return true
	}
	if world.OrderIndex <= 1 || previousWorld == nil {
		return false
	}
	if previousBoss == nil {
		return false
	}
	return !bossApproved
}

// LessonLocked decides lesson visibility given the containing world's lock
// state. The world lock dominates; otherwise a lesson is locked iff a
// strictly prior lesson in the world order exists and is not completed.
func LessonLocked(worldLocked bool, previousLesson *model.Lesson, previousCompleted bool) bool {
	if worldLocked {
		return true
	}
	if previousLesson == nil {
		return false
	}
	return !previousCompleted
}

// AccessService resolves the data feeding the pure gate decisions above.
type AccessService struct {
	WorldRepo        *repository.WorldRepository
	LessonRepo       *repository.LessonRepository
	ProgressRepo     *repository.ProgressRepository
	SubmissionRepo   *repository.SubmissionRepository
	SubscriptionRepo *repository.SubscriptionRepository
}

func NewAccessService(
	worldRepo *repository.WorldRepository,
	lessonRepo *repository.LessonRepository,
	progressRepo *repository.ProgressRepository,
	submissionRepo *repository.SubmissionRepository,
	subscriptionRepo *repository.SubscriptionRepository,
) *AccessService {
	return &AccessService{
		WorldRepo:        worldRepo,
		LessonRepo:       lessonRepo,
		ProgressRepo:     progressRepo,
		SubmissionRepo:   submissionRepo,
		SubscriptionRepo: subscriptionRepo,
	}
}

// SubscriptionActive reports whether the user currently holds an active
// subscription. A missing subscription row means no access to paid content.
func (s *AccessService) SubscriptionActive(userID string) (bool, error) {
	sub, err := s.SubscriptionRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.IsActive(), nil
}

// IsWorldLocked loads the previous world and its boss approval state, then
// applies WorldLocked.
func (s *AccessService) IsWorldLocked(userID string, world *model.World, subscriptionActive bool) (bool, error) {
	if world.IsFree {
		return false, nil
	}
	if !subscriptionActive {
		return true, nil
	}
	if world.OrderIndex <= 1 {
		return false, nil
	}

	previousWorld, err := s.WorldRepo.FindByOrderIndex(world.OrderIndex - 1)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	previousBoss, err := s.LessonRepo.BossLessonInWorld(previousWorld.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	approved, err := s.SubmissionRepo.HasApproved(userID, previousBoss.ID)
	if err != nil {
		return false, err
	}
	return WorldLocked(world, subscriptionActive, previousWorld, previousBoss, approved), nil
}

// CheckLessonAccess authorizes a lesson fetch. Returns ErrWorldLocked or
// ErrLessonLocked so the boundary can answer 403 rather than a partial view.
func (s *AccessService) CheckLessonAccess(userID string, world *model.World, orderedLessons []model.Lesson, lessonIdx int) error {
	active, err := s.SubscriptionActive(userID)
	if err != nil {
		return err
	}

	worldLocked, err := s.IsWorldLocked(userID, world, active)
	if err != nil {
		return err
	}
	if worldLocked {
		return util.ErrWorldLocked
	}

	if lessonIdx <= 0 {
		return nil
	}
	previous := &orderedLessons[lessonIdx-1]
	completed, err := s.ProgressRepo.IsCompleted(userID, previous.ID)
	if err != nil {
		return err
	}
	if LessonLocked(false, previous, completed) {
		return util.ErrLessonLocked
	}
	return nil
}
