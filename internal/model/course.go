package model

type WorldDifficulty string

const (
	DifficultyBeginner     WorldDifficulty = "Beginner"
	DifficultyIntermediate WorldDifficulty = "Intermediate"
	DifficultyAdvanced     WorldDifficulty = "Advanced"
)

// World is a top-level course unit. OrderIndex values are dense and start at
// 1; gating relies on order_index-1 addressing the previous world.
// swagger:model World
type World struct {
	UUIDBase
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Slug        string          `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	OrderIndex  int             `gorm:"uniqueIndex;not null" json:"orderIndex"`
	IsFree      bool            `gorm:"default:false" json:"isFree"`
	ImageURL    string          `gorm:"size:255" json:"imageUrl"`
	Difficulty  WorldDifficulty `gorm:"size:20;default:'Beginner'" json:"difficulty"`
	IsPublished bool            `gorm:"default:false" json:"isPublished"`

	Levels []Level `gorm:"foreignKey:WorldID" json:"levels,omitempty"`
}

func (World) TableName() string {
	return "worlds"
}

// swagger:model Level
type Level struct {
	UUIDBase
	WorldID    string `gorm:"type:varchar(36);index;not null;index:idx_world_level_order,unique,priority:1" json:"worldId"`
	Title      string `gorm:"size:200;not null" json:"title"`
	OrderIndex int    `gorm:"not null;index:idx_world_level_order,unique,priority:2" json:"orderIndex"`

	Lessons []Lesson `gorm:"foreignKey:LevelID" json:"lessons,omitempty"`
}

func (Level) TableName() string {
	return "levels"
}

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	LevelID         string `gorm:"type:varchar(36);index;not null;index:idx_level_lesson_order,unique,priority:1" json:"levelId"`
	Title           string `gorm:"size:200;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description"`
	VideoURL        string `gorm:"size:255" json:"videoUrl"`
	XPValue         int    `gorm:"default:50;not null" json:"xpValue"`
	OrderIndex      int    `gorm:"not null;index:idx_level_lesson_order,unique,priority:2" json:"orderIndex"`
	IsBossBattle    bool   `gorm:"default:false" json:"isBossBattle"`
	DurationMinutes int    `gorm:"default:0" json:"durationMinutes"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Comment rows are flat; the reply tree is rebuilt by grouping on ParentID
// at read time.
// swagger:model Comment
type Comment struct {
	UUIDBase
	UserID   string  `gorm:"type:varchar(36);index;not null" json:"userId"`
	LessonID string  `gorm:"type:varchar(36);index;not null" json:"lessonId"`
	ParentID *string `gorm:"type:varchar(36);index" json:"parentId"`
	Content  string  `gorm:"type:text;not null" json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}
