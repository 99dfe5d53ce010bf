package database

import (
	"fmt"
	"log"

	"hedgefront_backend/internal/config"
	"hedgefront_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedStarterWorld(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate runs the schema migration for every persistent model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserProfile{},
		&model.Subscription{},
		&model.World{},
		&model.Level{},
		&model.Lesson{},
		&model.Comment{},
		&model.UserProgress{},
		&model.BossSubmission{},
	)
}

// seedStarterWorld inserts the free intro world on an empty catalog so a
// fresh install has something to open.
func seedStarterWorld(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.World{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	world := &model.World{
		Title:       "First Steps",
		Slug:        "first-steps",
		Description: "Posture, frame, and the basic step. Everyone starts here.",
		Difficulty:  model.DifficultyBeginner,
		OrderIndex:  1,
		IsFree:      true,
		IsPublished: true,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(world).Error; err != nil {
			return err
		}

		level := &model.Level{
			WorldID:    world.ID,
			Title:      "The Basic Step",
			OrderIndex: 1,
		}
		if err := tx.Create(level).Error; err != nil {
			return err
		}

		lessons := []model.Lesson{
			{LevelID: level.ID, Title: "Finding the Beat", OrderIndex: 1, XPValue: 50},
			{LevelID: level.ID, Title: "Weight Transfer", OrderIndex: 2, XPValue: 50},
			{LevelID: level.ID, Title: "Boss Battle: Your First Basic", OrderIndex: 3, XPValue: 150, IsBossBattle: true},
		}
		for i := range lessons {
			if err := tx.Create(&lessons[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
