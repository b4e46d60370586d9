package database

import (
	"adhyeta_backend/internal/config"
	"adhyeta_backend/internal/model"
	"fmt"
	"log"

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

	return db, nil
}

// Migrate runs AutoMigrate for every persisted model. Shared with the
// sqlite-backed test databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.OTPCode{},
		&model.Course{},
		&model.Topic{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.LessonProgress{},
		&model.QuizQuestion{},
		&model.QuizChoice{},
		&model.QuizAttempt{},
		&model.AttemptAnswer{},
		&model.AssistantThread{},
		&model.AssistantMessage{},
		&model.StudyPlan{},
		&model.StudyTask{},
		&model.Exam{},
		&model.Subject{},
		&model.SubjectWeightage{},
		&model.CatalogResource{},
	)
}
