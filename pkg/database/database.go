package database

import (
	"fmt"
	"log"
	"survey_backend/internal/config"
	"survey_backend/internal/model"

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

	return db, nil
}

// Migrate 创建/更新问卷相关的全部表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Creator{},
		&model.Interviewee{},
		&model.Survey{},
		&model.Item{},
		&model.Question{},
		&model.Option{},
		&model.Section{},
		&model.Precondition{},
		&model.Submission{},
		&model.Answer{},
		&model.SurveySent{},
	)
}
