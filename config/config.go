package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amravati-mc/e-library-backend/models"
)

var DB *gorm.DB

func dsnFromEnv() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Kolkata",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"),
	)
}

func InitDB() {
	db, err := gorm.Open(postgres.Open(dsnFromEnv()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		log.Fatal("cannot connect to database:", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("cannot get sql.DB from gorm:", err)
	}

	// Connection pool: the DB is the only shared mutable resource, cap it.
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := DB.AutoMigrate(AllModels()...); err != nil {
		log.Fatal("autoMigrate failed: ", err)
	}
	log.Println("postgreSQL connected & migrated successfully!")
}

// AllModels lists every persisted model; shared with the test setup and
// the seed tool.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Book{},
		&models.Category{},
		&models.ReadingHistory{},
		&models.Announcement{},
		&models.Session{},
		&models.AccessLog{},
		&models.ReadingStreak{},
		&models.ReadingGoal{},
		&models.UserAchievement{},
	}
}

// ConnectDatabase returns a DB instance without migrating (used by cmd/seed).
func ConnectDatabase() (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsnFromEnv()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
}
