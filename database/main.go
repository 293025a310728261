package database

import (
	"fmt"
	"time"

	"mex/config"
	"mex/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Start opens the extraction cache and keeps the schema current. Callers
// gate it on config.Env.Caching; extraction itself never needs it.
func Start() {
	connectionString := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
		config.Env.DBUser,
		config.Env.DBPassword,
		config.Env.DBHost,
		config.Env.DBPort,
		config.Env.DBName,
	)
	db, err := gorm.Open(mysql.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		zap.S().Fatalf("failed to connect to database: %v", err)
	}
	DB = db
	sqlDB, err := DB.DB()
	if err != nil {
		zap.S().Fatalf("failed to get database connection: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	if err := sqlDB.Ping(); err != nil {
		zap.S().Fatalf("failed to ping database: %v", err)
	}
	if err := migrateDatabase(); err != nil {
		zap.S().Fatalf("failed to migrate database: %v", err)
	}
}

func migrateDatabase() error {
	return DB.AutoMigrate(
		&models.Media{},
		&models.MediaFormat{},
	)
}
