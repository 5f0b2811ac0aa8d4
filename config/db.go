package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"traveling-backend/models"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// MySQLDSN resolves the connection string: MYSQL_URL, then DATABASE_URL, then the DB_* parts.
func (c *Config) MySQLDSN() (string, error) {
	raw := strings.TrimSpace(c.MySQLURL)
	if raw == "" {
		raw = strings.TrimSpace(c.DatabaseURL)
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName,
	), nil
}

func gormLogger(log *zap.Logger, production bool) logger.Interface {
	level := logger.Info
	if production {
		level = logger.Warn
	}
	return logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !production,
		},
	)
}

// Migrate creates or updates the rooms and booked_rooms tables, parent first.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Room{},
		&models.BookedRoom{},
	)
}

// SeedDatabase inserts a few demo rooms when the rooms table is empty.
func SeedDatabase(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("rooms already seeded")
		return nil
	}

	rooms := []models.Room{
		{RoomType: "Single", RoomPrice: 100},
		{RoomType: "Double", RoomPrice: 150},
		{RoomType: "Suite", RoomPrice: 320},
	}
	if err := db.Create(&rooms).Error; err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}
	log.Info("rooms seeded", zap.Int("count", len(rooms)))
	return nil
}

func ConnectDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	dsn, err := cfg.MySQLDSN()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         gormLogger(log, cfg.IsProduction()),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBMaxOpenConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConn)
		sqlDB.SetMaxIdleConns(cfg.DBMaxOpenConn / 2)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if cfg.DBAutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	if cfg.DBSeed {
		if err := SeedDatabase(db, log); err != nil {
			return nil, err
		}
	}
	return db, nil
}
