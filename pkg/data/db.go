package data

import (
	"context"
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LocationInformation is the sun information of one location on one day.
// Times are stored preformatted, as they are served.
type LocationInformation struct {
	ID              uint    `gorm:"primaryKey"`
	LocationName    string  `gorm:"not null;uniqueIndex:idx_location_day"`
	Latitude        float64 `gorm:"not null;uniqueIndex:idx_location_day"`
	Longitude       float64 `gorm:"not null;uniqueIndex:idx_location_day"`
	InformationDate string  `gorm:"not null;size:10;uniqueIndex:idx_location_day"`
	Sunrise         string
	Sunset          string
	GoldenHour      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Key identifies a location.
type Key struct {
	Name     string
	Lat, Lon float64
}

func (info *LocationInformation) Key() Key {
	return Key{Name: info.LocationName, Lat: info.Latitude, Lon: info.Longitude}
}

// PostgresFromEnv connects using the libpq environment variables.
func PostgresFromEnv() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("PGHOST"),
		envOr("PGUSER", "postgres"),
		os.Getenv("PGPASSWORD"),
		envOr("PGDATABASE", "sunrange"),
		envOr("PGPORT", "5432"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Postgres stores location information with gorm.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres migrates the schema and returns a store over db.
func NewPostgres(db *gorm.DB) (*Postgres, error) {
	if err := db.AutoMigrate(&LocationInformation{}); err != nil {
		return nil, fmt.Errorf("migrate location_informations: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Range returns the stored days of key between start and end inclusive,
// ordered by date.
func (p *Postgres) Range(ctx context.Context, key Key, start, end string) ([]LocationInformation, error) {
	var infos []LocationInformation
	tx := p.db.WithContext(ctx).
		Where("location_name = ? AND latitude = ? AND longitude = ?", key.Name, key.Lat, key.Lon).
		Where("information_date BETWEEN ? AND ?", start, end).
		Order("information_date").
		Find(&infos)
	if tx.Error != nil {
		return nil, fmt.Errorf("query location_informations: %w", tx.Error)
	}
	return infos, nil
}

// Insert saves infos, skipping days that are already stored.
func (p *Postgres) Insert(ctx context.Context, infos []LocationInformation) error {
	if len(infos) == 0 {
		return nil
	}
	tx := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&infos)
	if tx.Error != nil {
		return fmt.Errorf("insert location_informations: %w", tx.Error)
	}
	return nil
}
