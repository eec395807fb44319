// File: /database/database.go
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"milestone-api/logger"
	"milestone-api/models"
)

// Demo account created by SeedData.
const (
	SeedEmail    = "driver@milestone.app"
	SeedUsername = "demo_driver"
	SeedPassword = "Drive@2026"
)

func Initialize(databaseURL, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormLogLevel(logLevel)),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Tables returns every model the API persists.
func Tables() []interface{} {
	return []interface{}{
		&models.User{},
		&models.MileageRecord{},
		&models.TripRecord{},
		&models.AccountLogRecord{},
	}
}

func Migrate(db *gorm.DB, log *logger.Logger) error {
	log = log.WithComponent(logger.ComponentDatabase)

	if err := db.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	addDatabaseConstraints(db, log)

	log.Info("database migrated")
	return nil
}

type checkConstraint struct {
	table string
	model interface{}
	name  string
	expr  string
}

var recordConstraints = []checkConstraint{
	{"mileage_records", &models.MileageRecord{}, "ck_mileage_final_ge_initial", "final_km >= initial_km"},
	{"mileage_records", &models.MileageRecord{}, "ck_mileage_fuel_positive", "fuel_used > 0"},
	{"trip_records", &models.TripRecord{}, "ck_trip_final_gt_initial", "final_km > initial_km"},
	{"trip_records", &models.TripRecord{}, "ck_trip_price_positive", "price_per_km > 0"},
	{"account_log_records", &models.AccountLogRecord{}, "ck_account_log_cost_positive", "cost > 0"},
}

// addDatabaseConstraints mirrors the record invariants in the schema. Servers
// without CHECK support only get a warning.
func addDatabaseConstraints(db *gorm.DB, log *logger.Logger) {
	for _, c := range recordConstraints {
		if db.Migrator().HasConstraint(c.model, c.name) {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)", c.table, c.name, c.expr)
		if err := db.Exec(stmt).Error; err != nil {
			log.Warn("could not add check constraint", "constraint", c.name, logger.FieldError, err)
		}
	}
}

// SeedData creates a demo driver with a few records in the current month so a
// fresh install has something to show. It does nothing once users exist.
func SeedData(db *gorm.DB, log *logger.Logger) error {
	log = log.WithComponent(logger.ComponentDatabase)

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount > 0 {
		log.Info("database already has data, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	user, mileage, trip, expense := seedRecords(string(hash), time.Now())

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(mileage).Error; err != nil {
			return err
		}
		if err := tx.Create(trip).Error; err != nil {
			return err
		}
		return tx.Create(expense).Error
	})
	if err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	log.Info("database seeded with demo data", "email", SeedEmail)
	return nil
}

func seedRecords(passwordHash string, now time.Time) (*models.User, *models.MileageRecord, *models.TripRecord, *models.AccountLogRecord) {
	user := &models.User{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Email:    SeedEmail,
		Username: SeedUsername,
		UserType: models.UserTypeDriver,
		Password: passwordHash,
	}

	mileage := &models.MileageRecord{
		ID:        uuid.Must(uuid.NewV7()).String(),
		UserID:    user.ID,
		VehicleNo: "KA01AB1234",
		InitialKm: 12000,
		FinalKm:   12240,
		Distance:  240,
		FuelUsed:  6,
		Mileage:   40,
		Date:      now,
	}

	trip := &models.TripRecord{
		ID:           uuid.Must(uuid.NewV7()).String(),
		UserID:       user.ID,
		VehicleNo:    "KA01AB1234",
		InitialKm:    12240,
		FinalKm:      12290,
		PricePerKm:   12,
		KmDriven:     50,
		TotalCharges: 600,
		Time:         now,
	}

	expense := &models.AccountLogRecord{
		ID:        uuid.Must(uuid.NewV7()).String(),
		UserID:    user.ID,
		VehicleNo: "KA01AB1234",
		Reason:    "Fuel",
		Cost:      630,
		Date:      now,
	}

	return user, mileage, trip, expense
}
