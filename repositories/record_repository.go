package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"milestone-api/models"
)

// RecordRepository is the gorm-backed store for mileage, trip and account log
// records. Every query is scoped to the owning user.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func ownedBy(userID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// since keeps rows whose column is at or after t. A nil t keeps everything.
func since(column string, t *time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if t == nil {
			return db
		}
		return db.Where(column+" >= ?", *t)
	}
}

func mileageQuery(db *gorm.DB, userID string) *gorm.DB {
	return db.Model(&models.MileageRecord{}).
		Scopes(ownedBy(userID)).
		Order("date DESC, id DESC")
}

func tripsQuery(db *gorm.DB, userID string, from *time.Time) *gorm.DB {
	return db.Model(&models.TripRecord{}).
		Scopes(ownedBy(userID), since("trip_time", from)).
		Order("trip_time DESC, id DESC")
}

func accountLogsQuery(db *gorm.DB, userID string, from *time.Time) *gorm.DB {
	return db.Model(&models.AccountLogRecord{}).
		Scopes(ownedBy(userID), since("date", from)).
		Order("date DESC, id DESC")
}

func (r *RecordRepository) CreateMileage(ctx context.Context, record *models.MileageRecord) error {
	return translate(r.db.WithContext(ctx).Create(record).Error)
}

func (r *RecordRepository) CreateTrip(ctx context.Context, record *models.TripRecord) error {
	return translate(r.db.WithContext(ctx).Create(record).Error)
}

func (r *RecordRepository) CreateAccountLog(ctx context.Context, record *models.AccountLogRecord) error {
	return translate(r.db.WithContext(ctx).Create(record).Error)
}

// FindMileage returns all of the user's mileage records, newest first.
func (r *RecordRepository) FindMileage(ctx context.Context, userID string) ([]models.MileageRecord, error) {
	var records []models.MileageRecord
	if err := mileageQuery(r.db.WithContext(ctx), userID).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindTrips returns the user's trips, optionally only those at or after from.
func (r *RecordRepository) FindTrips(ctx context.Context, userID string, from *time.Time) ([]models.TripRecord, error) {
	var records []models.TripRecord
	if err := tripsQuery(r.db.WithContext(ctx), userID, from).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAccountLogs returns the user's expenses, optionally only those at or
// after from.
func (r *RecordRepository) FindAccountLogs(ctx context.Context, userID string, from *time.Time) ([]models.AccountLogRecord, error) {
	var records []models.AccountLogRecord
	if err := accountLogsQuery(r.db.WithContext(ctx), userID, from).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
