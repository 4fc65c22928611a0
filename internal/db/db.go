package db

import (
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Active bookings hold their start exactly once per barber and day.
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_active_slot
	ON bookings (barber_id, date, start_time)
	WHERE status <> 'cancelled'
`

func NewDB(cfg *config.Config) *gorm.DB {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	if err := SeedShop(db, cfg.ShopTimezone); err != nil {
		log.Fatal().Err(err).Msg("failed to seed shop settings")
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Shop{},
		&models.User{},
		&models.BarberService{},
		&models.WeeklyAvailability{},
		&models.Client{},
		&models.Booking{},
		&models.BlockedTime{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	return db.Exec(activeSlotIndex).Error
}

// SeedShop makes sure the single settings row exists and has a time zone.
func SeedShop(db *gorm.DB, timezone string) error {
	var count int64
	if err := db.Model(&models.Shop{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		log.Info().Str("timezone", timezone).Msg("creating shop settings")
		return db.Create(&models.Shop{
			Name:              "Barbershop",
			Timezone:          timezone,
			MinAdvanceMinutes: 60,
		}).Error
	}

	return db.Exec(`
        UPDATE shops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, timezone).Error
}
