// database/bootstrap.go
package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agristat/entities"
)

// OpenSQLite opens the dataset store or exits the process.
func OpenSQLite(path string) *gorm.DB {
	db, err := Open(path)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	return db
}

// Open opens path (":memory:" for a throwaway store), migrates the schema
// and backfills derived columns.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// every pooled connection would get its own empty in-memory database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(
		&entities.CropRecord{},
		&entities.SyncRun{},
		&entities.SyncState{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	if err := backfillRegionGroups(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// backfillRegionGroups fills region_group for rows written before the
// column existed.
func backfillRegionGroups(db *gorm.DB) error {
	var codes []string
	if err := db.Model(&entities.CropRecord{}).
		Where("region_group IS NULL OR region_group = ''").
		Distinct("region_code").
		Pluck("region_code", &codes).Error; err != nil {
		return fmt.Errorf("scan region codes: %w", err)
	}
	if len(codes) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, code := range codes {
			err := tx.Model(&entities.CropRecord{}).
				Where("region_code = ? AND (region_group IS NULL OR region_group = '')", code).
				Update("region_group", entities.RegionFor(code)).Error
			if err != nil {
				return err
			}
		}
		log.Printf("[db] backfilled region_group for %d region codes", len(codes))
		return nil
	})
}
