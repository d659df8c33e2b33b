package repository

import "agristat/entities"

type RecordRepository interface {
	UpsertMany(rs []entities.CropRecord) error
	All() ([]entities.CropRecord, error)
	ByRegion(code string) ([]entities.CropRecord, error)
	ByYear(year int) ([]entities.CropRecord, error)
	LatestByRegion(code string) (*entities.CropRecord, error)
	FindByID(id string) (*entities.CropRecord, error)
	Regions() ([]string, error)
	LatestYear() (int, error)
	Count() (int64, error)
}
