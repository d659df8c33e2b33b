package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"agristat/entities"
	"agristat/pkg/record/repository"
)

type recordRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RecordRepository { return &recordRepo{db} }

// UpsertMany inserts records, replacing the figures of any record that
// already exists for the same region, year and crop.
func (r *recordRepo) UpsertMany(rs []entities.CropRecord) error {
	if len(rs) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "region_code"}, {Name: "year"}, {Name: "crop_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"region_group", "production", "productivity", "area", "captured_at"}),
	}).CreateInBatches(&rs, 200).Error
}

func (r *recordRepo) All() ([]entities.CropRecord, error) {
	var out []entities.CropRecord
	return out, r.db.Order("year ASC, id ASC").Find(&out).Error
}

func (r *recordRepo) ByRegion(code string) ([]entities.CropRecord, error) {
	var out []entities.CropRecord
	err := r.db.Where("region_code = ?", strings.ToUpper(code)).Order("year ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *recordRepo) ByYear(year int) ([]entities.CropRecord, error) {
	var out []entities.CropRecord
	return out, r.db.Where("year = ?", year).Order("id ASC").Find(&out).Error
}

func (r *recordRepo) LatestByRegion(code string) (*entities.CropRecord, error) {
	var out entities.CropRecord
	err := r.db.Where("region_code = ?", strings.ToUpper(code)).Order("year DESC, id ASC").First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *recordRepo) FindByID(id string) (*entities.CropRecord, error) {
	var out entities.CropRecord
	if err := r.db.Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *recordRepo) Regions() ([]string, error) {
	var out []string
	err := r.db.Model(&entities.CropRecord{}).Distinct("region_code").Order("region_code ASC").Pluck("region_code", &out).Error
	return out, err
}

func (r *recordRepo) LatestYear() (int, error) {
	var year *int
	if err := r.db.Model(&entities.CropRecord{}).Select("MAX(year)").Scan(&year).Error; err != nil {
		return 0, err
	}
	if year == nil {
		return 0, nil
	}
	return *year, nil
}

func (r *recordRepo) Count() (int64, error) {
	var n int64
	return n, r.db.Model(&entities.CropRecord{}).Count(&n).Error
}
