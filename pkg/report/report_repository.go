package report

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReportRepository interface {
		CreateReport(ctx context.Context, report *entities.Report) error
		GetReports(ctx context.Context, status domain.ReportStatus, page, limit int) ([]*entities.Report, int64, error)
		GetReportByID(ctx context.Context, id string) (*entities.Report, error)
		EntityExists(ctx context.Context, entityType string, id uuid.UUID) (bool, error)
		// UpdateReport applies fields only while the report is still in
		// status from. It reports whether a row was changed.
		UpdateReport(ctx context.Context, id uuid.UUID, from domain.ReportStatus, fields map[string]any) (bool, error)
	}

	reportRepository struct {
		db *gorm.DB
	}
)

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CreateReport(ctx context.Context, report *entities.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetReports(ctx context.Context, status domain.ReportStatus, page, limit int) ([]*entities.Report, int64, error) {
	var (
		reports []*entities.Report
		total   int64
	)

	query := r.db.WithContext(ctx).Model(&entities.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) GetReportByID(ctx context.Context, id string) (*entities.Report, error) {
	var report entities.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) EntityExists(ctx context.Context, entityType string, id uuid.UUID) (bool, error) {
	var model any
	switch entityType {
	case "User":
		model = &entities.User{}
	case "Donation":
		model = &entities.Donation{}
	case "Review":
		model = &entities.Review{}
	default:
		return false, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reportRepository) UpdateReport(ctx context.Context, id uuid.UUID, from domain.ReportStatus, fields map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Report{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
