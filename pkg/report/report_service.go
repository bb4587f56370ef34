package report

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/entities"
	"context"
	"errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type (
	ReportService interface {
		CreateReport(ctx context.Context, actor domain.Actor, req domain.CreateReportRequest) (*domain.Report, error)
		GetReports(ctx context.Context, status domain.ReportStatus, page, limit int) ([]*domain.Report, domain.Pagination, error)
		UpdateReport(ctx context.Context, reportID string, actor domain.Actor, req domain.UpdateReportRequest) (*domain.Report, error)
	}

	reportService struct {
		reportRepository ReportRepository
		now              func() time.Time
	}
)

func NewReportService(reportRepository ReportRepository) ReportService {
	return &reportService{
		reportRepository: reportRepository,
		now:              time.Now,
	}
}

func (s *reportService) CreateReport(ctx context.Context, actor domain.Actor, req domain.CreateReportRequest) (*domain.Report, error) {
	reporterID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	entityID, err := uuid.Parse(req.EntityID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	exists, err := s.reportRepository.EntityExists(ctx, req.EntityType, entityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrReportedEntityNotFound
	}

	report := &entities.Report{
		ID:          uuid.New(),
		ReporterID:  reporterID,
		EntityType:  req.EntityType,
		EntityID:    entityID,
		Reason:      req.Reason,
		Description: req.Description,
		Evidence:    req.Evidence,
		Status:      domain.ReportPending,
	}
	if err := s.reportRepository.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return toDomainReport(report), nil
}

func (s *reportService) GetReports(ctx context.Context, status domain.ReportStatus, page, limit int) ([]*domain.Report, domain.Pagination, error) {
	switch status {
	case "", domain.ReportPending, domain.ReportInvestigating, domain.ReportResolved, domain.ReportDismissed:
	default:
		return nil, domain.Pagination{}, domain.ErrInvalidReportStatus
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > domain.MaxPageLimit {
		limit = domain.DefaultPageLimit
	}

	reports, total, err := s.reportRepository.GetReports(ctx, status, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	result := make([]*domain.Report, 0, len(reports))
	for _, r := range reports {
		result = append(result, toDomainReport(r))
	}
	return result, domain.NewPagination(page, limit, total), nil
}

func (s *reportService) UpdateReport(ctx context.Context, reportID string, actor domain.Actor, req domain.UpdateReportRequest) (*domain.Report, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrUserNotAllowed
	}
	adminID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if _, err := uuid.Parse(reportID); err != nil {
		return nil, domain.ErrParseUUID
	}

	report, err := s.reportRepository.GetReportByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	if !report.Status.CanTransitionTo(req.Status) {
		return nil, domain.Wrapf(domain.ErrInvalidTransition, "cannot move report from %q to %q", report.Status, req.Status)
	}

	fields := map[string]any{
		"status": req.Status,
		"action": req.Action,
		"notes":  req.Notes,
	}
	if req.Status == domain.ReportResolved || req.Status == domain.ReportDismissed {
		now := s.now()
		fields["resolved_by"] = adminID
		fields["resolved_at"] = now
		report.ResolvedBy = &adminID
		report.ResolvedAt = &now
	}

	updated, err := s.reportRepository.UpdateReport(ctx, report.ID, report.Status, fields)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, domain.ErrReportChanged
	}

	report.Status = req.Status
	report.Action = req.Action
	report.Notes = req.Notes
	return toDomainReport(report), nil
}

func toDomainReport(r *entities.Report) *domain.Report {
	evidence := []string(r.Evidence)
	if evidence == nil {
		evidence = []string{}
	}
	return &domain.Report{
		ID:          r.ID.String(),
		ReporterID:  r.ReporterID.String(),
		EntityType:  r.EntityType,
		EntityID:    r.EntityID.String(),
		Reason:      r.Reason,
		Description: r.Description,
		Evidence:    evidence,
		Status:      r.Status,
		Action:      r.Action,
		Notes:       r.Notes,
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
	}
}
