package dashboard

import (
	"Aahar-Backend/domain"
	"Aahar-Backend/internal/cache"
	"Aahar-Backend/pkg/donation"
	"Aahar-Backend/pkg/impact"
	"context"
	"errors"
	"github.com/gofiber/fiber/v2/log"
	"time"
)

type (
	Cache interface {
		Get(ctx context.Context, key string, value interface{}) error
		Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	}

	DashboardService interface {
		GetDonorDashboard(ctx context.Context, donorID string) (*domain.DonorDashboard, error)
		GetDonorAnalytics(ctx context.Context, donorID string, timeframeDays int) ([]domain.MonthlyAnalytics, error)
		GetVolunteerMetrics(ctx context.Context, volunteerID string) (*domain.VolunteerMetrics, error)
	}

	dashboardService struct {
		donationService donation.DonationService
		impactService   impact.ImpactService
		cache           Cache
	}
)

func NewDashboardService(donationService donation.DonationService, impactService impact.ImpactService, cache Cache) DashboardService {
	return &dashboardService{
		donationService: donationService,
		impactService:   impactService,
		cache:           cache,
	}
}

func (s *dashboardService) GetDonorDashboard(ctx context.Context, donorID string) (*domain.DonorDashboard, error) {
	key := cache.GetDashboardCacheKey(donorID)

	var cached domain.DonorDashboard
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	total, err := s.donationService.CountDonorDonations(ctx, donorID)
	if err != nil {
		return nil, err
	}
	active, err := s.donationService.CountDonorDonations(ctx, donorID, domain.ActiveDonationStatuses()...)
	if err != nil {
		return nil, err
	}
	impactMetrics, err := s.impactService.ComputeDonorImpact(ctx, donorID)
	if err != nil {
		return nil, err
	}
	account, err := s.impactService.GetAccountMetrics(ctx, donorID)
	if err != nil {
		return nil, err
	}
	recent, err := s.donationService.GetRecentDonations(ctx, donorID, domain.RecentDonations)
	if err != nil {
		return nil, err
	}

	dashboard := &domain.DonorDashboard{
		Statistics: domain.DonorStatistics{
			TotalDonations:  total,
			ActiveDonations: active,
			ImpactMetrics:   *impactMetrics,
			RewardPoints:    account.RewardPoints,
		},
		RecentDonations: recent,
	}
	s.store(ctx, key, dashboard)
	return dashboard, nil
}

func (s *dashboardService) GetDonorAnalytics(ctx context.Context, donorID string, timeframeDays int) ([]domain.MonthlyAnalytics, error) {
	if timeframeDays == 0 {
		timeframeDays = domain.DefaultAnalyticsTimeframe
	}
	key := cache.GetAnalyticsCacheKey(donorID, timeframeDays)

	var cached []domain.MonthlyAnalytics
	if s.lookup(ctx, key, &cached) {
		return cached, nil
	}

	analytics, err := s.impactService.ComputeMonthlyAnalytics(ctx, donorID, timeframeDays)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, analytics)
	return analytics, nil
}

func (s *dashboardService) GetVolunteerMetrics(ctx context.Context, volunteerID string) (*domain.VolunteerMetrics, error) {
	account, err := s.impactService.GetAccountMetrics(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	completed, err := s.donationService.CountVolunteerDonations(ctx, volunteerID, domain.StatusDelivered)
	if err != nil {
		return nil, err
	}
	active, err := s.donationService.CountVolunteerDonations(ctx, volunteerID, domain.StatusAssigned, domain.StatusInTransit)
	if err != nil {
		return nil, err
	}
	cancelled, err := s.donationService.CountVolunteerCancellations(ctx, volunteerID)
	if err != nil {
		return nil, err
	}

	return &domain.VolunteerMetrics{
		ImpactMetrics:       account.ImpactMetrics,
		CompletedDeliveries: completed,
		ActiveDeliveries:    active,
		CancelledDeliveries: cancelled,
	}, nil
}

func (s *dashboardService) lookup(ctx context.Context, key string, value interface{}) bool {
	err := s.cache.Get(ctx, key, value)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheDisabled) && !errors.Is(err, cache.ErrCacheMiss) {
		log.Warnf("read cache %s: %v", key, err)
	}
	return false
}

func (s *dashboardService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, 0); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
		log.Warnf("write cache %s: %v", key, err)
	}
}
