package service

import (
	"context"
	"time"

	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/pkg/planlimits"
	"mathtutor-be/internal/repository/specification"
	"mathtutor-be/internal/repository/unitofwork"
)

type IUsageService interface {
	// Allow reports whether the user may invoke the feature today.
	Allow(ctx context.Context, user *entity.User, feature string) (bool, error)
	// Record charges one invocation and returns today's post-increment count.
	Record(ctx context.Context, user *entity.User, feature string) (int, error)
	Summary(ctx context.Context, user *entity.User) (*dto.UsageSummaryResponse, error)
	// RetentionSweep deletes counters older than retainDays days.
	RetentionSweep(ctx context.Context, now time.Time, retainDays int) (int64, error)
}

type usageService struct {
	uowFactory unitofwork.RepositoryFactory
	limits     *planlimits.Table
}

func NewUsageService(uowFactory unitofwork.RepositoryFactory, limits *planlimits.Table) IUsageService {
	return &usageService{
		uowFactory: uowFactory,
		limits:     limits,
	}
}

func (s *usageService) Allow(ctx context.Context, user *entity.User, feature string) (bool, error) {
	plan := user.PlanId()
	if s.limits.LimitFor(plan, feature) == planlimits.Unlimited {
		return true, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	used, err := uow.UsageRepository().GetCount(ctx, user.Id, dayKey(time.Now()), feature)
	if err != nil {
		return false, err
	}
	return s.limits.Allows(plan, feature, used), nil
}

func (s *usageService) Record(ctx context.Context, user *entity.User, feature string) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UsageRepository().IncrementAndGet(ctx, user.Id, dayKey(time.Now()), feature)
}

func (s *usageService) Summary(ctx context.Context, user *entity.User) (*dto.UsageSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	today := dayKey(time.Now())
	plan := user.PlanId()

	// One query for the whole day; features without a row count as zero.
	counters, err := uow.UsageRepository().FindAll(ctx,
		specification.ByUserId{UserId: user.Id},
		specification.ByUsageDate{Date: today},
	)
	if err != nil {
		return nil, err
	}
	used := make(map[string]int, len(counters))
	for _, counter := range counters {
		used[counter.Feature] = counter.Count
	}

	features := make(map[string]dto.FeatureUsage, len(constant.AllFeatures()))
	for _, feature := range constant.AllFeatures() {
		limit := s.limits.LimitFor(plan, feature)
		features[feature] = featureUsage(used[feature], limit)
	}

	return &dto.UsageSummaryResponse{
		Date:     today,
		Plan:     plan,
		Features: features,
	}, nil
}

// featureUsage projects a raw count against its cap. Unlimited caps report
// remaining -1 and 0 percent so clients need no special cases beyond that.
func featureUsage(used int, limit int) dto.FeatureUsage {
	usage := dto.FeatureUsage{
		Used:      used,
		Limit:     limit,
		Unlimited: limit == planlimits.Unlimited,
	}
	if usage.Unlimited {
		usage.Remaining = -1
		return usage
	}
	usage.Remaining = limit - used
	if usage.Remaining < 0 {
		usage.Remaining = 0
	}
	if limit > 0 {
		usage.Percent = float64(used) / float64(limit) * 100
		if usage.Percent > 100 {
			usage.Percent = 100
		}
	}
	return usage
}

func (s *usageService) RetentionSweep(ctx context.Context, now time.Time, retainDays int) (int64, error) {
	if retainDays < 1 {
		retainDays = 1
	}
	cutoff := dayKey(now.AddDate(0, 0, -retainDays))
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UsageRepository().DeleteOlderThan(ctx, cutoff)
}
