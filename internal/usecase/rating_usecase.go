package usecase

import (
	"catalog_service/internal/domain"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type RatingUseCase interface {
	RateProduct(ctx context.Context, id, kind string) (int64, error)
}

type ratingUseCase struct {
	productRepo domain.ProductRepository
	log         *logrus.Logger
	now         func() time.Time
}

func NewRatingUseCase(pRepo domain.ProductRepository, logger *logrus.Logger) RatingUseCase {
	return &ratingUseCase{
		productRepo: pRepo,
		log:         logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RateProduct adds exactly 1 to the product counter for kind. Validation
// happens before the store is touched; the increment itself is a single
// atomic store operation, so concurrent calls converge to the correct total.
func (uc *ratingUseCase) RateProduct(ctx context.Context, id, kind string) (int64, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		uc.log.Warn("Use Case: Attempted rating with empty product id")
		return 0, fmt.Errorf("%w: product id cannot be empty", domain.ErrInvalidInput)
	}

	var k domain.RatingKind
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case string(domain.RatingFavorite):
		k = domain.RatingFavorite
	case string(domain.RatingStar):
		k = domain.RatingStar
	default:
		uc.log.Warnf("Use Case: Invalid rating kind %q for product ID %s", kind, id)
		return 0, fmt.Errorf("%w: rating kind must be 'favorite' or 'star'", domain.ErrInvalidInput)
	}

	count, err := uc.productRepo.IncrementCounter(ctx, id, k, uc.now())
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to increment %s for product ID %s: %v", k, id, err)
		return 0, err
	}
	uc.log.Infof("Use Case: Product ID %s rated %s, counter now %d", id, k, count)
	return count, nil
}
