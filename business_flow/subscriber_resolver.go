package businessflow

import (
	"context"
	"fmt"
	"log"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/repository"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

// SubscriberResolver maps a caller's phone number to a farmer record
type SubscriberResolver interface {
	Resolve(ctx context.Context, phone string) (*models.Subscriber, error)
	ResolveByScan(ctx context.Context, phone string) (*models.Subscriber, error)
}

// SubscriberResolverImpl implements SubscriberResolver
type SubscriberResolverImpl struct {
	subscriberRepo repository.SubscriberRepository
}

// NewSubscriberResolver creates a new subscriber resolver
func NewSubscriberResolver(subscriberRepo repository.SubscriberRepository) SubscriberResolver {
	return &SubscriberResolverImpl{subscriberRepo: subscriberRepo}
}

// Resolve tries the phone index with the plus sign stripped, then falls back to a full scan
func (r *SubscriberResolverImpl) Resolve(ctx context.Context, phone string) (*models.Subscriber, error) {
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	normalized := utils.NormalizePhone(phone)
	index, err := r.subscriberRepo.PhoneIndex(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to read phone index: %w", err)
	}
	if index != nil && index.SurveyNumber != "" {
		subscriber, err := r.subscriberRepo.ByID(ctx, index.SurveyNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to read farmer record: %w", err)
		}
		if subscriber != nil {
			subscriberLookupsTotal.WithLabelValues("index", "hit").Inc()
			return subscriber, nil
		}
	}
	subscriberLookupsTotal.WithLabelValues("index", "miss").Inc()

	return r.ResolveByScan(ctx, phone)
}

// ResolveByScan reads every farmer record and compares phone strings exactly,
// with and without a leading plus sign
func (r *SubscriberResolverImpl) ResolveByScan(ctx context.Context, phone string) (*models.Subscriber, error) {
	normalized := utils.NormalizePhone(phone)
	log.Printf("Subscriber index miss for %s, scanning farmer records", phone)

	subscribers, err := r.subscriberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan farmer records: %w", err)
	}

	for _, s := range subscribers {
		p := s.Phone
		if p == "" {
			continue
		}
		if p == phone || p == normalized || utils.NormalizePhone(p) == normalized {
			subscriberLookupsTotal.WithLabelValues("scan", "hit").Inc()
			return s, nil
		}
	}

	subscriberLookupsTotal.WithLabelValues("scan", "miss").Inc()
	return nil, ErrSubscriberNotFound
}
