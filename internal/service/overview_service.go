package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/authz"
	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
)

// OverviewService produces aggregated activity counts for an organization.
// Counts are cached in Redis; staleness up to the TTL is acceptable.
type OverviewService interface {
	Overview(ctx context.Context, caller authz.Caller, organizationID uint) (dto.OrganizationOverviewResponse, error)
}

type overviewService struct {
	organizations repository.OrganizationRepository
	cache         *redis.Client
	cacheTTL      time.Duration
	logger        zerolog.Logger
}

// NewOverviewService builds the overview aggregator.
func NewOverviewService(organizations repository.OrganizationRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) OverviewService {
	return &overviewService{
		organizations: organizations,
		cache:         cache,
		cacheTTL:      ttl,
		logger:        logger.With().Str("component", "overview_service").Logger(),
	}
}

func (s *overviewService) Overview(ctx context.Context, caller authz.Caller, organizationID uint) (dto.OrganizationOverviewResponse, error) {
	organization, err := s.organizations.GetByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OrganizationOverviewResponse{}, ErrOrganizationNotFound
		}
		return dto.OrganizationOverviewResponse{}, err
	}

	if !authz.CanShowOrganization(caller, organization) {
		return dto.OrganizationOverviewResponse{}, ErrForbidden
	}

	cacheKey := fmt.Sprintf("overview:org:%d", organizationID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.OrganizationOverviewResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("organization_id", organizationID).Msg("overview cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read overview cache")
		}
	}

	counts, err := s.organizations.Counts(ctx, organizationID)
	if err != nil {
		return dto.OrganizationOverviewResponse{}, err
	}

	response := dto.OrganizationOverviewResponse{
		OrganizationID: organizationID,
		Students:       counts.Students,
		Teachers:       counts.Teachers,
		Cases:          counts.Cases,
		Reports:        counts.Reports,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store overview cache")
			}
		}
	}

	return response, nil
}
