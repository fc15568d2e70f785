package service

import (
	"context"

	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
)

// nameResolver resolves user display names with a per-request memo so
// report listings do not look the same user up twice. A user that no longer
// exists resolves to an empty name; the weak relation is kept as-is.
type nameResolver struct {
	users repository.UserRepository
	memo  map[uint]string
}

func newNameResolver(users repository.UserRepository) *nameResolver {
	return &nameResolver{users: users, memo: make(map[uint]string)}
}

func (r *nameResolver) name(ctx context.Context, userID uint) string {
	if userID == 0 {
		return ""
	}
	if name, ok := r.memo[userID]; ok {
		return name
	}

	name := ""
	if user, err := r.users.GetByID(ctx, userID); err == nil {
		name = user.Name()
	}
	r.memo[userID] = name
	return name
}

func (r *nameResolver) reportNames(ctx context.Context, report models.Report) dto.ReportNames {
	names := dto.ReportNames{Reporter: r.name(ctx, report.ReporterID)}
	if report.BullyID != nil {
		names.Bully = r.name(ctx, *report.BullyID)
	}
	if report.BulliedID != nil {
		names.Bullied = r.name(ctx, *report.BulliedID)
	}
	return names
}

func (r *nameResolver) reportResponses(ctx context.Context, reports []models.Report) []dto.ReportResponse {
	responses := make([]dto.ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, dto.NewReportResponse(report, r.reportNames(ctx, report)))
	}
	return responses
}
