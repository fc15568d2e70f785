package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

func newOverviewService(t *testing.T, e *env) (OverviewService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewOverviewService(e.organizations, cache, time.Minute, e.logger), mr
}

func TestOverviewServiceCounts(t *testing.T) {
	e := newEnv(t)
	svc, _ := newOverviewService(t, e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	e.createUser(t, org.ID, models.RoleStudent, "beca")
	e.createUser(t, org.ID, models.RoleTeacher, "tiina")
	reportCase := e.createCase(t, org.ID, "break room")
	e.createReport(t, reportCase.ID, student.ID, true)

	overview, err := svc.Overview(context.Background(), callerFor(student), org.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), overview.Students)
	require.Equal(t, int64(1), overview.Teachers)
	require.Equal(t, int64(1), overview.Cases)
	require.Equal(t, int64(1), overview.Reports)
}

func TestOverviewServiceServesCachedCounts(t *testing.T) {
	e := newEnv(t)
	svc, _ := newOverviewService(t, e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")

	first, err := svc.Overview(context.Background(), callerFor(student), org.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), first.Students)

	// New accounts are invisible until the cache entry expires.
	e.createUser(t, org.ID, models.RoleStudent, "beca")

	second, err := svc.Overview(context.Background(), callerFor(student), org.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), second.Students)
}

func TestOverviewServiceRecomputesAfterExpiry(t *testing.T) {
	e := newEnv(t)
	svc, mr := newOverviewService(t, e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")

	_, err := svc.Overview(context.Background(), callerFor(student), org.ID)
	require.NoError(t, err)

	e.createUser(t, org.ID, models.RoleStudent, "beca")
	mr.FastForward(2 * time.Minute)

	refreshed, err := svc.Overview(context.Background(), callerFor(student), org.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), refreshed.Students)
}

func TestOverviewServiceForbiddenForOutsider(t *testing.T) {
	e := newEnv(t)
	svc, _ := newOverviewService(t, e)

	org := e.createOrganization(t, "Keskuskoulu")
	other := e.createOrganization(t, "Toinen koulu")
	outsider := e.createUser(t, other.ID, models.RoleAdministrator, "aino")

	_, err := svc.Overview(context.Background(), callerFor(outsider), org.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestOverviewServiceWorksWithoutCache(t *testing.T) {
	e := newEnv(t)
	svc := NewOverviewService(e.organizations, nil, time.Minute, e.logger)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")

	overview, err := svc.Overview(context.Background(), callerFor(student), org.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), overview.Students)
}
