package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

func newReportService(e *env) ReportService {
	return NewReportService(e.reports, e.cases, e.messages, e.users, e.organizations, e.validator, e.logger)
}

func TestReportServiceCreateInNewCase(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")

	response, err := svc.CreateInNewCase(context.Background(), callerFor(student), dto.ReportCreateRequest{
		Description: "name-calling at lunch",
		IsAnonymous: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotZero(t, response.ReportCaseID)
	require.Equal(t, "pending", response.Status)
	require.Nil(t, response.ReporterID)

	created, err := e.cases.GetByID(context.Background(), response.ReportCaseID)
	require.NoError(t, err)
	require.True(t, created.IsUnnamed())
	require.Equal(t, org.ID, created.OrganizationID)
}

func TestReportServiceCreateIntoForeignCaseForbidden(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	other := e.createOrganization(t, "Toinen koulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	foreignCase := e.createCase(t, other.ID, "foreign")

	_, err := svc.Create(context.Background(), callerFor(student), foreignCase.ID, dto.ReportCreateRequest{
		Description: "x",
		IsAnonymous: boolPtr(true),
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestReportServiceShowRedactsAnonymousReporter(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	teacher := e.createUser(t, org.ID, models.RoleTeacher, "tiina")
	reportCase := e.createCase(t, org.ID, "break room")
	report := e.createReport(t, reportCase.ID, student.ID, true)

	// Even the reporter themself reads the redacted shape.
	for _, viewer := range []models.User{student, teacher} {
		response, err := svc.Show(context.Background(), callerFor(viewer), report.ID)
		require.NoError(t, err)
		require.Nil(t, response.ReporterID)
		require.Nil(t, response.ReporterName)
	}
}

func TestReportServiceShowKeepsNamedReporter(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	reportCase := e.createCase(t, org.ID, "break room")
	report := e.createReport(t, reportCase.ID, student.ID, false)

	response, err := svc.Show(context.Background(), callerFor(student), report.ID)
	require.NoError(t, err)
	require.NotNil(t, response.ReporterID)
	require.Equal(t, student.ID, *response.ReporterID)
	require.NotNil(t, response.ReporterName)
	require.Equal(t, student.Name(), *response.ReporterName)
}

func TestReportServiceShowForbiddenForUnrelatedStudent(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	reporter := e.createUser(t, org.ID, models.RoleStudent, "sami")
	bystander := e.createUser(t, org.ID, models.RoleStudent, "beca")
	reportCase := e.createCase(t, org.ID, "break room")
	report := e.createReport(t, reportCase.ID, reporter.ID, true)

	_, err := svc.Show(context.Background(), callerFor(bystander), report.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestReportServiceShowForbiddenForForeignTeacher(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	other := e.createOrganization(t, "Toinen koulu")
	reporter := e.createUser(t, org.ID, models.RoleStudent, "sami")
	foreignTeacher := e.createUser(t, other.ID, models.RoleTeacher, "outi")
	reportCase := e.createCase(t, org.ID, "break room")
	report := e.createReport(t, reportCase.ID, reporter.ID, true)

	_, err := svc.Show(context.Background(), callerFor(foreignTeacher), report.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestReportServiceUpdateStripsMarkup(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	reportCase := e.createCase(t, org.ID, "break room")
	report := e.createReport(t, reportCase.ID, student.ID, true)

	response, err := svc.Update(context.Background(), callerFor(student), report.ID, dto.ReportUpdateRequest{
		Description: strPtr(`<script>alert(1)</script>shoved in the hallway`),
	})
	require.NoError(t, err)
	require.Equal(t, "shoved in the hallway", response.Description)
}

func TestReportServiceUpdateForbiddenForTeacher(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	teacher := e.createUser(t, org.ID, models.RoleTeacher, "tiina")
	reportCase := e.createCase(t, org.ID, "break room")
	report := e.createReport(t, reportCase.ID, student.ID, true)

	_, err := svc.Update(context.Background(), callerFor(teacher), report.ID, dto.ReportUpdateRequest{
		Description: strPtr("rewritten"),
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestReportServiceMoveCleansDanglingCase(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	teacher := e.createUser(t, org.ID, models.RoleTeacher, "tiina")
	source := e.createCase(t, org.ID, "")
	target := e.createCase(t, org.ID, "collected incidents")
	report := e.createReport(t, source.ID, student.ID, true)

	response, err := svc.Move(context.Background(), callerFor(teacher), report.ID, dto.ReportMoveRequest{
		ReportCaseID: target.ID,
	})
	require.NoError(t, err)
	require.Equal(t, target.ID, response.ReportCaseID)

	_, err = e.cases.GetByID(context.Background(), source.ID)
	require.Error(t, err)
}

func TestReportServiceMoveKeepsNamedSourceCase(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	teacher := e.createUser(t, org.ID, models.RoleTeacher, "tiina")
	source := e.createCase(t, org.ID, "named source")
	target := e.createCase(t, org.ID, "target")
	report := e.createReport(t, source.ID, student.ID, true)

	_, err := svc.Move(context.Background(), callerFor(teacher), report.ID, dto.ReportMoveRequest{
		ReportCaseID: target.ID,
	})
	require.NoError(t, err)

	kept, err := e.cases.GetByID(context.Background(), source.ID)
	require.NoError(t, err)
	require.Equal(t, "named source", kept.Name)
}

func TestReportServiceMoveAcrossOrganizationsRejected(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	other := e.createOrganization(t, "Toinen koulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	teacher := e.createUser(t, org.ID, models.RoleTeacher, "tiina")
	source := e.createCase(t, org.ID, "source")
	foreign := e.createCase(t, other.ID, "foreign")
	report := e.createReport(t, source.ID, student.ID, true)

	_, err := svc.Move(context.Background(), callerFor(teacher), report.ID, dto.ReportMoveRequest{
		ReportCaseID: foreign.ID,
	})
	require.ErrorIs(t, err, ErrCaseNotFound)
}

func TestReportServiceMoveForbiddenForReporter(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	source := e.createCase(t, org.ID, "source")
	target := e.createCase(t, org.ID, "target")
	report := e.createReport(t, source.ID, student.ID, true)

	_, err := svc.Move(context.Background(), callerFor(student), report.ID, dto.ReportMoveRequest{
		ReportCaseID: target.ID,
	})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestReportServiceTriageLifecycle(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	teacher := e.createUser(t, org.ID, models.RoleTeacher, "tiina")
	reportCase := e.createCase(t, org.ID, "break room")
	report := e.createReport(t, reportCase.ID, student.ID, true)

	opened, err := svc.Open(context.Background(), callerFor(teacher), report.ID)
	require.NoError(t, err)
	require.Equal(t, "opened", opened.Status)
	require.NotNil(t, opened.OpenedAt)

	// A second open keeps the original stamp.
	reopened, err := svc.Open(context.Background(), callerFor(teacher), report.ID)
	require.NoError(t, err)
	require.Equal(t, opened.OpenedAt.Unix(), reopened.OpenedAt.Unix())

	closed, err := svc.Close(context.Background(), callerFor(teacher), report.ID)
	require.NoError(t, err)
	require.Equal(t, "closed", closed.Status)
	require.NotNil(t, closed.ClosedAt)
}

func TestReportServiceTriageForbiddenForStudent(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	reportCase := e.createCase(t, org.ID, "break room")
	report := e.createReport(t, reportCase.ID, student.ID, true)

	_, err := svc.Open(context.Background(), callerFor(student), report.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestReportServiceListRequiresTeacher(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	teacher := e.createUser(t, org.ID, models.RoleTeacher, "tiina")
	reportCase := e.createCase(t, org.ID, "break room")
	e.createReport(t, reportCase.ID, student.ID, true)

	_, err := svc.List(context.Background(), callerFor(student))
	require.ErrorIs(t, err, ErrForbidden)

	reports, err := svc.List(context.Background(), callerFor(teacher))
	require.NoError(t, err)
	require.Len(t, reports, 1)
}

func TestReportServiceShowNotFound(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")

	_, err := svc.Show(context.Background(), callerFor(student), 9999)
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestReportServiceDeleteByReporter(t *testing.T) {
	e := newEnv(t)
	svc := newReportService(e)

	org := e.createOrganization(t, "Keskuskoulu")
	student := e.createUser(t, org.ID, models.RoleStudent, "sami")
	reportCase := e.createCase(t, org.ID, "break room")
	report := e.createReport(t, reportCase.ID, student.ID, true)

	require.NoError(t, svc.Delete(context.Background(), callerFor(student), report.ID))

	_, err := svc.Show(context.Background(), callerFor(student), report.ID)
	require.ErrorIs(t, err, ErrReportNotFound)
}
