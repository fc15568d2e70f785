package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

const (
	orgA uint = 1
	orgB uint = 2
)

func student(id, org uint) Caller {
	return Caller{ID: id, Role: models.RoleStudent, OrganizationID: org}
}

func teacher(id, org uint) Caller {
	return Caller{ID: id, Role: models.RoleTeacher, OrganizationID: org}
}

func admin(id, org uint) Caller {
	return Caller{ID: id, Role: models.RoleAdministrator, OrganizationID: org}
}

func reportIn(org uint, reporterID uint) models.Report {
	return models.Report{
		ID:           42,
		ReporterID:   reporterID,
		ReportCaseID: 7,
		Case:         models.ReportCase{ID: 7, OrganizationID: org},
	}
}

func TestProfileAndOrganizationGates(t *testing.T) {
	me := models.User{ID: 10, Role: models.RoleStudent, OrganizationID: orgA}

	require.True(t, CanShowProfile(student(10, orgA), me))
	require.False(t, CanShowProfile(student(11, orgA), me))

	org := models.Organization{ID: orgA}
	require.True(t, CanShowOwnOrganization(student(10, orgA), org))
	require.False(t, CanShowOwnOrganization(student(10, orgB), org))

	require.True(t, CanShowOrganization(teacher(1, orgA), org))
	require.False(t, CanShowOrganization(teacher(1, orgB), org))

	// Update requires the administrator role, membership alone is not enough.
	require.True(t, CanUpdateOrganization(admin(1, orgA), org))
	require.False(t, CanUpdateOrganization(admin(1, orgB), org))
	require.False(t, CanUpdateOrganization(teacher(1, orgA), org))
	require.False(t, CanUpdateOrganization(student(1, orgA), org))
}

func TestOrganizationReservedGatesAlwaysDeny(t *testing.T) {
	org := models.Organization{ID: orgA}
	for _, caller := range []Caller{student(1, orgA), teacher(2, orgA), admin(3, orgA)} {
		require.False(t, CanListOrganizations(caller))
		require.False(t, CanCreateOrganization(caller))
		require.False(t, CanDeleteOrganization(caller, org))
	}
}

func TestStudentGates(t *testing.T) {
	target := models.User{ID: 20, Role: models.RoleStudent, OrganizationID: orgA}

	cases := []struct {
		name   string
		caller Caller
		show   bool
		update bool
	}{
		{"self", student(20, orgA), true, true},
		{"other student same org", student(21, orgA), false, false},
		{"teacher same org", teacher(30, orgA), true, false},
		{"administrator same org", admin(31, orgA), true, false},
		{"teacher other org", teacher(30, orgB), false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.show, CanShowStudent(tc.caller, target))
			require.Equal(t, tc.show, CanListStudentReports(tc.caller, target))
			require.Equal(t, tc.show, CanListStudentInvolvedReports(tc.caller, target))
			require.Equal(t, tc.update, CanUpdateStudent(tc.caller, target))
			require.Equal(t, tc.update, CanDeleteStudent(tc.caller, target))
		})
	}

	org := models.Organization{ID: orgA}
	require.True(t, CanListStudents(student(20, orgA), org))
	require.False(t, CanListStudents(student(20, orgB), org))
}

func TestTeacherGates(t *testing.T) {
	target := models.User{ID: 40, Role: models.RoleTeacher, OrganizationID: orgA}

	require.True(t, CanShowTeacher(student(20, orgA), target))
	require.False(t, CanShowTeacher(student(20, orgB), target))

	require.True(t, CanUpdateTeacher(teacher(40, orgA), target))
	require.False(t, CanUpdateTeacher(teacher(41, orgA), target))
	require.False(t, CanUpdateTeacher(admin(42, orgA), target))

	require.True(t, CanListTeacherReports(teacher(40, orgA), target))
	require.False(t, CanListTeacherReports(teacher(41, orgA), target))
	require.True(t, CanListTeacherAssignedReports(teacher(40, orgA), target))
	require.False(t, CanListTeacherAssignedReports(admin(42, orgA), target))
}

func TestCaseGatesRequireTeacherOfOrganization(t *testing.T) {
	reportCase := models.ReportCase{ID: 7, OrganizationID: orgA}
	org := models.Organization{ID: orgA}

	// Organization-scoped visibility: teacher role alone is not enough.
	require.True(t, CanShowCase(teacher(1, orgA), reportCase))
	require.False(t, CanShowCase(teacher(1, orgB), reportCase))
	require.False(t, CanShowCase(student(1, orgA), reportCase))
	require.True(t, CanShowCase(admin(1, orgA), reportCase))

	require.True(t, CanListCases(teacher(1, orgA), org))
	require.False(t, CanListCases(student(1, orgA), org))

	// Any member may open a case; only staff manage existing ones.
	require.True(t, CanCreateCase(student(1, orgA), org))
	require.False(t, CanCreateCase(student(1, orgB), org))
	require.False(t, CanUpdateCase(student(1, orgA), reportCase))
	require.False(t, CanDeleteCase(student(1, orgA), reportCase))
	require.True(t, CanListCaseReports(teacher(1, orgA), reportCase))
	require.False(t, CanListCaseReports(teacher(1, orgB), reportCase))
}

func TestReportGates(t *testing.T) {
	report := reportIn(orgA, 20)

	// Reporter always sees their own report.
	require.True(t, CanShowReport(student(20, orgA), report))
	// Teachers of the owning organization see it.
	require.True(t, CanShowReport(teacher(30, orgA), report))
	require.True(t, CanShowReport(admin(31, orgA), report))
	// A teacher in a different organization does not.
	require.False(t, CanShowReport(teacher(30, orgB), report))
	// Another student in the same organization does not.
	require.False(t, CanShowReport(student(21, orgA), report))

	// Mutation is reporter-only, for every other caller.
	for _, caller := range []Caller{student(21, orgA), teacher(30, orgA), admin(31, orgA), teacher(30, orgB)} {
		require.False(t, CanUpdateReport(caller, report))
		require.False(t, CanDeleteReport(caller, report))
	}
	require.True(t, CanUpdateReport(student(20, orgA), report))
	require.True(t, CanDeleteReport(student(20, orgA), report))

	require.True(t, CanMoveReport(teacher(30, orgA), report))
	require.False(t, CanMoveReport(student(20, orgA), report), "even the reporter cannot move their report")
	require.False(t, CanMoveReport(teacher(30, orgB), report))

	require.True(t, CanTriageReport(teacher(30, orgA), report))
	require.False(t, CanTriageReport(student(20, orgA), report))

	reportCase := models.ReportCase{ID: 7, OrganizationID: orgA}
	require.True(t, CanCreateReport(student(20, orgA), reportCase))
	require.True(t, CanCreateReport(teacher(30, orgA), reportCase))
	require.False(t, CanCreateReport(student(20, orgB), reportCase))
}

func TestMessageGates(t *testing.T) {
	message := models.ReportMessage{
		ID:       5,
		AuthorID: 20,
		ReportID: 42,
		Report:   reportIn(orgA, 20),
	}

	require.True(t, CanShowMessage(student(20, orgA), message))
	require.True(t, CanShowMessage(teacher(30, orgA), message))
	// Not author, not teacher: denied even inside the same organization.
	require.False(t, CanShowMessage(student(21, orgA), message))
	require.False(t, CanShowMessage(teacher(30, orgB), message))

	require.True(t, CanUpdateMessage(student(20, orgA), message))
	require.False(t, CanUpdateMessage(student(21, orgA), message))
	require.False(t, CanUpdateMessage(teacher(30, orgA), message))
	require.True(t, CanDeleteMessage(student(20, orgA), message))
	require.False(t, CanDeleteMessage(teacher(30, orgA), message))

	report := reportIn(orgA, 20)
	require.True(t, CanCreateMessage(student(20, orgA), report))
	require.True(t, CanCreateMessage(teacher(30, orgA), report))
	require.False(t, CanCreateMessage(student(21, orgA), report))
}

func TestAdministratorGates(t *testing.T) {
	org := models.Organization{ID: orgA}
	require.True(t, CanManageAdministrators(admin(1, orgA), org))
	require.False(t, CanManageAdministrators(admin(1, orgB), org))
	require.False(t, CanManageAdministrators(teacher(1, orgA), org))
}
