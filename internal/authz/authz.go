// Package authz holds the capability matrix for the API: one pure predicate
// per (action, resource) pair. Predicates decide on the caller identity and
// the foreign keys already loaded on the resource; they never query, never
// mutate, and never explain a denial beyond the boolean.
package authz

import (
	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// Caller is the authenticated principal, resolved from the bearer token
// before any handler runs.
type Caller struct {
	ID             uint
	Role           models.Role
	OrganizationID uint
}

// IsTeacher reports whether the caller has teacher capabilities.
// Administrators count as teachers everywhere in the policy table.
func (c Caller) IsTeacher() bool {
	return c.Role.IsTeacher()
}

// IsAdministrator reports whether the caller has organization-admin rights.
func (c Caller) IsAdministrator() bool {
	return c.Role.IsAdministrator()
}

func (c Caller) sameOrganization(organizationID uint) bool {
	return c.OrganizationID == organizationID
}

func (c Caller) teacherOf(organizationID uint) bool {
	return c.IsTeacher() && c.sameOrganization(organizationID)
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

// CanShowProfile allows only the user themself to view their profile.
func CanShowProfile(caller Caller, profile models.User) bool {
	return caller.ID == profile.ID
}

// CanShowOwnOrganization allows members to view their own organization.
func CanShowOwnOrganization(caller Caller, organization models.Organization) bool {
	return caller.sameOrganization(organization.ID)
}

// ---------------------------------------------------------------------------
// Organization
// ---------------------------------------------------------------------------

// CanListOrganizations is reserved; nobody may list organizations.
func CanListOrganizations(Caller) bool { return false }

// CanCreateOrganization is reserved; nobody may create organizations.
func CanCreateOrganization(Caller) bool { return false }

// CanDeleteOrganization is reserved; nobody may delete organizations.
func CanDeleteOrganization(Caller, models.Organization) bool { return false }

// CanShowOrganization allows members of an organization to view it.
func CanShowOrganization(caller Caller, organization models.Organization) bool {
	return caller.sameOrganization(organization.ID)
}

// CanUpdateOrganization allows only administrators of the organization.
func CanUpdateOrganization(caller Caller, organization models.Organization) bool {
	return caller.IsAdministrator() && caller.sameOrganization(organization.ID)
}

// ---------------------------------------------------------------------------
// Students
// ---------------------------------------------------------------------------

// CanListStudents allows any member of the organization.
func CanListStudents(caller Caller, organization models.Organization) bool {
	return caller.sameOrganization(organization.ID)
}

// CanShowStudent allows the student themself or a teacher of their organization.
func CanShowStudent(caller Caller, student models.User) bool {
	return caller.ID == student.ID || caller.teacherOf(student.OrganizationID)
}

// CanUpdateStudent allows only the student themself.
func CanUpdateStudent(caller Caller, student models.User) bool {
	return caller.ID == student.ID
}

// CanDeleteStudent allows only the student themself.
func CanDeleteStudent(caller Caller, student models.User) bool {
	return caller.ID == student.ID
}

// CanListStudentReports allows the student themself or a teacher of their
// organization.
func CanListStudentReports(caller Caller, student models.User) bool {
	return caller.ID == student.ID || caller.teacherOf(student.OrganizationID)
}

// CanListStudentInvolvedReports allows the student themself or a teacher of
// their organization.
func CanListStudentInvolvedReports(caller Caller, student models.User) bool {
	return caller.ID == student.ID || caller.teacherOf(student.OrganizationID)
}

// ---------------------------------------------------------------------------
// Teachers
// ---------------------------------------------------------------------------

// CanListTeachers allows any member of the organization.
func CanListTeachers(caller Caller, organization models.Organization) bool {
	return caller.sameOrganization(organization.ID)
}

// CanShowTeacher allows any member of the teacher's organization.
func CanShowTeacher(caller Caller, teacher models.User) bool {
	return caller.sameOrganization(teacher.OrganizationID)
}

// CanUpdateTeacher allows only the teacher themself.
func CanUpdateTeacher(caller Caller, teacher models.User) bool {
	return caller.ID == teacher.ID
}

// CanDeleteTeacher allows only the teacher themself.
func CanDeleteTeacher(caller Caller, teacher models.User) bool {
	return caller.ID == teacher.ID
}

// CanListTeacherReports allows only the teacher themself.
func CanListTeacherReports(caller Caller, teacher models.User) bool {
	return caller.ID == teacher.ID
}

// CanListTeacherAssignedReports allows only the teacher themself.
func CanListTeacherAssignedReports(caller Caller, teacher models.User) bool {
	return caller.ID == teacher.ID
}

// ---------------------------------------------------------------------------
// Administrators
// ---------------------------------------------------------------------------

// CanManageAdministrators allows administrators of the organization.
func CanManageAdministrators(caller Caller, organization models.Organization) bool {
	return caller.IsAdministrator() && caller.sameOrganization(organization.ID)
}

// ---------------------------------------------------------------------------
// Cases
// ---------------------------------------------------------------------------

// CanListCases allows teachers of the organization.
func CanListCases(caller Caller, organization models.Organization) bool {
	return caller.teacherOf(organization.ID)
}

// CanCreateCase allows any member of the organization.
func CanCreateCase(caller Caller, organization models.Organization) bool {
	return caller.sameOrganization(organization.ID)
}

// CanShowCase allows teachers of the case's organization.
func CanShowCase(caller Caller, reportCase models.ReportCase) bool {
	return caller.teacherOf(reportCase.OrganizationID)
}

// CanUpdateCase allows teachers of the case's organization.
func CanUpdateCase(caller Caller, reportCase models.ReportCase) bool {
	return caller.teacherOf(reportCase.OrganizationID)
}

// CanDeleteCase allows teachers of the case's organization.
func CanDeleteCase(caller Caller, reportCase models.ReportCase) bool {
	return caller.teacherOf(reportCase.OrganizationID)
}

// CanListCaseReports allows teachers of the case's organization.
func CanListCaseReports(caller Caller, reportCase models.ReportCase) bool {
	return caller.teacherOf(reportCase.OrganizationID)
}

// ---------------------------------------------------------------------------
// Reports
// ---------------------------------------------------------------------------

// CanListReports allows teachers of the organization.
func CanListReports(caller Caller, organization models.Organization) bool {
	return caller.teacherOf(organization.ID)
}

// CanCreateReport allows any member of the case's organization to file a
// report into it.
func CanCreateReport(caller Caller, reportCase models.ReportCase) bool {
	return caller.sameOrganization(reportCase.OrganizationID)
}

// CanShowReport allows the reporter or a teacher of the case's organization.
// The report's Case must be loaded.
func CanShowReport(caller Caller, report models.Report) bool {
	return caller.ID == report.ReporterID || caller.teacherOf(report.Case.OrganizationID)
}

// CanUpdateReport allows only the reporter.
func CanUpdateReport(caller Caller, report models.Report) bool {
	return caller.ID == report.ReporterID
}

// CanDeleteReport allows only the reporter.
func CanDeleteReport(caller Caller, report models.Report) bool {
	return caller.ID == report.ReporterID
}

// CanListReportMessages allows the reporter or a teacher of the case's
// organization.
func CanListReportMessages(caller Caller, report models.Report) bool {
	return caller.ID == report.ReporterID || caller.teacherOf(report.Case.OrganizationID)
}

// CanMoveReport allows teachers of the case's organization to re-parent the
// report into another case.
func CanMoveReport(caller Caller, report models.Report) bool {
	return caller.teacherOf(report.Case.OrganizationID)
}

// CanTriageReport allows teachers of the case's organization to stamp the
// report opened or closed.
func CanTriageReport(caller Caller, report models.Report) bool {
	return caller.teacherOf(report.Case.OrganizationID)
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// CanCreateMessage allows the reporter or a teacher of the case's
// organization to post on a report.
func CanCreateMessage(caller Caller, report models.Report) bool {
	return caller.ID == report.ReporterID || caller.teacherOf(report.Case.OrganizationID)
}

// CanShowMessage allows the author or a teacher of the organization owning
// the report's case. The message's Report.Case must be loaded.
func CanShowMessage(caller Caller, message models.ReportMessage) bool {
	return caller.ID == message.AuthorID || caller.teacherOf(message.Report.Case.OrganizationID)
}

// CanUpdateMessage allows only the author.
func CanUpdateMessage(caller Caller, message models.ReportMessage) bool {
	return caller.ID == message.AuthorID
}

// CanDeleteMessage allows only the author.
func CanDeleteMessage(caller Caller, message models.ReportMessage) bool {
	return caller.ID == message.AuthorID
}
