package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReportStatusDerivation(t *testing.T) {
	now := time.Now()

	report := Report{}
	require.Equal(t, ReportStatusPending, report.Status())

	report.OpenedAt = &now
	require.Equal(t, ReportStatusOpened, report.Status())

	report.ClosedAt = &now
	require.Equal(t, ReportStatusClosed, report.Status())

	// Closed wins even without an opened stamp.
	onlyClosed := Report{ClosedAt: &now}
	require.Equal(t, ReportStatusClosed, onlyClosed.Status())
}

func TestReportOpenCloseIdempotent(t *testing.T) {
	first := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	report := Report{}
	report.Open(first)
	report.Open(second)
	require.Equal(t, first, *report.OpenedAt)

	report.Close(first)
	report.Close(second)
	require.Equal(t, first, *report.ClosedAt)
}

func TestReportCaseIsUnnamed(t *testing.T) {
	require.True(t, ReportCase{}.IsUnnamed())
	require.False(t, ReportCase{Name: "Playground incidents"}.IsUnnamed())
}

func TestUserName(t *testing.T) {
	require.Equal(t, "Essi Passoja", User{FirstName: "Essi", LastName: "Passoja"}.Name())
	require.Equal(t, "Essi", User{FirstName: "Essi"}.Name())
	require.Equal(t, "Passoja", User{LastName: "Passoja"}.Name())
}
