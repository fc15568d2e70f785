package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

func TestReportResponseRedactsAnonymousReporter(t *testing.T) {
	report := models.Report{
		ID:           1,
		Description:  "something happened",
		ReportCaseID: 2,
		ReporterID:   20,
		IsAnonymous:  true,
		Type:         1,
	}

	response := NewReportResponse(report, ReportNames{Reporter: "Essi Passoja"})
	require.Nil(t, response.ReporterID)
	require.Nil(t, response.ReporterName)
	require.True(t, response.IsAnonymous)
}

func TestReportResponseKeepsNonAnonymousReporter(t *testing.T) {
	report := models.Report{
		ID:           1,
		ReportCaseID: 2,
		ReporterID:   20,
		IsAnonymous:  false,
	}

	response := NewReportResponse(report, ReportNames{Reporter: "Essi Passoja"})
	require.NotNil(t, response.ReporterID)
	require.Equal(t, uint(20), *response.ReporterID)
	require.NotNil(t, response.ReporterName)
	require.Equal(t, "Essi Passoja", *response.ReporterName)
}

func TestReportResponseInvolvedNamesSurviveRedaction(t *testing.T) {
	bully := uint(7)
	report := models.Report{ID: 1, ReporterID: 20, BullyID: &bully, IsAnonymous: true}

	response := NewReportResponse(report, ReportNames{Reporter: "hidden", Bully: "Ville"})
	require.Nil(t, response.ReporterName)
	require.NotNil(t, response.BullyName)
	require.Equal(t, "Ville", *response.BullyName)
}

func TestReportResponseStatus(t *testing.T) {
	now := time.Now()

	require.Equal(t, "pending", NewReportResponse(models.Report{}, ReportNames{}).Status)
	require.Equal(t, "opened", NewReportResponse(models.Report{OpenedAt: &now}, ReportNames{}).Status)
	require.Equal(t, "closed", NewReportResponse(models.Report{OpenedAt: &now, ClosedAt: &now}, ReportNames{}).Status)
}

func TestMessageResponseRedaction(t *testing.T) {
	message := models.ReportMessage{ID: 3, Content: "help", ReportID: 1, AuthorID: 20, IsAnonymous: true}

	anonymous := NewMessageResponse(message, "Essi Passoja")
	require.Nil(t, anonymous.AuthorID)
	require.Nil(t, anonymous.AuthorName)

	message.IsAnonymous = false
	named := NewMessageResponse(message, "Essi Passoja")
	require.NotNil(t, named.AuthorID)
	require.Equal(t, uint(20), *named.AuthorID)
	require.Equal(t, "Essi Passoja", *named.AuthorName)
}
