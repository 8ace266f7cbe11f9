package report_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Make-USA-LLC/floortrack/internal/models"
	"github.com/Make-USA-LLC/floortrack/internal/session"
	"github.com/Make-USA-LLC/floortrack/internal/testutil"
	"github.com/Make-USA-LLC/floortrack/report"
)

type TestCase struct {
	Name       string
	GoldenFile string
	Snapshot   []byte `json:"-"`
}

func (t TestCase) Output() (out []byte, name string) {
	return t.Snapshot, t.GoldenFile
}

func sampleWorkers() []session.Worker {
	return []session.Worker{
		{ID: "04A1", TotalMinutes: 75.5},
		{ID: "07C2", TotalMinutes: 12.3},
	}
}

func TestBuild(t *testing.T) {
	meta := models.ProjectMeta{
		Company: "Brightline Mfg",
		Project: "Conveyor Retrofit",
		Leader:  "D. Ortiz",
	}
	names := map[string]string{"04A1": "Rosa Vega"}
	completed := time.Date(2026, time.March, 14, 14, 30, 0, 0, time.UTC)

	got := report.Build(
		meta,
		sampleWorkers(),
		names,
		completed,
		models.BonusState{Eligible: false, Reason: "QC crew hold"},
	)

	want := &models.Report{
		Meta: meta,
		Workers: []models.WorkerReport{
			{ID: "04A1", Name: "Rosa Vega", Minutes: 75.5},
			{ID: "07C2", Name: "ID: 07C2", Minutes: 12.3},
		},
		CompletedAt: completed,
		BonusStatus: "cancelled: QC crew hold",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestTextGolden(t *testing.T) {
	r := report.Build(
		models.ProjectMeta{
			Company:  "Brightline Mfg",
			Project:  "Conveyor Retrofit",
			Leader:   "D. Ortiz",
			Category: "Assembly",
			Size:     "Medium",
		},
		sampleWorkers(),
		map[string]string{"04A1": "Rosa Vega"},
		time.Date(2026, time.March, 14, 14, 30, 0, 0, time.UTC),
		models.BonusState{Eligible: true},
	)

	tc := TestCase{
		Name:       "finished session report",
		GoldenFile: "finished_session",
		Snapshot:   report.Text(r),
	}

	testutil.CompareGoldenFile(t, tc)
}
