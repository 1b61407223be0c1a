package pqharmonics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/parser"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/source"
)

func memoryReport() *source.MemoryDocument {
	return source.NewMemoryDocument("Report (ICR-7).pdf",
		source.MemoryPage{Text: "Power Quality Report"},
		source.MemoryPage{
			Text: "Harmonic Current Daily\n" +
				"2 95 1.0 0.5 0.5 0.5 Pass(50%) Pass(50%) Pass(50%)\n" +
				"3 95 1.0 1.5 - 0.5 Fail(150%) Pass Pass(50%)\n" +
				"4 99 1.0 0.5 0.5 0.5 Pass(50%) Pass(50%) Pass(50%)",
			Tables: []source.Table{{
				{"2", "95", "1.0", "0.5", "0.5", "0.5", "Pass(50%)", "Pass(50%)", "Pass(50%)"},
				{"3", "95", "1.0", "1.5", "-", "0.5", "Fail(150%)", "Pass", "Pass(50%)"},
				{"4", "99", "1.0", "0.5", "0.5", "0.5", "Pass(50%)", "Pass(50%)", "Pass(50%)"},
			}},
		},
	)
}

func TestReport(t *testing.T) {
	report, err := Report(context.Background(), memoryReport(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Report (ICR-7).pdf", report.Document)
	assert.Equal(t, "ICR-7", report.Metadata.Component)
	require.Len(t, report.Families, 4)

	cd := report.Family(models.FamilyCurrentDaily)
	require.NotNil(t, cd)
	assert.Equal(t, []int{2, 4}, cd.Table.Harmonics())
	assert.Equal(t, []int{2, 3, 4}, cd.Display.Harmonics())
	assert.NotContains(t, cd.Missing, 3)
	assert.Equal(t, "-", cd.Display.Rows[1].Measured[1].Raw)

	assert.Len(t, cd.Split.Rows(95, models.ParityEven), 1)
	assert.Len(t, cd.Split.Rows(95, models.ParityOdd), 1)
	assert.Len(t, cd.Split.Rows(99, models.ParityEven), 1)

	vf := report.Family(models.FamilyVoltageFull)
	require.NotNil(t, vf)
	assert.Empty(t, vf.Table.Rows)
	assert.Len(t, vf.Missing, 49)

	assert.Empty(t, report.Violations)
	assert.NotNil(t, report.Violations)
}

func TestReportEmptyDocument(t *testing.T) {
	_, err := Report(context.Background(), source.NewMemoryDocument("empty.pdf"), DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyDocument)

	var de *DocumentError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "empty.pdf", de.Document)
	assert.Equal(t, "extract", de.Op)
}

func TestReportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Report(ctx, memoryReport(), DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)

	var de *DocumentError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Page)
}

func TestExtractAndValidate(t *testing.T) {
	opts := DefaultOptions()
	raw, err := Extract(context.Background(), memoryReport(), opts)
	require.NoError(t, err)
	assert.Len(t, raw.Get(models.FamilyCurrentDaily), 3)

	strict, missing, err := Validate(raw, models.FamilyCurrentDaily, ModeStrict, opts)
	require.NoError(t, err)
	assert.Len(t, strict.Rows, 2)
	assert.Len(t, missing, 46)

	display, _, err := Validate(raw, models.FamilyCurrentDaily, ModeDisplay, opts)
	require.NoError(t, err)
	assert.Len(t, display.Rows, 3)

	_, _, err = Validate(raw, "other", ModeStrict, opts)
	assert.ErrorIs(t, err, ErrUnknownFamily)

	assert.Empty(t, AnalyzeViolations(strict))
}

func TestProcess(t *testing.T) {
	path := writeReport(t, t.TempDir(), "Report (TR-1).pdf")

	report, err := Process(context.Background(), path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "Report (TR-1).pdf", report.Document)
	vf := report.Family(models.FamilyVoltageFull)
	require.NotNil(t, vf)
	assert.Equal(t, []int{3, 5}, vf.Table.Harmonics())

	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.Equal(t, 5, v.Harmonic)
	assert.Equal(t, "V1N", v.Phase)
	assert.Equal(t, 0.5, v.Exceedance)
	assert.Equal(t, 2, v.Page)
	assert.Equal(t, "Harmonic Voltage Full Time Range", v.Table)
}

func TestProcessErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.pdf")
	require.NoError(t, os.WriteFile(bad, []byte("not a pdf"), 0o644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", filepath.Join(dir, "missing.pdf"), ErrFileNotFound},
		{"invalid", bad, ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Process(context.Background(), tt.path, DefaultOptions())
			assert.ErrorIs(t, err, tt.want)

			var de *DocumentError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, "open", de.Op)
			assert.Equal(t, filepath.Base(tt.path), de.Document)
		})
	}
}

func TestDocumentError(t *testing.T) {
	scan := &parser.PageError{Page: 7, Err: context.DeadlineExceeded}
	err := NewDocumentError("a.pdf", "extract", scan)
	assert.Equal(t, 7, err.Page)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, `extract error in document "a.pdf" (page 7): page 7: context deadline exceeded`, err.Error())

	err = &DocumentError{Document: "a.pdf", Family: models.FamilyVoltageDaily, Op: "validate", Err: ErrUnknownFamily}
	assert.Equal(t, `validate error in document "a.pdf" (family voltage_daily): unknown table family`, err.Error())
}
