package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

func cells(c ...string) [models.RawRowWidth]string {
	var out [models.RawRowWidth]string
	copy(out[:], c)
	return out
}

func TestNormalizeRowText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5  95\n3.0", "5 95 3.0"},
		{"Pass ( 1.0% )", "Pass(1.0%)"},
		{"FAIL (2.5%)", "FAIL(2.5%)"},
		{"Pass\n(\t0.2 )", "Pass(0.2)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeRowText(tt.in))
	}
}

func TestTextStrategyRows(t *testing.T) {
	s := NewTextStrategy(config.Default())

	tests := []struct {
		name string
		text string
		want [][models.RawRowWidth]string
	}{
		{
			name: "comma separated row",
			text: "5,95,3.0,1.0,1.0,1.0,Pass(1.0%),Pass(1.0%),Pass(1.0%)",
			want: [][models.RawRowWidth]string{
				cells("5", "95", "3.0", "1.0", "1.0", "1.0", "Pass(1.0%)", "Pass(1.0%)", "Pass(1.0%)"),
			},
		},
		{
			name: "fundamental and year rejected",
			text: "1 95 100.0 99.0 99.0 99.0 Pass(1.0%) Pass(1.0%) Pass(1.0%)\n" +
				"1999 95 3.0 1.0 1.0 1.0 Pass(1.0%) Pass(1.0%) Pass(1.0%)\n" +
				"5,95,3.0,1.0,1.0,1.0,Pass(1.0%),Pass(1.0%),Pass(1.0%)",
			want: [][models.RawRowWidth]string{
				cells("5", "95", "3.0", "1.0", "1.0", "1.0", "Pass(1.0%)", "Pass(1.0%)", "Pass(1.0%)"),
			},
		},
		{
			name: "spaced verdicts and fail",
			text: "7 99 5.0 5.5 1.0 1.0 Fail ( 110% ) Pass (20%) Pass (20%)",
			want: [][models.RawRowWidth]string{
				cells("7", "99", "5.0", "5.5", "1.0", "1.0", "Fail(110%)", "Pass(20%)", "Pass(20%)"),
			},
		},
		{
			name: "bare values become Pass",
			text: "4 95 1.0 0.2 0.3 0.4 (20%) (30%) (40%)",
			want: [][models.RawRowWidth]string{
				cells("4", "95", "1.0", "0.2", "0.3", "0.4", "Pass(20%)", "Pass(30%)", "Pass(40%)"),
			},
		},
		{
			name: "measurements only ignored when results required",
			text: "4 95 1.0 0.2 0.3 0.4",
			want: nil,
		},
		{
			name: "unknown time limit",
			text: "5 90 3.0 1.0 1.0 1.0 Pass(1%) Pass(1%) Pass(1%)",
			want: nil,
		},
		{
			name: "rows in text order",
			text: "4 95 1.0 0.2 0.3 0.4 (20%) (30%) (40%) 6 95 1.0 0.1 0.1 0.1 Pass(1%) Pass(1%) Pass(1%)",
			want: [][models.RawRowWidth]string{
				cells("4", "95", "1.0", "0.2", "0.3", "0.4", "Pass(20%)", "Pass(30%)", "Pass(40%)"),
				cells("6", "95", "1.0", "0.1", "0.1", "0.1", "Pass(1%)", "Pass(1%)", "Pass(1%)"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := s.Rows(Section{Family: vf, Page: 3, Text: tt.text})
			var got [][models.RawRowWidth]string
			for _, r := range rows {
				assert.Equal(t, 3, r.Page)
				assert.Equal(t, models.StrategyText, r.Strategy)
				got = append(got, r.Cells)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextStrategyMeasurementsOnly(t *testing.T) {
	cfg := config.Default()
	cfg.Text.RequireResults = false
	s := NewTextStrategy(cfg)

	rows := s.Rows(Section{Page: 2, Text: "8 95 1.0 0.2 0.3 0.4\n9 95 1.5 0.1 0.1 0.1 Pass(7%) Pass(7%) Pass(7%)"})
	require.Len(t, rows, 2)
	assert.Equal(t, cells("8", "95", "1.0", "0.2", "0.3", "0.4", "N/A", "N/A", "N/A"), rows[0].Cells)
	assert.Equal(t, cells("9", "95", "1.5", "0.1", "0.1", "0.1", "Pass(7%)", "Pass(7%)", "Pass(7%)"), rows[1].Cells)
}

func TestTextStrategyEmpty(t *testing.T) {
	assert.Empty(t, NewTextStrategy(config.Default()).Rows(Section{}))
	assert.Equal(t, models.StrategyText, NewTextStrategy(config.Default()).Name())
}
