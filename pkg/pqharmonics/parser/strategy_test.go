package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/config"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/source"
)

func row(c ...string) []string { return c }

func TestStructuredStrategyRows(t *testing.T) {
	s := NewStructuredStrategy(config.Default())
	assert.Equal(t, models.StrategyStructured, s.Name())

	sec := Section{
		Family: vf,
		Page:   4,
		Rows: [][]string{
			row("Harmonic", "Time", "Reg", "V1N", "V2N", "V3N", "R1", "R2", "R3"),
			row(" 2 ", "95", "2.0", "0.1", "0.2", "0.3", "Pass(5%)", "Pass(10%)", "Pass(15%)", "extra"),
			row("1", "95", "100", "99", "99", "99", "Pass", "Pass", "Pass"),
			row("51", "95", "0.1", "0", "0", "0", "Pass", "Pass", "Pass"),
			row("2024", "95", "0.1", "0", "0", "0", "Pass", "Pass", "Pass"),
			row("3", "95", "5.0"),
			row("3.0", "95", "5.0", "1", "1", "1", "Pass", "Pass", "Pass"),
			row("5", "99", "6.0", "6.5", "", "1.0", "Fail", "Pass", "Pass"),
		},
	}

	got := s.Rows(sec)
	require.Len(t, got, 2)
	assert.Equal(t, models.RawRow{
		Cells:    cells("2", "95", "2.0", "0.1", "0.2", "0.3", "Pass(5%)", "Pass(10%)", "Pass(15%)"),
		Page:     4,
		Strategy: models.StrategyStructured,
	}, got[0])
	assert.Equal(t, cells("5", "99", "6.0", "6.5", "", "1.0", "Fail", "Pass", "Pass"), got[1].Cells)
}

func TestAttributeRows(t *testing.T) {
	text := "49 99 0.3 0.1\nHarmonic Voltage Daily\n2 95 1.0 0.5\nHarmonic Current Daily\n2  95 0.5 0.1"
	vdPos := strings.Index(text, "Harmonic Voltage Daily")
	cdPos := strings.Index(text, "Harmonic Current Daily")
	windows := []Window{
		{Family: vf, Start: 0, End: vdPos, Kind: WindowLead},
		{Family: vd, Start: vdPos, End: cdPos, Kind: WindowHeader},
		{Family: cd, Start: cdPos, End: len(text), Kind: WindowHeader},
	}
	tables := []source.Table{
		{
			row("49", "99", "0.3", "0.1"),
			row("2", "95", "1.0", "0.5"),
			row("2", "95", "0.5", "0.1"),
			row("7", "95", "9.9", "0.1"),
		},
	}

	got := attributeRows(text, tables, windows)
	require.Len(t, got, 3)
	assert.Equal(t, [][]string{row("49", "99", "0.3", "0.1")}, got[0])
	assert.Equal(t, [][]string{row("2", "95", "1.0", "0.5")}, got[1])
	assert.Equal(t, [][]string{row("2", "95", "0.5", "0.1"), row("7", "95", "9.9", "0.1")}, got[2])
}

func TestAttributeRowsSingleWindow(t *testing.T) {
	tables := []source.Table{{row("a")}, {row("b"), row("c")}}

	got := attributeRows("anything", tables, []Window{{Family: vf, End: 8, Kind: WindowWhole}})
	assert.Equal(t, [][][]string{{row("a"), row("b"), row("c")}}, got)

	// A lone lead window only keeps anchored rows.
	got = attributeRows("2 95 1.0 x", []source.Table{{row("2", "95", "1.0"), row("3", "95", "1.0")}},
		[]Window{{Family: vf, End: 10, Kind: WindowLead}})
	assert.Equal(t, [][][]string{{row("2", "95", "1.0")}}, got)

	assert.Empty(t, attributeRows("x", tables, nil))
}

func TestAnchorOffset(t *testing.T) {
	text := "12 95 1.0\n2 95 1.0 0.4"
	c := collapseSpaces(text)

	assert.Equal(t, strings.Index(text, "\n2")+1, anchorOffset(c, row("2", "95", "1.0"), nil))
	assert.Equal(t, 0, anchorOffset(c, row("12", "95", "1.0"), nil))
	assert.Equal(t, -1, anchorOffset(c, row("2", "95", "1."), nil))
	assert.Equal(t, -1, anchorOffset(c, row("2", "95"), nil))
	assert.Equal(t, -1, anchorOffset(c, row("2", "", "1.0"), nil))
}

func TestAnchorOffsetConsumesOccurrences(t *testing.T) {
	text := "5 95 3.0 1.0\nHarmonic Voltage Daily\n5  95 3.0 2.0"
	c := collapseSpaces(text)
	claimed := map[int]bool{}

	assert.Equal(t, 0, anchorOffset(c, row("5", "95", "3.0"), claimed))
	assert.Equal(t, strings.LastIndex(text, "5  95"), anchorOffset(c, row("5", "95", "3.0"), claimed))
	assert.Equal(t, -1, anchorOffset(c, row("5", "95", "3.0"), claimed))
}

func TestAttributeRowsRepeatedAnchor(t *testing.T) {
	text := "5 95 3.0 1.0 1.0 1.0 Pass(1.0%)\nHarmonic Voltage Daily\n5 95 3.0 2.0 2.0 2.0 Pass(2.0%)"
	vdPos := strings.Index(text, "Harmonic Voltage Daily")
	windows := []Window{
		{Family: vf, Start: 0, End: vdPos, Kind: WindowLead},
		{Family: vd, Start: vdPos, End: len(text), Kind: WindowHeader},
	}
	full := row("5", "95", "3.0", "1.0", "1.0", "1.0", "Pass(1.0%)")
	daily := row("5", "95", "3.0", "2.0", "2.0", "2.0", "Pass(2.0%)")

	got := attributeRows(text, []source.Table{{full, daily}}, windows)
	require.Len(t, got, 2)
	assert.Equal(t, [][]string{full}, got[0])
	assert.Equal(t, [][]string{daily}, got[1])
}
