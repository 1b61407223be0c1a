package pqharmonics

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type run struct {
	x, y float64
	s    string
}

// writePDF writes a minimal PDF with one content stream per page.
func writePDF(t *testing.T, path string, pages [][]run) {
	t.Helper()
	n := len(pages)
	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	for i, runs := range pages {
		var content strings.Builder
		for _, r := range runs {
			fmt.Fprintf(&content, "BT /F1 10 Tf 1 0 0 1 %.0f %.0f Tm (%s) Tj ET\n", r.x, r.y, r.s)
		}
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 800 800] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func cellsAt(y float64, cells ...string) []run {
	runs := make([]run, len(cells))
	for i, c := range cells {
		runs[i] = run{x: 50 + float64(i)*70, y: y, s: c}
	}
	return runs
}

// writeReport writes a two-page report: a cover and a voltage full time
// range table where harmonic 5 exceeds its limit on V1N.
func writeReport(t *testing.T, dir, name string) string {
	t.Helper()
	cover := []run{{x: 50, y: 750, s: "Power Quality Report"}}
	data := []run{{x: 50, y: 750, s: "Harmonic Voltage Full Time Range"}}
	data = append(data, cellsAt(700, "3", "95", "5.0", "1.0", "1.1", "1.2", "Pass", "Pass", "Pass")...)
	data = append(data, cellsAt(680, "5", "95", "6.0", "6.5", "1.0", "1.0", "Fail", "Pass", "Pass")...)

	path := filepath.Join(dir, name)
	writePDF(t, path, [][]run{cover, data})
	return path
}
