package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/pqharmonics-go/pkg/pqharmonics/models"
)

func TestWriteViolationsCSV(t *testing.T) {
	violations := []models.Violation{
		{Harmonic: 5, Phase: "V1N", TimeLimit: 95, Allowed: 3, Measured: 3.5, Exceedance: 0.5, Page: 4, Table: "Harmonic Voltage Full Time Range"},
		{Harmonic: 7, Phase: "I2", TimeLimit: 99, Allowed: 2, Measured: 2.35, Exceedance: 0.35, Table: "Harmonic Current, Daily"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteViolationsCSV(&buf, violations))

	want := "Harmonic,Phase,Time Limit (%),Allowed (%),Measured (%),Exceedance (%),Page,Table\n" +
		"5,V1N,95,3,3.5,0.5,4,Harmonic Voltage Full Time Range\n" +
		"7,I2,99,2,2.35,0.35,Unknown,\"Harmonic Current, Daily\"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteViolationsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteViolationsCSV(&buf, nil))
	assert.Equal(t, "Harmonic,Phase,Time Limit (%),Allowed (%),Measured (%),Exceedance (%),Page,Table\n", buf.String())
}
