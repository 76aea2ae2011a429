package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in       string
		expected Backend
	}{
		{"", BackendAuto},
		{"auto", BackendAuto},
		{"LEDONGTHUC", BackendLedongthuc},
		{" dslipak ", BackendDslipak},
		{"pdfcpu", BackendPDFCPU},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			b, err := ParseBackend(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, b)
		})
	}
}

func TestParseBackend_Unknown(t *testing.T) {
	_, err := ParseBackend("pypdf")
	assert.ErrorIs(t, err, ErrUnknownBackend)
	assert.Contains(t, err.Error(), `"pypdf"`)
}

func TestMetadata_Lookup(t *testing.T) {
	md := Metadata{"Producer": "pdfTeX", "Creator": ""}

	assert.Equal(t, "pdfTeX", md.Lookup("Producer", "Unknown"))
	assert.Equal(t, "", md.Lookup("Creator", "Unknown"), "present but empty is not absent")
	assert.Equal(t, "Unknown", md.Lookup("PDF", "Unknown"))

	var none Metadata
	assert.Equal(t, "Unknown", none.Lookup("Creator", "Unknown"))
}

func TestMetadata_Keys(t *testing.T) {
	md := Metadata{"Title": "t", "Author": "a", "Producer": "p"}
	assert.Equal(t, []string{"Author", "Producer", "Title"}, md.Keys())
}

func TestRecoverAsError(t *testing.T) {
	run := func() (err error) {
		defer recoverAsError(&err, "parse")
		panic("malformed stream")
	}

	err := run()
	require.Error(t, err)
	assert.Equal(t, "parse: malformed stream", err.Error())
}

func TestPasswordOnce(t *testing.T) {
	pw := passwordOnce("secret")
	assert.Equal(t, "secret", pw())
	assert.Equal(t, "", pw())
	assert.Equal(t, "", pw())
}
