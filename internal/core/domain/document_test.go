package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstituteFromName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{"underscore separator", "INST001_report_2025.xlsx", "INST001"},
		{"dash separator", "INST002-orsa.xlsx", "INST002"},
		{"space separator", "INST003 final.xlsx", "INST003"},
		{"no separator", "INST004.xlsx", "INST004"},
		{"underscore wins over dash", "AB-CD_X.xlsx", "AB-CD"},
		{"path stripped", "/data/in/INST005_x.xlsx", "INST005"},
		{"no extension", "INST006_report", "INST006"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InstituteFromName(tt.fileName))
		})
	}
}

func TestFingerprintShort(t *testing.T) {
	assert.Equal(t, "deadbeef", Fingerprint("deadbeef00112233").Short())
	assert.Equal(t, "abc", Fingerprint("abc").Short())
}

func TestFingerprintValid(t *testing.T) {
	valid := Fingerprint(strings.Repeat("0123456789abcdef", 4))
	assert.Len(t, string(valid), 64)
	assert.True(t, valid.Valid())

	assert.False(t, Fingerprint("abc").Valid())
	assert.False(t, Fingerprint(strings.Repeat("0123456789ABCDEF", 4)).Valid())
}
