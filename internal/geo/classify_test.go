package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		km   float64
		want string
	}{
		{"zero", 0, BandAdjacent},
		{"at adjacent threshold", 600, BandAdjacent},
		{"just past adjacent", 600.1, BandRegional},
		{"at regional threshold", 2000, BandRegional},
		{"ocean crossing", 7000, BandDistant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.km))
		})
	}
}
