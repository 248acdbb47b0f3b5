package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := map[int64]string{
		0:         "0.00",
		5:         "0.05",
		1500:      "15.00",
		123450:    "1,234.50",
		100000000: "1,000,000.00",
		-250:      "-2.50",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatPrice(in), "amount %d", in)
	}
}
