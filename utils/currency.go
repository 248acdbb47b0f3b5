package utils

import (
	"fmt"
	"strings"
)

// FormatPrice renders an amount held in minor currency units with a thousands
// separator and two decimals.
// Example: 123450 -> "1,234.50"
func FormatPrice(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	integerPart := fmt.Sprintf("%d", amount/100)
	decimalPart := fmt.Sprintf("%02d", amount%100)

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + strings.Join(groups, ",") + "." + decimalPart
}
