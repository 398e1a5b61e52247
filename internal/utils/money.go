package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatRupees renders an amount as "Rs 1,890" with thousand separators,
// keeping paise only when present.
func FormatRupees(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	frac := amount - float64(whole)
	out := sign + "Rs " + formatThousand(whole)
	if frac > 0.004 {
		out += strings.TrimPrefix(fmt.Sprintf("%.2f", frac), "0")
	}
	return out
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return out.String()
}
