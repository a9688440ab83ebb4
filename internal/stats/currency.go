package stats

import (
	"fmt"
	"strings"
)

// FormatINR renders a rupee amount with Indian digit grouping and two
// decimal places: 50000 -> "₹50,000.00", 1234567 -> "₹12,34,567.00".
// Non-finite input renders as zero.
func FormatINR(v float64) string {
	if !isFinite(v) {
		v = 0
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(whole, '.')
	intPart, fracPart := whole[:dot], whole[dot+1:]

	return sign + "₹" + groupIndian(intPart) + "." + fracPart
}

// FormatPercent renders a rate with one decimal: 50 -> "50.0%".
func FormatPercent(rate float64) string {
	if !isFinite(rate) {
		rate = 0
	}
	return fmt.Sprintf("%.1f%%", rate)
}

// groupIndian inserts commas in the Indian numbering style: the last
// three digits form one group, everything before that groups in twos.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
