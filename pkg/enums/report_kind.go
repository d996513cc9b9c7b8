package enums

import (
	"fmt"
	"strings"
)

// ReportKind selects which aggregate the reports service produces.
type ReportKind string

const (
	ReportKindSales     ReportKind = "sales"
	ReportKindInventory ReportKind = "inventory"
)

var validReportKinds = []ReportKind{
	ReportKindSales,
	ReportKindInventory,
}

func (k ReportKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ReportKind.
func (k ReportKind) IsValid() bool {
	for _, candidate := range validReportKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseReportKind converts raw input into a ReportKind.
func ParseReportKind(value string) (ReportKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validReportKinds {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report kind %q", value)
}
