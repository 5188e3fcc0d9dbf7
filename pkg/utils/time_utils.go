package utils

import "time"

// ReportDateLayout is the month/day/year format used in the report.
const ReportDateLayout = "01/02/2006"

// NoneSentinel is the literal placeholder written for absent optional values.
const NoneSentinel = "None"

// FormatDate renders t in the report layout, or the "None" sentinel when the
// timestamp is absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return NoneSentinel
	}
	return t.Format(ReportDateLayout)
}

// StringOrNone dereferences s, substituting the "None" sentinel for nil or
// empty values.
func StringOrNone(s *string) string {
	if s == nil || *s == "" {
		return NoneSentinel
	}
	return *s
}

// YesNo converts a flag to the Yes/No form used in the report.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
