package models

// ReportRow is one line of the credential report: one (user, access key)
// pair, or one keyless user with the key columns set to the "None" sentinel.
// All columns are pre-rendered strings so optional fields are always
// populated and comparable.
type ReportRow struct {
	Account          string // Profile label ("Default" for the default chain)
	AccountID        string // Resolved AWS account ID
	UserName         string // IAM user name
	CreateDate       string // User creation date (MM/DD/YYYY)
	LastConsoleLogin string // Last console login date, or "None"
	ConsoleAccess    string // "Yes" when a console login has been recorded
	AccessKeyID      string // Access key ID, or "None" for keyless users
	KeyStatus        string // "Active", "Inactive", or "None"
	LastUsedDate     string // Last key usage date, or "None"
	ServiceName      string // Service that last used the key, or "None"
	Region           string // Region of the last key usage, or "None"
	MFA              string // "Yes" when at least one MFA device is attached
}

// AccountResult holds the outcome of scanning a single profile. Err set means
// the profile contributed no rows; peers are unaffected.
type AccountResult struct {
	Profile string
	Rows    []ReportRow
	Err     error
}

// Label returns the display name for the scanned profile.
func (r AccountResult) Label() string {
	if r.Profile == "" {
		return "Default"
	}
	return r.Profile
}
