package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/rvelez/iamscan/internal/models"
	"github.com/rvelez/iamscan/pkg/utils"
)

// IAMClient scans the IAM users and access keys of a single account.
type IAMClient struct {
	iam     IAMAPI
	sts     STSAPI
	profile string
}

// NewIAMClient creates an IAMClient bound to the given shared-config profile.
// An empty profile name uses the default credential chain.
func NewIAMClient(ctx context.Context, profile string) (*IAMClient, error) {
	var optFns []func(*config.LoadOptions) error
	if profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config for profile %q: %w", profile, err)
	}

	return &IAMClient{
		iam:     iam.NewFromConfig(cfg),
		sts:     sts.NewFromConfig(cfg),
		profile: profile,
	}, nil
}

// Label returns the report label for this account's profile.
func (c *IAMClient) Label() string {
	if c.profile == "" {
		return "Default"
	}
	return c.profile
}

// ScanAccount collects one ReportRow per (user, access key) pair in the
// account, plus a single sentinel row for every user without keys. Identity
// resolution and user listing failures abort only this account's scan; a
// failure while enriching one user skips that user and continues with the
// rest.
func (c *IAMClient) ScanAccount(ctx context.Context) ([]models.ReportRow, error) {
	identity, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("error resolving caller identity: %w", err)
	}
	accountID := *identity.Account

	fmt.Printf("[*] Processing: %s (ID: %s)\n", c.Label(), accountID)

	// List all IAM users, exhausting every page
	var users []types.User
	var marker *string

	for {
		result, err := c.iam.ListUsers(ctx, &iam.ListUsersInput{Marker: marker})
		if err != nil {
			return nil, fmt.Errorf("error listing IAM users: %w", err)
		}

		users = append(users, result.Users...)

		if !result.IsTruncated {
			break
		}
		marker = result.Marker
	}

	var rows []models.ReportRow
	for _, user := range users {
		userRows, err := c.scanUser(ctx, accountID, user)
		if err != nil {
			fmt.Printf("Warning: error scanning user %s: %v\n", *user.UserName, err)
			continue
		}
		rows = append(rows, userRows...)
	}

	return rows, nil
}

// scanUser builds the report rows for a single IAM user.
func (c *IAMClient) scanUser(ctx context.Context, accountID string, user types.User) ([]models.ReportRow, error) {
	userName := *user.UserName

	// Shared columns; key columns default to the "None" sentinel
	base := models.ReportRow{
		Account:          c.Label(),
		AccountID:        accountID,
		UserName:         userName,
		CreateDate:       utils.FormatDate(user.CreateDate),
		LastConsoleLogin: utils.FormatDate(user.PasswordLastUsed),
		ConsoleAccess:    utils.YesNo(user.PasswordLastUsed != nil),
		AccessKeyID:      utils.NoneSentinel,
		KeyStatus:        utils.NoneSentinel,
		LastUsedDate:     utils.NoneSentinel,
		ServiceName:      utils.NoneSentinel,
		Region:           utils.NoneSentinel,
	}

	mfaDevices, err := c.iam.ListMFADevices(ctx, &iam.ListMFADevicesInput{
		UserName: &userName,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing MFA devices: %w", err)
	}
	base.MFA = utils.YesNo(len(mfaDevices.MFADevices) > 0)

	keys, err := c.iam.ListAccessKeys(ctx, &iam.ListAccessKeysInput{
		UserName: &userName,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing access keys: %w", err)
	}

	// User without keys (console or service only) still gets one row
	if len(keys.AccessKeyMetadata) == 0 {
		return []models.ReportRow{base}, nil
	}

	rows := make([]models.ReportRow, 0, len(keys.AccessKeyMetadata))
	for _, key := range keys.AccessKeyMetadata {
		row := base
		row.AccessKeyID = *key.AccessKeyId
		row.KeyStatus = string(key.Status)

		lastUsed, err := c.iam.GetAccessKeyLastUsed(ctx, &iam.GetAccessKeyLastUsedInput{
			AccessKeyId: key.AccessKeyId,
		})
		if err != nil {
			return nil, fmt.Errorf("error getting last use of key %s: %w", *key.AccessKeyId, err)
		}

		// Keys with no recorded usage keep the sentinel in all three columns
		if usage := lastUsed.AccessKeyLastUsed; usage != nil && usage.LastUsedDate != nil {
			row.LastUsedDate = utils.FormatDate(usage.LastUsedDate)
			row.ServiceName = utils.StringOrNone(usage.ServiceName)
			row.Region = utils.StringOrNone(usage.Region)
		}

		rows = append(rows, row)
	}

	return rows, nil
}
