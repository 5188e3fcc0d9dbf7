package aws

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestListProfilesFromBothFiles(t *testing.T) {
	credentials := `[default]
aws_access_key_id = AKIAEXAMPLE
aws_secret_access_key = secret

[dev]
aws_access_key_id = AKIADEV
aws_secret_access_key = secret
`
	config := `[default]
region = us-east-1

[profile dev]
region = us-east-1

[profile prod]
region = eu-west-1

[sso-session corp]
sso_start_url = https://corp.awsapps.com/start
`
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", writeTempFile(t, "credentials", credentials))
	t.Setenv("AWS_CONFIG_FILE", writeTempFile(t, "config", config))

	profiles := ListProfiles()

	// Deduplicated, sorted, sso-session sections skipped
	assert.Equal(t, []string{"default", "dev", "prod"}, profiles)
}

func TestListProfilesMissingFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "nope-credentials"))
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "nope-config"))

	assert.Empty(t, ListProfiles())
}

func TestListProfilesCredentialsOnly(t *testing.T) {
	credentials := `[prod]
aws_access_key_id = AKIAPROD
aws_secret_access_key = secret
`
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", writeTempFile(t, "credentials", credentials))
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "nope-config"))

	assert.Equal(t, []string{"prod"}, ListProfiles())
}
