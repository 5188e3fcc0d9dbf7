package aws

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// ListProfiles returns the names of all AWS profiles found in the shared
// credentials and config files, deduplicated and sorted for deterministic
// scan order. Missing files are not an error; an empty result means only the
// default credential chain is available.
func ListProfiles() []string {
	seen := make(map[string]bool)

	for _, name := range credentialsFileProfiles(sharedCredentialsPath()) {
		seen[name] = true
	}
	for _, name := range configFileProfiles(sharedConfigPath()) {
		seen[name] = true
	}

	profiles := make([]string, 0, len(seen))
	for name := range seen {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)

	return profiles
}

// credentialsFileProfiles lists the section names of the shared credentials
// file. Every section is a profile, including [default].
func credentialsFileProfiles(path string) []string {
	file, err := ini.Load(path)
	if err != nil {
		return nil
	}

	var profiles []string
	for _, section := range file.SectionStrings() {
		if section == ini.DefaultSection {
			continue
		}
		profiles = append(profiles, section)
	}

	return profiles
}

// configFileProfiles lists the profile sections of the shared config file.
// Profiles there are named [profile <name>], except [default]. Other section
// kinds (sso-session, services) are skipped.
func configFileProfiles(path string) []string {
	file, err := ini.Load(path)
	if err != nil {
		return nil
	}

	var profiles []string
	for _, section := range file.SectionStrings() {
		if section == "default" {
			profiles = append(profiles, section)
			continue
		}
		if name, ok := strings.CutPrefix(section, "profile "); ok {
			profiles = append(profiles, name)
		}
	}

	return profiles
}

func sharedCredentialsPath() string {
	if path := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aws", "credentials")
}

func sharedConfigPath() string {
	if path := os.Getenv("AWS_CONFIG_FILE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".aws", "config")
}
