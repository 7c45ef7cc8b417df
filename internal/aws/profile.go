package aws

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

const defaultProfile = "default"

// Profile describes one locally configured AWS profile.
type Profile struct {
	Name          string
	DefaultRegion string
	RoleARN       string
	SourceProfile string
	HasKeys       bool
}

// ProfileDiscovery reads profiles from the shared AWS config files.
type ProfileDiscovery struct {
	credentialsPath string
	configPath      string
}

// NewProfileDiscovery returns a discovery over the default AWS paths,
// honoring AWS_SHARED_CREDENTIALS_FILE and AWS_CONFIG_FILE.
func NewProfileDiscovery() *ProfileDiscovery {
	home, _ := os.UserHomeDir()
	d := ProfileDiscovery{
		credentialsPath: filepath.Join(home, ".aws", "credentials"),
		configPath:      filepath.Join(home, ".aws", "config"),
	}
	if p := os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); p != "" {
		d.credentialsPath = p
	}
	if p := os.Getenv("AWS_CONFIG_FILE"); p != "" {
		d.configPath = p
	}
	return &d
}

// NewProfileDiscoveryAt returns a discovery over explicit file paths.
func NewProfileDiscoveryAt(credentialsPath, configPath string) *ProfileDiscovery {
	return &ProfileDiscovery{credentialsPath: credentialsPath, configPath: configPath}
}

// Profiles returns every profile found in either file, sorted by name.
// Missing files are not an error.
func (d *ProfileDiscovery) Profiles() ([]Profile, error) {
	pp := make(map[string]*Profile)
	get := func(name string) *Profile {
		if p, ok := pp[name]; ok {
			return p
		}
		p := &Profile{Name: name}
		pp[name] = p
		return p
	}

	creds, err := loadIni(d.credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}
	if creds != nil {
		for _, sec := range creds.Sections() {
			if sec.Name() == ini.DefaultSection {
				continue
			}
			p := get(sec.Name())
			p.HasKeys = sec.HasKey("aws_access_key_id") && sec.HasKey("aws_secret_access_key")
			readProfileKeys(sec, p)
		}
	}

	cfg, err := loadIni(d.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if cfg != nil {
		for _, sec := range cfg.Sections() {
			name := sec.Name()
			switch {
			case name == defaultProfile:
			case strings.HasPrefix(name, "profile "):
				name = strings.TrimPrefix(name, "profile ")
			default:
				continue
			}
			p := get(name)
			if sec.HasKey("region") {
				p.DefaultRegion = sec.Key("region").String()
			}
			readProfileKeys(sec, p)
		}
	}

	out := make([]Profile, 0, len(pp))
	for _, p := range pp {
		if p.DefaultRegion == "" {
			p.DefaultRegion = DefaultRegion
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// Profile returns the named profile.
func (d *ProfileDiscovery) Profile(name string) (Profile, error) {
	pp, err := d.Profiles()
	if err != nil {
		return Profile{}, err
	}
	for _, p := range pp {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrInvalidProfile, name)
}

// ActiveProfileName returns AWS_PROFILE or the default profile name.
func ActiveProfileName() string {
	if p := os.Getenv("AWS_PROFILE"); p != "" {
		return p
	}
	return defaultProfile
}

func readProfileKeys(sec *ini.Section, p *Profile) {
	if p.RoleARN == "" && sec.HasKey("role_arn") {
		p.RoleARN = sec.Key("role_arn").String()
	}
	if p.SourceProfile == "" && sec.HasKey("source_profile") {
		p.SourceProfile = sec.Key("source_profile").String()
	}
}

func loadIni(path string) (*ini.File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return ini.Load(path)
}
