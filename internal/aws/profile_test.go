package aws

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileDiscovery(t *testing.T) {
	dir := t.TempDir()
	creds := filepath.Join(dir, "credentials")
	cfg := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(creds, []byte(`[default]
aws_access_key_id = AKIA
aws_secret_access_key = s3cr3t

[billing]
role_arn = arn:aws:iam::1:role/billing
`), 0o600))
	require.NoError(t, os.WriteFile(cfg, []byte(`[default]
region = ap-south-1

[profile vendor]
region = eu-west-1
source_profile = default
`), 0o600))

	pp, err := NewProfileDiscoveryAt(creds, cfg).Profiles()
	require.NoError(t, err)
	require.Len(t, pp, 3)

	assert.Equal(t, Profile{Name: "billing", DefaultRegion: DefaultRegion, RoleARN: "arn:aws:iam::1:role/billing"}, pp[0])
	assert.Equal(t, Profile{Name: "default", DefaultRegion: "ap-south-1", HasKeys: true}, pp[1])
	assert.Equal(t, Profile{Name: "vendor", DefaultRegion: "eu-west-1", SourceProfile: "default"}, pp[2])

	_, err = NewProfileDiscoveryAt(creds, cfg).Profile("nope")
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestProfileDiscoveryMissingFiles(t *testing.T) {
	dir := t.TempDir()

	pp, err := NewProfileDiscoveryAt(filepath.Join(dir, "a"), filepath.Join(dir, "b")).Profiles()
	require.NoError(t, err)
	assert.Empty(t, pp)
}
