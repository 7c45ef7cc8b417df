package aws

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAWSError(t *testing.T) {
	uu := map[string]struct {
		err    error
		is     error
		substr string
	}{
		"nil": {},
		"denied": {
			err:    &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"},
			substr: "access denied for put object",
		},
		"expired": {
			err: &smithy.GenericAPIError{Code: "ExpiredToken"},
			is:  ErrExpiredCredentials,
		},
		"no-key": {
			err: &smithy.GenericAPIError{Code: "NoSuchKey"},
			is:  ErrNotFound,
		},
		"other-api": {
			err:    &smithy.GenericAPIError{Code: "Boom", Message: "kaput"},
			substr: "put object failed: kaput (Boom)",
		},
		"plain": {
			err:    errors.New("dial tcp"),
			substr: "put object failed: dial tcp",
		},
	}

	for k := range uu {
		u := uu[k]
		t.Run(k, func(t *testing.T) {
			err := WrapAWSError(u.err, "put object")
			if u.err == nil {
				assert.NoError(t, err)
				return
			}
			if u.is != nil {
				assert.ErrorIs(t, err, u.is)
			}
			if u.substr != "" {
				assert.Contains(t, err.Error(), u.substr)
			}
		})
	}
}

func TestNewAPIClientDefaults(t *testing.T) {
	c := NewAPIClient(ClientConfig{Profile: "dev"})

	assert.Equal(t, DefaultRegion, c.ActiveRegion())
	assert.Equal(t, "dev", c.ActiveProfile())
	assert.False(t, c.ConnectionOK())
	assert.Empty(t, c.AccountID())
}

func TestAPIClientS3(t *testing.T) {
	dir := t.TempDir()
	cfgFile, credsFile := filepath.Join(dir, "config"), filepath.Join(dir, "credentials")
	require.NoError(t, os.WriteFile(cfgFile, []byte("[profile dev]\nregion = eu-west-1\n"), 0o600))
	require.NoError(t, os.WriteFile(credsFile, []byte("[dev]\naws_access_key_id = AKIDEXAMPLE\naws_secret_access_key = secret\n"), 0o600))
	t.Setenv("AWS_CONFIG_FILE", cfgFile)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credsFile)

	c := NewAPIClient(ClientConfig{Profile: "dev", Region: "eu-west-1"})
	s1, err := c.S3()
	require.NoError(t, err)
	s2, err := c.S3()
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	c.Reset()
	s3, err := c.S3()
	require.NoError(t, err)
	assert.NotSame(t, s1, s3)

	_, err = NewAPIClient(ClientConfig{Profile: "nope"}).S3()
	assert.Error(t, err)
}
