package aws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

// DefaultRegion is used when neither the config nor the profile names one.
const DefaultRegion = "us-east-1"

type Error string

const (
	ErrNoCredentials      = Error("no AWS credentials found")
	ErrExpiredCredentials = Error("AWS credentials have expired")
	ErrNoConnection       = Error("no connection to AWS")
	ErrInvalidProfile     = Error("invalid AWS profile")
	ErrNotFound           = Error("object not found")
)

func (e Error) Error() string {
	return string(e)
}

// S3API is the slice of the S3 client the record store relies on.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Connection represents a lazily configured AWS session.
type Connection interface {
	Config() *ClientConfig
	ConnectionOK() bool
	CheckConnectivity(ctx context.Context) error
	ActiveProfile() string
	ActiveRegion() string
	AccountID() string
	S3() (S3API, error)
}

type ClientConfig struct {
	Profile string
	Region  string
	Timeout time.Duration
}

type serviceClients struct {
	s3Client  *s3.Client
	stsClient *sts.Client
}

// APIClient implements Connection on top of the AWS SDK.
type APIClient struct {
	config    ClientConfig
	clients   *serviceClients
	accountID string
	connOK    bool
	mx        sync.RWMutex
}

// NewAPIClient returns a client for the given profile and region. No
// network call happens until a service client is requested.
func NewAPIClient(cfg ClientConfig) *APIClient {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	return &APIClient{config: cfg}
}

// Config returns the client configuration.
func (c *APIClient) Config() *ClientConfig {
	c.mx.RLock()
	defer c.mx.RUnlock()
	cfg := c.config
	return &cfg
}

// ConnectionOK returns whether the last connectivity check succeeded.
func (c *APIClient) ConnectionOK() bool {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.connOK
}

// CheckConnectivity calls STS GetCallerIdentity and caches the account id.
func (c *APIClient) CheckConnectivity(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	clients, err := c.getClients(ctx)
	if err != nil {
		c.setConn(false, "")
		return err
	}
	res, err := clients.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		c.setConn(false, "")
		return WrapAWSError(err, "get caller identity")
	}
	c.setConn(true, aws.ToString(res.Account))

	return nil
}

func (c *APIClient) setConn(ok bool, account string) {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.connOK, c.accountID = ok, account
}

// ActiveProfile returns the AWS profile in use.
func (c *APIClient) ActiveProfile() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Profile
}

// ActiveRegion returns the AWS region in use.
func (c *APIClient) ActiveRegion() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Region
}

// AccountID returns the cached AWS account ID.
func (c *APIClient) AccountID() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.accountID
}

// S3 returns the S3 client.
func (c *APIClient) S3() (S3API, error) {
	ctx, cancel := c.withTimeout(context.Background())
	defer cancel()

	clients, err := c.getClients(ctx)
	if err != nil {
		return nil, err
	}
	return clients.s3Client, nil
}

// Reset drops the cached clients and connection state.
func (c *APIClient) Reset() {
	c.mx.Lock()
	defer c.mx.Unlock()

	c.clients, c.connOK, c.accountID = nil, false, ""
}

func (c *APIClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.Timeout > 0 {
		return context.WithTimeout(ctx, c.config.Timeout)
	}
	return ctx, func() {}
}

// getClients retrieves or creates the service clients.
func (c *APIClient) getClients(ctx context.Context) (*serviceClients, error) {
	c.mx.RLock()
	if c.clients != nil {
		defer c.mx.RUnlock()
		return c.clients, nil
	}
	c.mx.RUnlock()

	c.mx.Lock()
	defer c.mx.Unlock()
	if c.clients != nil {
		return c.clients, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(c.config.Region)}
	if c.config.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(c.config.Profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, WrapAWSError(err, "load AWS config")
	}
	c.clients = &serviceClients{
		s3Client:  s3.NewFromConfig(cfg),
		stsClient: sts.NewFromConfig(cfg),
	}

	return c.clients, nil
}

// WrapAWSError wraps AWS SDK errors with additional context.
func WrapAWSError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "AccessDeniedException":
			return fmt.Errorf("access denied for %s: %w", operation, err)
		case "ExpiredToken", "ExpiredTokenException":
			return fmt.Errorf("%w: %s", ErrExpiredCredentials, operation)
		case "ThrottlingException", "SlowDown":
			return fmt.Errorf("rate limited during %s: %w", operation, err)
		case "InvalidClientTokenId":
			return fmt.Errorf("%w: %s", ErrNoCredentials, operation)
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %s", ErrNotFound, operation)
		default:
			return fmt.Errorf("%s failed: %s (%s)", operation, apiErr.ErrorMessage(), apiErr.ErrorCode())
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
