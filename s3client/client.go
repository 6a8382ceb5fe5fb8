package s3client

import (
	"duygu.io/sentiment/logger"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/sts"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"strings"
	"sync"
)

const devEnv = "dev"

var errNoSession = errors.New("s3client: could not initialize session")

var clientLogger = logger.NewLogger("S3Client")
var sdkLogger = logger.NewLogger("S3-SDK")

type EnvironmentConfig struct {
	BucketName  string `envconfig:"DUYGU_S3_BUCKET" required:"true"`
	Env         string `envconfig:"DUYGU_ENV" default:"prod"`
	Region      string `envconfig:"DUYGU_AWS_REGION" required:"true"`
	AwsEndpoint string `envconfig:"DUYGU_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"DUYGU_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"DUYGU_AWS_ACCESS_KEY" default:""`
}

// Client reads and writes objects of one bucket. A failed request is retried once on a fresh session.
type Client struct {
	env EnvironmentConfig

	mu   sync.Mutex
	sess *session.Session
}

func New() (*Client, error) {
	errLogger := clientLogger.With().Caller().Logger()
	env, err := readEnvironment(&errLogger)
	if err != nil {
		return nil, err
	}
	client := &Client{env: env}
	if client.sess, err = client.acquireSession(); err != nil {
		return nil, err
	}
	return client, nil
}

func (client *Client) Bucket() string {
	return client.env.BucketName
}

func (client *Client) Upload(data string, key string) error {
	return client.withSession(func(sess *session.Session) error {
		fdlLogger := clientLogger.With().Str("key", key).Str("bucket", client.env.BucketName).Logger()
		uploader := s3manager.NewUploader(sess.Copy(sdkConfig(key, client.env.BucketName)))
		fdlLogger.Debug().Msg("Uploading the file")
		_, err := uploader.Upload(&s3manager.UploadInput{
			Bucket: aws.String(client.env.BucketName),
			Key:    aws.String(key),
			Body:   strings.NewReader(data),
		})
		if err != nil {
			fdlLogger.Error().Err(err).Msg("Failed to upload file")
		}
		return err
	})
}

func (client *Client) Download(key string) ([]byte, error) {
	var data []byte
	err := client.withSession(func(sess *session.Session) error {
		fdlLogger := clientLogger.With().Str("key", key).Str("bucket", client.env.BucketName).Logger()
		downloader := s3manager.NewDownloader(sess.Copy(sdkConfig(key, client.env.BucketName)))
		buf := aws.NewWriteAtBuffer([]byte{})

		fdlLogger.Debug().Msg("Downloading file")
		size, err := downloader.Download(buf, &s3.GetObjectInput{
			Bucket: aws.String(client.env.BucketName),
			Key:    aws.String(key),
		})
		if err != nil {
			fdlLogger.Error().Err(err).Msg("Failed to download file")
			return err
		}
		fdlLogger.Debug().Msgf("Downloaded %v bytes", size)
		data = buf.Bytes()
		return nil
	})
	return data, err
}

func (client *Client) withSession(op func(sess *session.Session) error) error {
	client.mu.Lock()
	sess := client.sess
	client.mu.Unlock()

	err := op(sess)
	if err == nil {
		return nil
	}
	clientLogger.Error().Err(err).Msg("Caught error while using S3 session, trying to refresh it")
	fresh, refreshErr := client.refresh(sess)
	if refreshErr != nil {
		return fmt.Errorf("%v (refresh: %w)", err, refreshErr)
	}
	return op(fresh)
}

// refresh replaces stale unless another request has already done so.
func (client *Client) refresh(stale *session.Session) (*session.Session, error) {
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.sess != stale {
		return client.sess, nil
	}
	sess, err := client.acquireSession()
	if err != nil {
		return nil, err
	}
	client.sess = sess
	clientLogger.Info().Msg("Successfully refreshed session")
	return sess, nil
}

// acquireSession tries the instance role first and falls back to credentials from the environment.
func (client *Client) acquireSession() (*session.Session, error) {
	sess, err := session.NewSession(client.baseConfig())
	if err == nil {
		if _, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{}); err == nil {
			clientLogger.Info().Msg("S3 session successfully initialized using EC2")
			return sess, nil
		}
	}
	clientLogger.Info().Msg("Could not initialize S3 session using EC2, trying env credentials")

	cfg, err := client.envConfig()
	if err != nil {
		clientLogger.Error().Err(err).Msg("Error with credentials from environment")
		return nil, err
	}
	if sess, err = session.NewSession(cfg); err != nil {
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return nil, err
	}
	if _, err = sts.New(sess).GetCallerIdentity(&sts.GetCallerIdentityInput{}); err != nil {
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return nil, errNoSession
	}
	clientLogger.Info().Msg("S3 session successfully initialized using env credentials")
	return sess, nil
}

func (client *Client) baseConfig() *aws.Config {
	return aws.NewConfig().
		WithRegion(client.env.Region).
		WithMaxRetries(4)
}

func (client *Client) envConfig() (*aws.Config, error) {
	creds := credentials.NewStaticCredentials(client.env.AccessKeyID, client.env.AccessKey, "")
	if _, err := creds.Get(); err != nil {
		return nil, err
	}
	cfg := client.baseConfig().WithCredentials(creds)
	if client.env.Env == devEnv && client.env.AwsEndpoint != "" {
		cfg = cfg.WithEndpoint(client.env.AwsEndpoint).WithS3ForcePathStyle(true)
	}
	return cfg, nil
}

func sdkConfig(key string, bucket string) *aws.Config {
	sdkLog := sdkLogger.With().Str("key", key).Str("bucket", bucket).Logger()
	return &aws.Config{
		Logger:   aws.LoggerFunc(func(v ...interface{}) { sdkLog.Debug().Msg(fmt.Sprint(v...)) }),
		LogLevel: aws.LogLevel(aws.LogDebug),
	}
}

func readEnvironment(errLogger *zerolog.Logger) (EnvironmentConfig, error) {
	var config EnvironmentConfig
	err := envconfig.Process("", &config)
	if err != nil {
		errLogger.Err(err).Msg("Got error while processing environment")
		return config, err
	}
	return config, nil
}
