package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	puts    []*s3.PutObjectInput
	deletes []string
	body    string
	err     error
}

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{}
	st := newS3Store(api, S3Config{Bucket: "folio", PublicURL: "https://cdn.example.com/"})

	url, err := st.Upload(ctx, "Social Links", File{
		Filename:    "../../Me.PNG",
		ContentType: "image/png",
		Body:        strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://cdn.example.com/social-links/"))
	require.True(t, strings.HasSuffix(url, ".png"))
	require.Equal(t, "png-bytes", api.body)
	require.Equal(t, "folio", aws.ToString(api.puts[0].Bucket))
	require.Equal(t, "image/png", aws.ToString(api.puts[0].ContentType))

	require.True(t, st.Owns(url))
	require.False(t, st.Owns("https://elsewhere.example.com/a.png"))
	require.False(t, st.Owns("https://cdn.example.com/"))

	require.NoError(t, st.Delete(ctx, url+"?v=2"))
	require.Len(t, api.deletes, 1)
	require.Equal(t, strings.TrimPrefix(url, "https://cdn.example.com/"), api.deletes[0])

	require.ErrorIs(t, st.Delete(ctx, "https://elsewhere.example.com/a.png"), ErrForeign)
	require.Len(t, api.deletes, 1)
}

func TestUploadError(t *testing.T) {
	api := &fakeAPI{err: errors.New("boom")}
	st := newS3Store(api, S3Config{Bucket: "folio", Region: "ap-southeast-2"})

	_, err := st.Upload(context.Background(), "skills", File{Filename: "a.svg", Body: strings.NewReader("x")})
	require.ErrorContains(t, err, "boom")
}

func TestPublicURLDerivation(t *testing.T) {
	onAWS := newS3Store(&fakeAPI{}, S3Config{Bucket: "folio", Region: "ap-southeast-2"})
	require.Equal(t, "https://folio.s3.ap-southeast-2.amazonaws.com", onAWS.publicURL)

	minio := newS3Store(&fakeAPI{}, S3Config{Bucket: "folio", Endpoint: "http://127.0.0.1:9000/"})
	require.Equal(t, "http://127.0.0.1:9000/folio", minio.publicURL)
}

func TestObjectKey(t *testing.T) {
	key := objectKey("", "resume.final.PDF")
	require.True(t, strings.HasPrefix(key, "uploads/"))
	require.True(t, strings.HasSuffix(key, ".pdf"))

	key = objectKey("testimonials", "noext")
	require.NotContains(t, key, ".")
}

func TestNewS3(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	var region string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		region = lo.Region
		require.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	st, err := NewS3(context.Background(), S3Config{
		Bucket:    "folio",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	require.Equal(t, "us-east-1", region)
	require.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
	require.True(t, opts.UsePathStyle)
	require.Equal(t, "http://127.0.0.1:9000/folio", st.publicURL)

	_, err = NewS3(context.Background(), S3Config{})
	require.ErrorIs(t, err, ErrDisabled)
}

func TestDisabled(t *testing.T) {
	var st Store = Disabled{}
	_, err := st.Upload(context.Background(), "skills", File{})
	require.ErrorIs(t, err, ErrDisabled)
	require.False(t, st.Owns("https://cdn.example.com/a.png"))
}
