package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/bluegilltech/pca-wizard/common"
	"github.com/bluegilltech/pca-wizard/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 keeps objects in memory. Unimplemented methods panic through the nil embedded interface.
type fakeS3 struct {
	s3iface.S3API

	mu      sync.Mutex
	objects map[string][]byte
	puts    []*s3.PutObjectInput
	headErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObjectWithContext(ctx aws.Context, in *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.StringValue(in.Bucket)+"/"+aws.StringValue(in.Key)] = data
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadBucketWithContext(ctx aws.Context, in *s3.HeadBucketInput, opts ...request.Option) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func TestS3Backend_StoreFetch(t *testing.T) {
	client := newFakeS3()
	backend := newS3BackendWithClient(client, "registrations-bucket", "/pca/", "s3://registrations-bucket/pca", common.DiscardLogger())

	ctx := context.Background()
	key := interfaces.RecordKey("org-1")

	_, err := backend.Fetch(ctx, key, interfaces.SecretType)
	assert.ErrorIs(t, err, interfaces.ErrContentNotFound)

	require.NoError(t, backend.Store(ctx, key, []byte("client-secret"), interfaces.SecretType))
	require.Len(t, client.puts, 1)
	assert.Equal(t, "pca/secret/org-1.json", aws.StringValue(client.puts[0].Key))
	assert.Equal(t, s3.ServerSideEncryptionAes256, aws.StringValue(client.puts[0].ServerSideEncryption))
	assert.Nil(t, client.puts[0].ACL)

	data, err := backend.Fetch(ctx, key, interfaces.SecretType)
	require.NoError(t, err)
	assert.Equal(t, "client-secret", string(data))
}

func TestS3Backend_Available(t *testing.T) {
	client := newFakeS3()
	backend := newS3BackendWithClient(client, "bucket", "", "s3://bucket/", common.DiscardLogger())
	assert.True(t, backend.Available(context.Background()))
	assert.Equal(t, "s3-bucket", backend.Name())

	client.headErr = awserr.New("Forbidden", "access denied", nil)
	assert.False(t, backend.Available(context.Background()))
}

func TestS3Backend_ObjectKeyWithoutPrefix(t *testing.T) {
	backend := newS3BackendWithClient(newFakeS3(), "bucket", "", "s3://bucket/", common.DiscardLogger())
	assert.Equal(t, "registration/org-9.json", backend.getObjectKey("org-9", interfaces.RegistrationType))
}
