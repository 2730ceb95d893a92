package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"assignment_service/internal/errdefs"
)

type MockObjectPutter struct {
	mock.Mock
}

func (m *MockObjectPutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "hw1/student@example.com/2", ObjectKey("hw1", "student@example.com", 2))
	// same inputs always map to the same key, so redelivery overwrites
	assert.Equal(t,
		ObjectKey("hw1", "student@example.com", 0),
		ObjectKey("hw1", "student@example.com", 0),
	)
}

func TestUpload(t *testing.T) {
	putter := new(MockObjectPutter)
	var captured *s3.PutObjectInput
	putter.On("PutObject", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*s3.PutObjectInput)
	}).Return(&s3.PutObjectOutput{}, nil)

	gateway := NewGateway(putter, "submissions-bucket")
	err := gateway.Upload(context.Background(), "hw1/student@example.com/0", strings.NewReader("zip bytes"), "application/zip")

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "submissions-bucket", *captured.Bucket)
	assert.Equal(t, "hw1/student@example.com/0", *captured.Key)
	assert.Equal(t, "application/zip", *captured.ContentType)
}

func TestUpload_Error(t *testing.T) {
	putter := new(MockObjectPutter)
	putter.On("PutObject", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	gateway := NewGateway(putter, "submissions-bucket")
	err := gateway.Upload(context.Background(), "hw1/student@example.com/0", strings.NewReader("zip bytes"), "")

	assert.ErrorIs(t, err, errdefs.ErrTransfer)
}
