package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPutter struct {
	input *s3.PutObjectInput
	body  []byte
}

func (p *recordingPutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	p.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	p.body = body
	return &s3.PutObjectOutput{}, nil
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("documents", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["documents"][0]
}

func TestValidateFileType(t *testing.T) {
	ext, err := ValidateFileType("License.PDF")
	require.NoError(t, err)
	assert.Equal(t, "pdf", ext)

	_, err = ValidateFileType("script.exe")
	assert.True(t, errors.Is(err, ErrFileTypeNotAllow))

	_, err = ValidateFileType("photo.png", "pdf")
	assert.True(t, errors.Is(err, ErrFileTypeNotAllow))
}

func TestUploadFileDisabled(t *testing.T) {
	_, err := (&awsS3{}).UploadFile(context.Background(), fileHeader(t, "a.pdf", []byte("x")), "docs")
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestUploadFile(t *testing.T) {
	putter := &recordingPutter{}
	storage := &awsS3{client: putter, bucket: "aahar", region: "ap-south-1"}

	url, err := storage.UploadFile(context.Background(), fileHeader(t, "permit.jpg", []byte("image-bytes")), "/verification/user-1/")
	require.NoError(t, err)

	require.NotNil(t, putter.input)
	assert.Equal(t, "aahar", *putter.input.Bucket)
	assert.Equal(t, "image/jpeg", *putter.input.ContentType)
	assert.Regexp(t, `^verification/user-1/[0-9a-f-]{36}\.jpg$`, *putter.input.Key)
	assert.Equal(t, "https://aahar.s3.ap-south-1.amazonaws.com/"+*putter.input.Key, url)
	assert.Equal(t, []byte("image-bytes"), putter.body)
}
