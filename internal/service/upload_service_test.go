package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

type storageStub struct {
	uploaded bytes.Buffer
}

func (s *storageStub) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	s.uploaded.Reset()
	if _, err := s.uploaded.ReadFrom(reader); err != nil {
		return "", err
	}
	return "https://cdn.example.com/" + name, nil
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := NewUploadService(&storageStub{}, nil, 1, testLogger())

	file := buildFileHeader(t, "hero.jpg", bytes.Repeat([]byte("a"), 2*1024*1024))

	_, err := svc.Upload(context.Background(), file, "admin")
	require.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestUploadRejectsNonMediaType(t *testing.T) {
	svc := NewUploadService(&storageStub{}, nil, 5, testLogger())

	file := buildFileHeader(t, "notas.txt", []byte("plain text"))

	_, err := svc.Upload(context.Background(), file, "admin")
	require.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadStoresImage(t *testing.T) {
	storage := &storageStub{}
	activity := &activityRecorderStub{}
	svc := NewUploadService(storage, activity, 5, testLogger())

	pngHeader := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	file := buildFileHeader(t, "Hero Principal.PNG", pngHeader)

	resp, err := svc.Upload(context.Background(), file, "admin")
	require.NoError(t, err)
	require.Equal(t, "hero-principal.png", resp.FileName)
	require.Contains(t, resp.URL, "hero-principal.png")
	require.Equal(t, "image/png", resp.MimeType)

	require.Len(t, activity.entries, 1)
	require.Equal(t, "media.uploaded", activity.entries[0].Action)
}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"file\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(10 * 1024 * 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)

	return files[0]
}
