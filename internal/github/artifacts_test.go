package github

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFindArtifact_ByName(t *testing.T) {
	svc := &fakeService{artifacts: []*github.Artifact{
		{ID: github.Int64(1), Name: github.String("coverage")},
		{ID: github.Int64(2), Name: github.String("gas-report")},
	}}

	a, ok, err := FindArtifact(context.Background(), svc, "acme", "token", 99, "gas-report")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(2), a.GetID())
}

func TestFindArtifact_MissingIsAbsentNotError(t *testing.T) {
	svc := &fakeService{artifacts: []*github.Artifact{
		{ID: github.Int64(1), Name: github.String("coverage")},
	}}

	a, ok, err := FindArtifact(context.Background(), svc, "acme", "token", 99, "gas-report")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, a)
}

func TestFetchArtifact_DownloadsAndExtracts(t *testing.T) {
	payload := zipBytes(t, map[string]string{
		"pr_number.txt":        "42\n",
		"gas_report.md":        "# report body",
		"nested/extra_log.txt": "ignored",
	})

	downloadURL, _ := url.Parse("https://artifacts.example.com/archive.zip")
	svc := &fakeService{downloadURL: downloadURL}

	httpc := &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		require.Equal(t, downloadURL.String(), req.URL.String())
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewReader(payload)),
			Header:     make(http.Header),
		}
	})}

	dir := t.TempDir()
	artifact := &github.Artifact{ID: github.Int64(2), Name: github.String("gas-report")}
	require.NoError(t, FetchArtifact(context.Background(), svc, httpc, "acme", "token", artifact, dir))

	n, ok := ReadPRNumber(dir)
	require.True(t, ok)
	require.Equal(t, 42, n)

	body, ok := ReadReport(filepath.Join(dir, "gas_report.md"))
	require.True(t, ok)
	require.Equal(t, "# report body", body)

	_, err := os.Stat(filepath.Join(dir, "nested", "extra_log.txt"))
	require.NoError(t, err)
}

func TestFetchArtifact_NonOKStatusFails(t *testing.T) {
	downloadURL, _ := url.Parse("https://artifacts.example.com/archive.zip")
	svc := &fakeService{downloadURL: downloadURL}

	httpc := &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusGone,
			Body:       io.NopCloser(bytes.NewReader(nil)),
			Header:     make(http.Header),
		}
	})}

	artifact := &github.Artifact{ID: github.Int64(2), Name: github.String("gas-report")}
	err := FetchArtifact(context.Background(), svc, httpc, "acme", "token", artifact, t.TempDir())
	require.Error(t, err)
}

func TestExtractZip_RejectsEscapingEntries(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("../outside.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	err = extractZip(buf.Bytes(), t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "escapes destination")
}

func TestReadPRNumber_AbsentOrMalformed(t *testing.T) {
	_, ok := ReadPRNumber(t.TempDir())
	require.False(t, ok)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PRNumberFile), []byte("not-a-number"), 0o644))
	_, ok = ReadPRNumber(dir)
	require.False(t, ok)
}

func TestReadReport_Absent(t *testing.T) {
	_, ok := ReadReport(filepath.Join(t.TempDir(), "gas_report.md"))
	require.False(t, ok)
}
