package github

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/go-github/v68/github"
	"github.com/rs/zerolog/log"
)

// PRNumberFile is the artifact member that carries the pull request
// number across the workflow-run boundary. Fork PRs run with read-only
// tokens, so the build job writes the number into its artifact and the
// comment job reads it back here.
const PRNumberFile = "pr_number.txt"

// FindArtifact locates a named artifact on a workflow run. A missing
// artifact is an absent result, not an error; the caller decides
// whether that fails the job.
func FindArtifact(ctx context.Context, svc Service, owner, repo string, runID int64, name string) (*github.Artifact, bool, error) {
	artifacts, err := svc.ListWorkflowRunArtifacts(ctx, owner, repo, runID)
	if err != nil {
		return nil, false, fmt.Errorf("listing artifacts for run %d: %w", runID, err)
	}
	for _, a := range artifacts {
		if a.GetName() == name {
			log.Debug().
				Str("artifact", name).
				Int64("id", a.GetID()).
				Int64("run_id", runID).
				Msg("found workflow artifact")
			return a, true, nil
		}
	}
	log.Warn().
		Str("artifact", name).
		Int64("run_id", runID).
		Int("available", len(artifacts)).
		Msg("artifact not found on workflow run")
	return nil, false, nil
}

// FetchArtifact downloads an artifact zip and extracts it into destDir.
// The API hands back a short-lived redirect URL; the zip itself is
// fetched with the plain HTTP client.
func FetchArtifact(ctx context.Context, svc Service, httpc *http.Client, owner, repo string, artifact *github.Artifact, destDir string) error {
	u, err := svc.DownloadArtifactURL(ctx, owner, repo, artifact.GetID())
	if err != nil {
		return fmt.Errorf("resolving download URL for artifact %d: %w", artifact.GetID(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("building artifact download request: %w", err)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return fmt.Errorf("downloading artifact %d: %w", artifact.GetID(), err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("artifact download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading artifact body: %w", err)
	}

	if err := extractZip(data, destDir); err != nil {
		return fmt.Errorf("extracting artifact %s: %w", artifact.GetName(), err)
	}
	log.Debug().
		Str("artifact", artifact.GetName()).
		Str("dest", destDir).
		Int("bytes", len(data)).
		Msg("artifact extracted")
	return nil
}

func extractZip(data []byte, destDir string) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	for _, f := range zr.File {
		target := filepath.Join(destDir, f.Name)
		// Reject entries that escape the destination directory.
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("zip entry %q escapes destination", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening zip entry %q: %w", f.Name, err)
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		rc.Close()
		out.Close()
		if err != nil {
			return fmt.Errorf("writing %q: %w", target, err)
		}
	}
	return nil
}

// ReadPRNumber reads the PR number marker from an extracted artifact
// directory. Missing or malformed markers are absent results.
func ReadPRNumber(dir string) (int, bool) {
	data, err := os.ReadFile(filepath.Join(dir, PRNumberFile))
	if err != nil {
		log.Warn().Str("dir", dir).Err(err).Msg("PR number marker not found in artifact")
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		log.Warn().Str("raw", strings.TrimSpace(string(data))).Msg("PR number marker is not numeric")
		return 0, false
	}
	return n, true
}

// ReadReport reads a report file from disk; missing file is an absent
// result so the caller can decide whether to fail the step.
func ReadReport(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Err(err).Msg("report file not found")
		return "", false
	}
	return string(data), true
}
