package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, "https://github.com", cfg.GitHub.ServerURL)
	require.Equal(t, "main", cfg.Report.BaseBranch)
	require.Equal(t, "head", cfg.Report.HeadBranch)
	require.Equal(t, "gas_diff.txt", cfg.Report.DiffFile)
	require.Equal(t, "gas_report.md", cfg.Report.OutputFile)
	require.Equal(t, "gas-report", cfg.Report.ArtifactName)
}

func TestLoadConfig_ActionsEnvironmentWins(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "acme/token")
	t.Setenv("GITHUB_BASE_REF", "release/1.2")
	t.Setenv("GITHUB_HEAD_REF", "feat/x")
	t.Setenv("GITHUB_SHA", "abc1234def")
	t.Setenv("GITHUB_RUN_ID", "123456")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "acme/token", cfg.GitHub.Repository)
	require.Equal(t, "release/1.2", cfg.Report.BaseBranch)
	require.Equal(t, "feat/x", cfg.Report.HeadBranch)
	require.Equal(t, "abc1234def", cfg.Report.CommitSHA)
	require.Equal(t, int64(123456), cfg.GitHub.RunID)
}

func TestLoadConfig_GasbotPrefixOverridesActions(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "acme/token")
	t.Setenv("GASBOT_GITHUB_REPOSITORY", "acme/fork")
	t.Setenv("GASBOT_REPORT_BASE_BRANCH", "trunk")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "acme/fork", cfg.GitHub.Repository)
	require.Equal(t, "trunk", cfg.Report.BaseBranch)
}

func TestLoadConfig_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gasbot.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[report]
base_branch = "develop"
diff_file = "snapshots/gas.diff"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "develop", cfg.Report.BaseBranch)
	require.Equal(t, "snapshots/gas.diff", cfg.Report.DiffFile)
	// untouched keys keep defaults
	require.Equal(t, "gas_report.md", cfg.Report.OutputFile)
}

func TestSplitRepository(t *testing.T) {
	var cfg Config
	cfg.GitHub.Repository = "acme/token"
	owner, repo, err := cfg.SplitRepository()
	require.NoError(t, err)
	require.Equal(t, "acme", owner)
	require.Equal(t, "token", repo)

	cfg.GitHub.Repository = "just-a-name"
	_, _, err = cfg.SplitRepository()
	require.Error(t, err)
}

func TestValidateForComment(t *testing.T) {
	var cfg Config
	require.Error(t, ValidateForComment(&cfg))

	cfg.GitHub.Token = "tok"
	cfg.GitHub.Repository = "acme/token"
	require.Error(t, ValidateForComment(&cfg)) // run id still missing

	cfg.GitHub.RunID = 9
	require.NoError(t, ValidateForComment(&cfg))
}
