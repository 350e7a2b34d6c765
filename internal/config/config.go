package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gasbot/pkg/models"
)

// Config represents the application configuration
type Config struct {
	GitHub struct {
		Token      string `koanf:"token"`
		Repository string `koanf:"repository"` // owner/repo
		ServerURL  string `koanf:"server_url"`
		RunID      int64  `koanf:"run_id"`
	} `koanf:"github"`

	Report struct {
		BaseBranch   string `koanf:"base_branch"`
		HeadBranch   string `koanf:"head_branch"`
		CommitSHA    string `koanf:"commit_sha"`
		DiffFile     string `koanf:"diff_file"`
		OutputFile   string `koanf:"output_file"`
		ArtifactName string `koanf:"artifact_name"`
	} `koanf:"report"`
}

// LoadConfig loads the configuration: static defaults, then the GitHub
// Actions environment, then an optional TOML file, then GASBOT_*
// overrides. Everything below the CLI layer receives values from here
// instead of reading the environment itself.
func LoadConfig(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Set up default configuration
	k.Load(confmap.Provider(map[string]interface{}{
		"github.server_url":    "https://github.com",
		"report.base_branch":   "main",
		"report.head_branch":   "head",
		"report.diff_file":     "gas_diff.txt",
		"report.output_file":   "gas_report.md",
		"report.artifact_name": "gas-report",
	}, "."), nil)

	k.Load(confmap.Provider(actionsEnv(), "."), nil)

	// Load from TOML file if it exists
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	} else if _, err := os.Stat("gasbot.toml"); err == nil {
		if err := k.Load(file.Provider("gasbot.toml"), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config: %w", err)
		}
	}

	// Load from environment variables with prefix GASBOT_
	k.Load(env.Provider("GASBOT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "GASBOT_")), "_", ".", 1)
	}), nil)

	// Unmarshal into Config struct
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	return &config, nil
}

// actionsEnv maps the variables GitHub Actions injects into workflow
// steps onto config keys. Unset variables contribute nothing so the
// defaults layer shows through.
func actionsEnv() map[string]interface{} {
	m := map[string]interface{}{}
	set := func(key, envName string) {
		if v := os.Getenv(envName); v != "" {
			m[key] = v
		}
	}
	set("github.token", "GITHUB_TOKEN")
	set("github.repository", "GITHUB_REPOSITORY")
	set("github.server_url", "GITHUB_SERVER_URL")
	set("report.base_branch", "GITHUB_BASE_REF")
	set("report.head_branch", "GITHUB_HEAD_REF")
	set("report.commit_sha", "GITHUB_SHA")
	if v := os.Getenv("GITHUB_RUN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			m["github.run_id"] = id
		}
	}
	return m
}

// PRInfo builds the report substitution context from the configuration.
func (c *Config) PRInfo() models.PRInfo {
	return models.PRInfo{
		BaseBranch: c.Report.BaseBranch,
		HeadBranch: c.Report.HeadBranch,
		CommitSHA:  c.Report.CommitSHA,
		Repository: c.GitHub.Repository,
		ServerURL:  c.GitHub.ServerURL,
	}
}

// SplitRepository splits the owner/repo slug.
func (c *Config) SplitRepository() (string, string, error) {
	parts := strings.Split(c.GitHub.Repository, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository slug %q, expected owner/repo", c.GitHub.Repository)
	}
	return parts[0], parts[1], nil
}

// InitConfig initializes a new configuration file
func InitConfig(configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	sampleConfig := `# gasbot Configuration

[github]
repository = "owner/repo"
server_url = "https://github.com"

[report]
base_branch = "main"
diff_file = "gas_diff.txt"
output_file = "gas_report.md"
artifact_name = "gas-report"
`

	return os.WriteFile(configPath, []byte(sampleConfig), 0644)
}

// ValidateForComment checks the fields the comment helper needs before
// it talks to the API.
func ValidateForComment(config *Config) error {
	if config.GitHub.Token == "" {
		return fmt.Errorf("github token is required (GITHUB_TOKEN)")
	}
	if _, _, err := config.SplitRepository(); err != nil {
		return err
	}
	if config.GitHub.RunID == 0 {
		return fmt.Errorf("workflow run id is required (GITHUB_RUN_ID)")
	}
	return nil
}
