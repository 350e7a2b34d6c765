package models

// ChangeType classifies a gas change by the diff sign it carried
type ChangeType string

const (
	ChangeImprovement ChangeType = "improvement"
	ChangeRegression  ChangeType = "regression"
)

// GasChange is one parsed line of a gas-snapshot diff. OldGas is -1 when
// the diff line carried no "old -> new" pair; GasChange then equals
// NewGas, since there is no baseline to compare against.
type GasChange struct {
	Type      ChangeType `json:"type"`
	Contract  string     `json:"contract"`
	Function  string     `json:"function"`
	OldGas    int64      `json:"old_gas"`
	NewGas    int64      `json:"new_gas"`
	GasChange int64      `json:"gas_change"`
}

// HasBaseline reports whether the diff line carried an old gas value.
func (c GasChange) HasBaseline() bool {
	return c.OldGas >= 0
}

// Summary aggregates a full change set for display
type Summary struct {
	Improvements     int    `json:"improvements"`
	Regressions      int    `json:"regressions"`
	TotalImprovement int64  `json:"total_improvement"`
	TotalRegression  int64  `json:"total_regression"`
	NetChange        int64  `json:"net_change"`
	Icon             string `json:"icon"`
	Text             string `json:"text"`
}

// PRInfo carries the branch/commit context substituted into a report.
// It is built once from configuration by the CLI layer; nothing below
// the CLI reads the environment.
type PRInfo struct {
	BaseBranch string `json:"base_branch"`
	HeadBranch string `json:"head_branch"`
	CommitSHA  string `json:"commit_sha"`
	Repository string `json:"repository"` // owner/repo
	ServerURL  string `json:"server_url"`
}
