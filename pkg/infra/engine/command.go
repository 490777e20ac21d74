package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/hardenlab/securebot/pkg/domain/interfaces"
	"github.com/hardenlab/securebot/pkg/domain/model"
	"github.com/hardenlab/securebot/pkg/domain/types"
	"github.com/hardenlab/securebot/pkg/utils/logging"
	"github.com/hardenlab/securebot/pkg/utils/safe"
)

// Command runs the remediation engine as an external binary. The engine reads
// a workspace directory and exchanges JSON files:
//
//	<bin> scan --format json --output <file> <dir>
//	<bin> fix --issues <file> --format json --output <file> <dir>
//
// The engine's detection heuristics are its own concern; this adapter only
// enforces the control contract.
type Command struct {
	path string
}

var _ interfaces.Remediator = (*Command)(nil)

func New(path string) *Command {
	return &Command{path: path}
}

// Ready reports whether the engine binary can be executed. A failed probe is
// fatal for a run, not for the process.
func (x *Command) Ready(ctx context.Context) error {
	if x.path == "" {
		return goerr.Wrap(types.ErrEngineUnavailable, "engine binary path is not configured")
	}
	if _, err := exec.LookPath(x.path); err != nil {
		return goerr.Wrap(types.ErrEngineUnavailable, "engine binary is not executable",
			goerr.V("path", x.path),
		)
	}
	return nil
}

type scanReport struct {
	Issues []model.Issue `json:"issues"`
}

func (x *Command) Scan(ctx context.Context, dir string) ([]model.Issue, error) {
	output, err := os.CreateTemp("", "securebot_scan.*.json")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create temp file for scan result")
	}
	defer safe.Remove(output.Name())
	if err := output.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close temp file for scan result")
	}

	if err := x.run(ctx, "scan",
		"--format", "json",
		"--output", output.Name(),
		dir,
	); err != nil {
		return nil, err
	}

	var report scanReport
	if err := unmarshalFile(output.Name(), &report); err != nil {
		return nil, err
	}

	for _, issue := range report.Issues {
		if err := issue.Validate(); err != nil {
			return nil, goerr.Wrap(err, "engine reported invalid issue")
		}
	}

	logging.From(ctx).Debug("engine scan finished",
		"dir", dir,
		"issues", len(report.Issues),
	)

	return report.Issues, nil
}

func (x *Command) Fix(ctx context.Context, dir string, issues []model.Issue) (*model.FixOutcome, error) {
	input, err := os.CreateTemp("", "securebot_issues.*.json")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create temp file for issue set")
	}
	defer safe.Remove(input.Name())

	if err := json.NewEncoder(input).Encode(scanReport{Issues: issues}); err != nil {
		return nil, goerr.Wrap(err, "failed to encode issue set")
	}
	if err := input.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close temp file for issue set")
	}

	output, err := os.CreateTemp("", "securebot_fix.*.json")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create temp file for fix result")
	}
	defer safe.Remove(output.Name())
	if err := output.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close temp file for fix result")
	}

	if err := x.run(ctx, "fix",
		"--issues", input.Name(),
		"--format", "json",
		"--output", output.Name(),
		dir,
	); err != nil {
		return nil, err
	}

	var outcome model.FixOutcome
	if err := unmarshalFile(output.Name(), &outcome); err != nil {
		return nil, err
	}

	// Contract: the engine must not apply fixes for issues it was not given.
	if err := outcome.Validate(issues); err != nil {
		return nil, goerr.Wrap(err, "engine violated fix contract")
	}

	return &outcome, nil
}

func (x *Command) run(ctx context.Context, subcommand string, args ...string) error {
	if err := x.Ready(ctx); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, x.path, append([]string{subcommand}, args...)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return goerr.Wrap(ctx.Err(), "engine aborted", goerr.V("subcommand", subcommand))
		}
		return goerr.Wrap(types.ErrEngineUnavailable, fmt.Sprintf("engine %s failed", subcommand),
			goerr.V("path", x.path),
			goerr.V("output", string(out)),
		)
	}

	return nil
}

func unmarshalFile(path string, v any) error {
	fd, err := os.Open(filepath.Clean(path))
	if err != nil {
		return goerr.Wrap(err, "failed to open file", goerr.V("path", path))
	}
	defer safe.Close(fd)

	if err := json.NewDecoder(fd).Decode(v); err != nil {
		return goerr.Wrap(err, "failed to decode json", goerr.V("path", path))
	}

	return nil
}
