package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/domain/model"
)

func TestFixOutcomeValidate(t *testing.T) {
	issues := []model.Issue{
		{Key: "issue-a", File: "a.go"},
		{Key: "issue-b", File: "b.go"},
	}

	t.Run("applied fixes within the issue set pass", func(t *testing.T) {
		outcome := &model.FixOutcome{
			Applied: []model.AppliedFix{{IssueKey: "issue-a"}},
			Skipped: []model.SkippedFix{{IssueKey: "issue-b", Reason: "too risky"}},
		}
		gt.NoError(t, outcome.Validate(issues))
	})

	t.Run("fix for an unknown issue fails", func(t *testing.T) {
		outcome := &model.FixOutcome{
			Applied: []model.AppliedFix{{IssueKey: "issue-z"}},
		}
		err := outcome.Validate(issues)
		gt.Error(t, err)
		gt.S(t, err.Error()).Contains("unknown issue")
	})

	t.Run("empty issue key fails", func(t *testing.T) {
		outcome := &model.FixOutcome{
			Applied: []model.AppliedFix{{IssueKey: ""}},
		}
		gt.Error(t, outcome.Validate(issues))
	})

	t.Run("empty outcome passes", func(t *testing.T) {
		outcome := &model.FixOutcome{}
		gt.NoError(t, outcome.Validate(issues))
	})
}

func TestFixOutcomeSuccessRate(t *testing.T) {
	outcome := &model.FixOutcome{
		Applied: []model.AppliedFix{{IssueKey: "a"}, {IssueKey: "b"}},
	}
	gt.V(t, outcome.SuccessRate(3)).Equal("2/3")
	gt.V(t, (&model.FixOutcome{}).SuccessRate(0)).Equal("0/0")
}

func TestFixOutcomeAppliedKeys(t *testing.T) {
	outcome := &model.FixOutcome{
		Applied: []model.AppliedFix{{IssueKey: "b"}, {IssueKey: "a"}},
	}
	// Application order, not sorted
	gt.V(t, outcome.AppliedKeys()).Equal([]string{"b", "a"})
}
