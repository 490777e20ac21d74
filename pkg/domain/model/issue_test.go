package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/domain/model"
)

func TestIssueValidate(t *testing.T) {
	t.Run("valid issue passes", func(t *testing.T) {
		issue := &model.Issue{Key: "hardcoded-secret-1", File: "config.js"}
		gt.NoError(t, issue.Validate())
	})

	t.Run("missing key fails", func(t *testing.T) {
		issue := &model.Issue{File: "config.js"}
		gt.Error(t, issue.Validate())
	})

	t.Run("missing file fails", func(t *testing.T) {
		issue := &model.Issue{Key: "hardcoded-secret-1"}
		gt.Error(t, issue.Validate())
	})
}

func TestScanResultIssueKeys(t *testing.T) {
	t.Run("deduplicates and sorts", func(t *testing.T) {
		scan := &model.ScanResult{
			Issues: []model.Issue{
				{Key: "b", File: "b.go"},
				{Key: "a", File: "a.go"},
				{Key: "b", File: "b2.go"},
			},
		}
		gt.V(t, scan.IssueKeys()).Equal([]string{"a", "b"})
	})

	t.Run("no issues yields no keys", func(t *testing.T) {
		scan := &model.ScanResult{}
		gt.A(t, scan.IssueKeys()).Length(0)
	})
}
