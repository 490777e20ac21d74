package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/hardenlab/securebot/pkg/domain/types"
)

func TestRunID(t *testing.T) {
	t.Run("new IDs are unique", func(t *testing.T) {
		gt.V(t, types.NewRunID() == types.NewRunID()).Equal(false)
	})

	t.Run("short is the leading segment", func(t *testing.T) {
		runID := types.RunID("0123456789abcdef")
		gt.V(t, runID.Short()).Equal("01234567")
	})

	t.Run("short of a tiny ID is the ID itself", func(t *testing.T) {
		gt.V(t, types.RunID("abc").Short()).Equal("abc")
	})
}
