package testutil

import (
	"errors"
	"fmt"
	"testing"
)

func TestPrefix(t *testing.T) {
	tests := []struct {
		args []any
		want string
	}{
		{nil, ""},
		{[]any{"depth %d", 3}, "depth 3: "},
		{[]any{"plain"}, "plain: "},
		{[]any{42}, "42: "},
	}
	for _, tt := range tests {
		if got := prefix(tt.args...); got != tt.want {
			t.Errorf("prefix(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestAssertionsPass(t *testing.T) {
	sentinel := errors.New("sentinel")
	AssertEqual(t, []int{1, 2}, []int{1, 2})
	AssertNoError(t, nil)
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", sentinel), sentinel)
	AssertContains(t, "bestmove e2e4", "e2e4")
	AssertNotContains(t, "bestmove e2e4", "0000")
	AssertTrue(t, true)
}
