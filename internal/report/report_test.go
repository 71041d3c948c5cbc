package report

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"svw.info/pairing/internal/domain"
)

func TestRender(t *testing.T) {
	results := [domain.PhaseCount]domain.PhaseResult{
		{Phase: 0, Entries: []domain.Pairing{
			{Target: "target1", Item: "pair3"},
			{Target: "target2"},
		}},
		{Phase: 1, Entries: []domain.Pairing{
			{Target: "target7", Item: "pair7"},
		}},
	}
	want := "Phase 1 Results:\n" +
		"target1 -> pair3\n" +
		"target2 -> None\n" +
		"\n" +
		"Phase 2 Results:\n" +
		"target7 -> pair7\n"
	if diff := cmp.Diff(want, String(results)); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEmpty(t *testing.T) {
	var results [domain.PhaseCount]domain.PhaseResult
	assert.Equal(t, "Phase 1 Results:\n\nPhase 2 Results:\n", String(results))
}

func TestFileName(t *testing.T) {
	ts := time.Date(2025, 3, 7, 9, 5, 2, 0, time.Local)
	cases := []struct {
		code string
		want string
	}{
		{"abc", "abc_2025-03-07_09-05-02.txt"},
		{"  p_01 ", "p_01_2025-03-07_09-05-02.txt"},
		{"../x", ".._x_2025-03-07_09-05-02.txt"},
		{"..", "___2025-03-07_09-05-02.txt"},
		{`a\b`, "a_b_2025-03-07_09-05-02.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.want, FileName(tc.code, ts))
		})
	}
}

func TestParseFileName(t *testing.T) {
	ts := time.Date(2025, 12, 31, 23, 59, 58, 0, time.Local)
	code, got, ok := ParseFileName(FileName("p_01", ts))
	assert.True(t, ok)
	assert.Equal(t, "p_01", code)
	assert.True(t, ts.Equal(got))

	for _, bad := range []string{"notes.md", "abc.txt", "abc-2025-12-31_23-59-58.txt", "abc_2025-13-31_23-59-58.txt"} {
		_, _, ok := ParseFileName(bad)
		assert.False(t, ok, bad)
	}
}
