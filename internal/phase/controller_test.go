package phase

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/pairing/internal/assets"
	"svw.info/pairing/internal/domain"
)

func newController(seed int64) *Controller {
	return New(assets.DefaultSets(), rand.New(rand.NewSource(seed)))
}

// fillIdentity drops pair<N> onto target<N> for every slot of the active board.
func fillIdentity(t *testing.T, c *Controller) {
	t.Helper()
	for i, s := range c.Board().Slots() {
		item := domain.Item(strings.Replace(string(s.Target), "target", "pair", 1))
		_, err := c.Place(item, i)
		require.NoError(t, err)
	}
}

func TestStartRejectsEmptyCode(t *testing.T) {
	c := newController(1)
	for _, code := range []string{"", "   "} {
		assert.ErrorIs(t, c.Start(code), domain.ErrEmptySessionCode)
	}
	assert.Equal(t, domain.Uninitialized, c.State())
	assert.Nil(t, c.Board())

	_, err := c.Advance()
	assert.ErrorIs(t, err, domain.ErrNotStarted)
	_, err = c.Place("pair1", 0)
	assert.ErrorIs(t, err, domain.ErrNotStarted)
}

func TestStartTwice(t *testing.T) {
	c := newController(1)
	require.NoError(t, c.Start("abc"))
	assert.ErrorIs(t, c.Start("def"), domain.ErrAlreadyStarted)
	assert.Equal(t, "abc", c.Code())
}

func TestStartWithBadOrder(t *testing.T) {
	c := newController(1)
	assert.Error(t, c.StartWithOrder("abc", [2]int{1, 1}))
	assert.Equal(t, domain.Uninitialized, c.State())
}

func TestOrderIsRandomizedPerSeed(t *testing.T) {
	seen := map[[2]int]bool{}
	for seed := int64(0); seed < 50; seed++ {
		c := newController(seed)
		require.NoError(t, c.Start("x"))
		o := c.Order()
		require.True(t, o == [2]int{0, 1} || o == [2]int{1, 0}, "order %v", o)
		assert.Equal(t, o[0], c.Board().Phase())
		seen[o] = true
	}
	assert.Len(t, seen, 2, "both orders should appear across seeds")
}

func TestSameSeedSameSession(t *testing.T) {
	a, b := newController(42), newController(42)
	require.NoError(t, a.Start("x"))
	require.NoError(t, b.Start("x"))
	assert.Equal(t, a.Order(), b.Order())
	assert.Equal(t, a.Board().Pool(), b.Board().Pool())
}

func TestPoolIsPermutationOfPhaseSet(t *testing.T) {
	c := newController(7)
	require.NoError(t, c.StartWithOrder("x", [2]int{1, 0}))
	assert.ElementsMatch(t, assets.DefaultSets()[1].Draggables, c.Board().Pool())
	assert.Equal(t, assets.DefaultSets()[1].Targets[0], c.Board().Slots()[0].Target)
}

func TestCompletionGating(t *testing.T) {
	c := newController(3)
	require.NoError(t, c.StartWithOrder("abc", [2]int{0, 1}))

	for i := 0; i < assets.PerPhase; i++ {
		assert.False(t, c.OnBoardComplete())
		_, err := c.Advance()
		require.ErrorIs(t, err, domain.ErrNotComplete)
		_, ok := c.Result(0)
		require.False(t, ok, "incomplete advance committed a result")
		_, err = c.Place(domain.Item(fmt.Sprintf("pair%d", i+1)), i)
		require.NoError(t, err)
	}
	assert.True(t, c.OnBoardComplete())
	assert.Equal(t, domain.PhaseOneActive, c.State())
}

func TestAdvanceLoadsSecondPhase(t *testing.T) {
	c := newController(3)
	require.NoError(t, c.StartWithOrder("abc", [2]int{1, 0}))
	fillIdentity(t, c)

	tr, err := c.Advance()
	require.NoError(t, err)
	assert.Equal(t, domain.TransitionNextPhase, tr)
	assert.Equal(t, domain.PhaseTwoActive, c.State())
	assert.Equal(t, 1, c.Step())
	assert.Equal(t, 0, c.Board().Phase())
	assert.False(t, c.OnBoardComplete(), "second phase must start empty")

	res, ok := c.Result(1)
	require.True(t, ok)
	assert.Equal(t, domain.Item("pair7"), res.Entries[0].Item)

	_, err = c.ExportResults()
	assert.ErrorIs(t, err, domain.ErrNotComplete)
}

func TestEndToEndReportIsInLogicalOrder(t *testing.T) {
	c := newController(9)
	require.NoError(t, c.StartWithOrder("abc", [2]int{1, 0}))
	fillIdentity(t, c)
	tr, err := c.Advance()
	require.NoError(t, err)
	require.Equal(t, domain.TransitionNextPhase, tr)

	fillIdentity(t, c)
	tr, err = c.Advance()
	require.NoError(t, err)
	require.Equal(t, domain.TransitionSave, tr)
	assert.Equal(t, domain.Finalized, c.State())

	out, err := c.ExportResults()
	require.NoError(t, err)
	var want strings.Builder
	want.WriteString("Phase 1 Results:\n")
	for i := 1; i <= 6; i++ {
		fmt.Fprintf(&want, "target%d -> pair%d\n", i, i)
	}
	want.WriteString("\nPhase 2 Results:\n")
	for i := 7; i <= 12; i++ {
		fmt.Fprintf(&want, "target%d -> pair%d\n", i, i)
	}
	assert.Equal(t, want.String(), out)

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rep, err := c.Report(now)
	require.NoError(t, err)
	assert.Equal(t, "abc", rep.SessionCode)
	assert.Equal(t, now, rep.CreatedAt)
	assert.Equal(t, 0, rep.Results[0].Phase)
	assert.Equal(t, 1, rep.Results[1].Phase)
}

func TestNoMutationAfterFinalized(t *testing.T) {
	c := newController(5)
	require.NoError(t, c.Start("abc"))
	fillIdentity(t, c)
	_, err := c.Advance()
	require.NoError(t, err)
	fillIdentity(t, c)
	_, err = c.Advance()
	require.NoError(t, err)

	_, err = c.Advance()
	assert.ErrorIs(t, err, domain.ErrFinalized)
	_, err = c.Place("pair1", 0)
	assert.ErrorIs(t, err, domain.ErrFinalized)
	_, err = c.Remove(0)
	assert.ErrorIs(t, err, domain.ErrFinalized)
	_, err = c.Confirm()
	assert.ErrorIs(t, err, domain.ErrFinalized)
	_, err = c.Cancel()
	assert.ErrorIs(t, err, domain.ErrFinalized)
	assert.False(t, c.OnBoardComplete())
}
