package combat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/testutil"
)

func TestRecorder_CapturesFullBattle(t *testing.T) {
	s := mustParse(t, testutil.CombatMap)
	rec := NewRecorder()
	e := NewEngine(EngineConfig{State: s, Logger: testutil.NopLogger(), Recorder: rec})

	out, err := e.RunToCompletion(context.Background())
	require.NoError(t, err)

	// Frame zero is the parsed start, then one frame per completed round
	frames := rec.Frames()
	require.Len(t, frames, 48)
	assert.Equal(t, 48, rec.Len())

	assert.Equal(t, 0, frames[0].Round)
	assert.False(t, frames[0].Final)
	assert.Equal(t, testutil.CombatMap, frames[0].Grid)
	assert.Len(t, frames[0].Units, 6)

	last := frames[len(frames)-1]
	assert.Equal(t, out.Rounds, last.Round)
	assert.False(t, last.Final, "this battle ends on a completed pass")
	assert.Len(t, last.Units, 4)
	for _, u := range last.Units {
		assert.Equal(t, core.Goblin, u.Side)
	}
}

func TestRecorder_MarksCutShortPass(t *testing.T) {
	s := mustParseWith(t, "######\n#EG.E#\n######", ParseOptions{ElfPower: 200})
	rec := NewRecorder()
	e := NewEngine(EngineConfig{State: s, Logger: testutil.NopLogger(), Recorder: rec})

	_, err := e.RunToCompletion(context.Background())
	require.NoError(t, err)

	frames := rec.Frames()
	require.Len(t, frames, 2)
	assert.False(t, frames[0].Final)
	assert.True(t, frames[1].Final, "the deciding pass never completed")
	assert.Equal(t, 0, frames[1].Round)
	assert.Len(t, frames[1].Units, 2)
}

func TestRecorder_SnapshotsAreIndependent(t *testing.T) {
	s := mustParse(t, "#####\n#EG.#\n#####")
	rec := NewRecorder()
	rec.Capture(0, false, s)

	// Later mutations must not bleed into captured frames
	elf := unitAt(t, s, 1, 1)
	elf.HP = 1

	require.Len(t, rec.Frames(), 1)
	assert.Equal(t, core.StartingHP, rec.Frames()[0].Units[0].HP)
}
