package combat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/events"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/testutil"
)

func TestSearchMinimalPower(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		power  int
		rounds int
		hp     int
		score  int
	}{
		{"Combat", testutil.CombatMap, 15, 29, 172, 4988},
		{"Dense", testutil.DenseMap, 4, 33, 948, 31284},
		{"Split", testutil.SplitMap, 15, 37, 94, 3478},
		{"Corridor", testutil.CorridorMap, 12, 39, 166, 6474},
		{"Wide", testutil.WideMap, 34, 30, 38, 1140},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustParse(t, tt.text)
			res, err := SearchMinimalPower(context.Background(), SearchConfig{
				State:  s,
				Logger: testutil.NopLogger(),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.power, res.Power)
			assert.Equal(t, tt.rounds, res.Rounds)
			assert.Equal(t, tt.hp, res.RemainingHP)
			assert.Equal(t, tt.score, res.Score())
			assert.Equal(t, core.Elf, res.Winner)

			require.NotNil(t, res.Final)
			assert.Equal(t, 0, res.Final.Deaths(core.Elf), "flawless means zero elf losses")
			assert.Equal(t, tt.hp, res.Final.TotalRemainingHP())
		})
	}
}

func TestSearchMinimalPower_FinalStates(t *testing.T) {
	tests := []struct {
		name string
		text string
		grid string
		hps  []int
	}{
		{
			name: "Combat",
			text: testutil.CombatMap,
			grid: `#######
#..E..#
#...E.#
#.#.#.#
#...#.#
#.....#
#######`,
			hps: []int{158, 14},
		},
		{
			name: "Dense",
			text: testutil.DenseMap,
			grid: `#######
#.E.E.#
#.#E..#
#E.##E#
#.E.#.#
#...#.#
#######`,
			hps: []int{200, 23, 200, 125, 200, 200},
		},
		{
			name: "Split",
			text: testutil.SplitMap,
			grid: `#######
#.E.#.#
#.#E..#
#..#..#
#...#.#
#.....#
#######`,
			hps: []int{8, 86},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustParse(t, tt.text)
			res, err := SearchMinimalPower(context.Background(), SearchConfig{
				State:  s,
				Logger: testutil.NopLogger(),
			})
			require.NoError(t, err)

			assert.Equal(t, tt.grid, res.Final.Render())
			assert.Equal(t, tt.hps, res.Final.LivingHitPoints())
		})
	}
}

func TestSearchMinimalPower_Attempts(t *testing.T) {
	s := mustParse(t, testutil.CombatMap)

	res, err := SearchMinimalPower(context.Background(), SearchConfig{State: s, Logger: testutil.NopLogger()})
	require.NoError(t, err)
	assert.Equal(t, 13, res.Attempts, "powers 3 through 15, one battle each")
}

func TestSearchMinimalPower_FloorSkipsWeakerPowers(t *testing.T) {
	s := mustParse(t, testutil.CombatMap)

	res, err := SearchMinimalPower(context.Background(), SearchConfig{
		State:  s,
		Logger: testutil.NopLogger(),
		Floor:  10,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, res.Power)
	assert.Equal(t, 6, res.Attempts)

	// A floor right on the answer succeeds first try
	res, err = SearchMinimalPower(context.Background(), SearchConfig{
		State:  s,
		Logger: testutil.NopLogger(),
		Floor:  15,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, res.Power)
	assert.Equal(t, 1, res.Attempts)
}

func TestSearchMinimalPower_CeilingExhausted(t *testing.T) {
	s := mustParse(t, testutil.CombatMap)

	_, err := SearchMinimalPower(context.Background(), SearchConfig{
		State:   s,
		Logger:  testutil.NopLogger(),
		Ceiling: 10,
	})
	assert.ErrorIs(t, err, core.ErrNoViablePower)
}

func TestSearchMinimalPower_FloorAboveCeiling(t *testing.T) {
	s := mustParse(t, testutil.CombatMap)

	_, err := SearchMinimalPower(context.Background(), SearchConfig{
		State:   s,
		Logger:  testutil.NopLogger(),
		Floor:   30,
		Ceiling: 20,
	})
	assert.ErrorIs(t, err, core.ErrNoViablePower)
}

func TestSearchMinimalPower_BaseStateUntouched(t *testing.T) {
	s := mustParse(t, testutil.CombatMap)

	_, err := SearchMinimalPower(context.Background(), SearchConfig{State: s, Logger: testutil.NopLogger()})
	require.NoError(t, err)

	// Every attempt ran on a clone
	assert.Equal(t, core.BasePower, s.ElfPower())
	assert.Equal(t, 6, len(s.Units()))
	for _, u := range s.Units() {
		assert.Equal(t, core.StartingHP, u.HP)
	}
	assert.NoError(t, s.VerifyOccupancy())
	assert.Equal(t, testutil.CombatMap, s.Render())
}

func TestSearchMinimalPower_PublishesAttempts(t *testing.T) {
	s := mustParse(t, testutil.CombatMap)
	bus := events.NewEventBus()

	var attempts []int
	bus.SubscribeFunc(events.TypePowerAttemptFinished, func(ev events.Event) {
		attempts = append(attempts, ev.(*events.PowerAttemptFinishedEvent).Power)
	})
	var completed int
	bus.SubscribeFunc(events.TypePowerSearchCompleted, func(events.Event) { completed++ })

	res, err := SearchMinimalPower(context.Background(), SearchConfig{
		State:    s,
		Logger:   testutil.NopLogger(),
		EventBus: bus,
	})
	require.NoError(t, err)

	require.Len(t, attempts, res.Attempts)
	assert.Equal(t, 3, attempts[0])
	assert.Equal(t, 15, attempts[len(attempts)-1])
	assert.Equal(t, 1, completed)
}

func TestSearchMinimalPower_ContextCancelled(t *testing.T) {
	s := mustParse(t, testutil.CombatMap)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SearchMinimalPower(ctx, SearchConfig{State: s, Logger: testutil.NopLogger()})
	assert.ErrorIs(t, err, context.Canceled)
}
