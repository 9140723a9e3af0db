package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/core"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/events"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/events/subscribers"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/combat/mapgen"
	"github.com/mitchelldurbincs/GridCombatSimulator/internal/config"
)

var (
	configPath string
	logLevel   string

	mapPath  string
	elfPower int
	watchMap bool
	trace    bool
	quiet    bool

	searchFloor   int
	searchCeiling int

	genWidth  int
	genHeight int
	genUnits  int
	genSeed   int64
	genOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "battle",
		Short: "Deterministic grid combat simulator",
		Long: `Simulates elf versus goblin melee on tile grids: reading-order
turns, shortest-path movement, lowest-hit-point targeting. Can also
search for the smallest elf attack power that wins without losses.`,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one battle to completion",
		Run:   runBattle,
	}
	runCmd.Flags().StringVarP(&mapPath, "map", "m", "", "Path to battlefield map file")
	runCmd.Flags().IntVarP(&elfPower, "power", "p", 0, "Elf attack power (0 to use config default)")
	runCmd.Flags().BoolVarP(&watchMap, "watch", "w", false, "Re-run whenever the map file changes")
	runCmd.Flags().BoolVarP(&trace, "trace", "t", false, "Print the battlefield after every round")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Find the smallest elf attack power that wins without elf losses",
		Run:   runSearch,
	}
	searchCmd.Flags().StringVarP(&mapPath, "map", "m", "", "Path to battlefield map file")
	searchCmd.Flags().IntVar(&searchFloor, "floor", 0, "First power to try (0 to use config default)")
	searchCmd.Flags().IntVar(&searchCeiling, "ceiling", 0, "Last power to try (0 to use config default)")
	searchCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random battlefield map",
		Run:   runGenerate,
	}
	generateCmd.Flags().IntVar(&genWidth, "width", 0, "Map width (0 to use config default)")
	generateCmd.Flags().IntVar(&genHeight, "height", 0, "Map height (0 to use config default)")
	generateCmd.Flags().IntVar(&genUnits, "units", 0, "Units per side (0 to use config default)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "RNG seed (0 to seed from the clock)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Write the map to a file instead of stdout")

	rootCmd.AddCommand(runCmd, searchCmd, generateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBattle(cmd *cobra.Command, args []string) {
	cfg := initRuntime()

	if !quiet {
		titleColor := color.New(color.FgCyan, color.Bold)
		titleColor.Println("Grid Combat Simulator")
		fmt.Println()
	}

	if watchMap {
		watchAndRun(cfg)
		return
	}
	if err := executeBattle(cfg); err != nil {
		os.Exit(1)
	}
}

func executeBattle(cfg *config.Config) error {
	state, err := loadState(cfg, elfPower)
	if err != nil {
		color.Red("%v", err)
		return err
	}

	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("cli", log.Logger, zerolog.DebugLevel))

	var recorder *combat.Recorder
	if trace {
		recorder = combat.NewRecorder()
	}

	engine := combat.NewEngine(combat.EngineConfig{
		State:    state,
		Logger:   log.Logger,
		EventBus: bus,
		Recorder: recorder,
		RoundCap: cfg.Combat.RoundCap,
	})

	out, err := engine.RunToCompletion(context.Background())
	if err != nil {
		if errors.Is(err, core.ErrRoundLimit) {
			color.Red("Stalemate: %v", err)
		} else {
			color.Red("Battle failed: %v", err)
		}
		return err
	}

	if trace {
		printTrace(recorder)
	}

	if quiet {
		fmt.Printf("%d %d %d\n", out.Rounds, out.RemainingHP, out.Score())
		return nil
	}

	printBoard(cfg, state)

	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Printf("\n✓ %s victory after %d rounds\n", out.Winner, out.Rounds)
	fmt.Printf("  Remaining hit points: %d\n", out.RemainingHP)
	fmt.Printf("  Score: %d\n", out.Score())
	return nil
}

func printBoard(cfg *config.Config, state *combat.State) {
	if cfg.Render.HPColumn {
		fmt.Println(colorizeBoard(state.RenderWithHP()))
	} else {
		fmt.Println(colorizeBoard(state.Render()))
	}
}

// colorizeBoard colors a rendered battlefield for the terminal: elves
// green, goblins red, walls dim. Faction letters in the HP column pick
// up the same colors.
func colorizeBoard(text string) string {
	elfColor := color.New(color.FgGreen, color.Bold)
	goblinColor := color.New(color.FgRed, color.Bold)
	wallColor := color.New(color.FgHiBlack)

	var b strings.Builder
	for _, r := range text {
		switch r {
		case 'E':
			b.WriteString(elfColor.Sprint("E"))
		case 'G':
			b.WriteString(goblinColor.Sprint("G"))
		case '#':
			b.WriteString(wallColor.Sprint("#"))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func printTrace(recorder *combat.Recorder) {
	infoColor := color.New(color.FgYellow)

	for _, frame := range recorder.Frames() {
		switch {
		case frame.Round == 0 && !frame.Final:
			infoColor.Println("Initial battlefield:")
		case frame.Final:
			infoColor.Printf("Battle ended during round %d:\n", frame.Round+1)
		default:
			infoColor.Printf("After round %d:\n", frame.Round)
		}
		fmt.Println(colorizeBoard(frame.Grid))

		for _, u := range frame.Units {
			fmt.Printf("  %c(%d) at %s\n", u.Side.Rune(), u.HP, u.Pos)
		}
		fmt.Println()
	}
}

// watchAndRun keeps replaying the battle every time the map file is
// saved. A failed run (half-saved map, stalemate) is logged and the
// watcher keeps waiting; the battle itself finishes in milliseconds, so
// runs are never interrupted mid-flight.
func watchAndRun(cfg *config.Config) {
	if err := executeBattle(cfg); err != nil {
		log.Error().Err(err).Msg("Run failed, waiting for the next change")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		color.Red("Error creating watcher: %v", err)
		os.Exit(1)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors that save via
	// rename-and-replace would otherwise silently drop the watch.
	if err := watcher.Add(filepath.Dir(mapPath)); err != nil {
		color.Red("Error watching %s: %v", mapPath, err)
		os.Exit(1)
	}
	log.Info().Str("path", mapPath).Msg("Watching map file, press Ctrl-C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Watch stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(mapPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Editors emit several events per save
			time.Sleep(50 * time.Millisecond)
			drainEvents(watcher)

			fmt.Println()
			log.Info().Str("path", event.Name).Msg("Map changed, rerunning battle")
			if err := executeBattle(cfg); err != nil {
				log.Error().Err(err).Msg("Run failed, waiting for the next change")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("Watcher error")
		}
	}
}

func drainEvents(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-watcher.Events:
		default:
			return
		}
	}
}

func runSearch(cmd *cobra.Command, args []string) {
	cfg := initRuntime()

	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	if !quiet {
		titleColor.Println("Minimal Power Search")
		fmt.Println()
	}

	state, err := loadState(cfg, 0)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}

	floor := searchFloor
	if floor == 0 {
		floor = cfg.Search.Floor
	}
	ceiling := searchCeiling
	if ceiling == 0 {
		ceiling = cfg.Search.MaxPower
	}

	type attemptRow struct {
		power       int
		winner      core.Faction
		elfDeaths   int
		rounds      int
		remainingHP int
	}
	var attempts []attemptRow

	bus := events.NewEventBus()
	bus.SubscribeFunc(events.TypePowerAttemptFinished, func(ev events.Event) {
		if fin, ok := ev.(*events.PowerAttemptFinishedEvent); ok {
			attempts = append(attempts, attemptRow{
				power:       fin.Power,
				winner:      fin.Winner,
				elfDeaths:   fin.ElfDeaths,
				rounds:      fin.Rounds,
				remainingHP: fin.RemainingHP,
			})
		}
	})

	if !quiet {
		infoColor.Printf("Trying powers %d through %d...\n\n", floor, ceiling)
	}

	res, err := combat.SearchMinimalPower(context.Background(), combat.SearchConfig{
		State:    state,
		Logger:   log.Logger,
		EventBus: bus,
		Floor:    floor,
		Ceiling:  ceiling,
		RoundCap: cfg.Combat.RoundCap,
	})
	if err != nil {
		if errors.Is(err, core.ErrNoViablePower) {
			color.Red("No solution found within bound: %v", err)
		} else {
			color.Red("Search failed: %v", err)
		}
		os.Exit(1)
	}

	if quiet {
		fmt.Printf("%d %d %d %d\n", res.Power, res.Rounds, res.RemainingHP, res.Score())
		return
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Power", "Winner", "Elf Deaths", "Rounds", "Remaining HP"}),
	)
	for _, a := range attempts {
		row := []string{
			fmt.Sprintf("%d", a.power),
			a.winner.String(),
			fmt.Sprintf("%d", a.elfDeaths),
			fmt.Sprintf("%d", a.rounds),
			fmt.Sprintf("%d", a.remainingHP),
		}
		table.Append(row)
	}
	table.Render()

	fmt.Println()
	printBoard(cfg, res.Final)

	successColor.Printf("\n✓ Flawless elf victory at power %d after %d attempts\n", res.Power, res.Attempts)
	fmt.Printf("  Rounds: %d, remaining hit points: %d, score: %d\n", res.Rounds, res.RemainingHP, res.Score())
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg := initRuntime()

	width := genWidth
	if width == 0 {
		width = cfg.MapGen.Width
	}
	height := genHeight
	if height == 0 {
		height = cfg.MapGen.Height
	}
	units := genUnits
	if units == 0 {
		units = cfg.MapGen.UnitsPerSide
	}
	seed := genSeed
	if seed == 0 {
		seed = cfg.MapGen.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mc := mapgen.DefaultMapConfig(width, height, units)
	mc.WallRatio = cfg.MapGen.WallRatio
	mc.MinUnitSpacing = cfg.MapGen.MinUnitSpacing

	gen := mapgen.NewGenerator(mc, rand.New(rand.NewSource(seed)))
	text := gen.GenerateMap()

	// A map the parser rejects would be useless to every other command
	if _, err := combat.Parse(text); err != nil {
		color.Red("Generated map failed validation: %v", err)
		os.Exit(1)
	}

	if genOut != "" {
		if err := os.WriteFile(genOut, []byte(text+"\n"), 0644); err != nil {
			color.Red("Error writing map: %v", err)
			os.Exit(1)
		}
		log.Info().Str("path", genOut).Int64("seed", seed).Msg("Map written")
		return
	}
	fmt.Println(text)
}

func initRuntime() *config.Config {
	// Initialize configuration
	if err := config.Init(configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	level := logLevel
	if level == "" {
		level = cfg.Log.Level
	}
	setupLogging(level)

	return cfg
}

func loadState(cfg *config.Config, power int) (*combat.State, error) {
	if mapPath == "" {
		return nil, errors.New("a battlefield map is required, pass --map")
	}

	text, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}

	if power == 0 {
		power = cfg.Combat.BasePower
	}
	state, err := combat.ParseWithOptions(string(text), combat.ParseOptions{
		StartingHP: cfg.Combat.StartingHP,
		ElfPower:   power,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing map: %w", err)
	}
	return state, nil
}

func setupLogging(level string) {
	// Parse log level
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Check if we're in production
	if os.Getenv("APP_ENV") == "production" {
		// JSON output for production
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Pretty console output for development
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
