package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Garsondee/Ghost-Loop/internal/config"
	"github.com/Garsondee/Ghost-Loop/internal/screen"
	"github.com/Garsondee/Ghost-Loop/internal/script"
	"github.com/Garsondee/Ghost-Loop/internal/sim"
	"github.com/Garsondee/Ghost-Loop/internal/stage"
)

// Outcomes of one run.
const (
	outcomeHell    = "hell"
	outcomeEscaped = "escaped"
	outcomeTimeout = "timeout"
)

type runStats struct {
	runIndex int
	runID    uuid.UUID
	scenario string
	delay    float64 // seconds the script idled before starting

	outcome      string
	endTick      int
	firstSpotted int
	spottedBy    string
	takedowns    int
	wraps        int
	ghosts       int
	stateChanges int

	summary string
	log     string // full SimLog, only kept with -full
}

type options struct {
	runs      int
	ticks     int
	tps       int
	parallel  int
	scenario  string
	delayStep float64
	full      bool
	verbose   bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var opts options
	var stagePath, logLevel string

	flag.IntVar(&opts.runs, "runs", 5, "number of headless runs")
	flag.IntVar(&opts.ticks, "ticks", 3600, "tick cap per run")
	flag.IntVar(&opts.tps, "tps", 60, "ticks per simulated second")
	flag.IntVar(&opts.parallel, "parallel", 4, "runs simulated at once")
	flag.StringVar(&opts.scenario, "scenario", "route", "scenario name ("+strings.Join(scenarioNames(), ", ")+")")
	flag.Float64Var(&opts.delayStep, "delay-step", 1.5, "extra idle seconds before the script for each later run")
	flag.BoolVar(&opts.full, "full", false, "print the full event log of every run")
	flag.BoolVar(&opts.verbose, "verbose", false, "record per-tick events")
	flag.StringVar(&stagePath, "stage", "", "stage YAML (default: built-in stage)")
	flag.StringVar(&logLevel, "log-level", "warn", "zap log level")
	flag.Parse()

	log, err := config.NewLogger(config.LoggingConfig{Level: logLevel, Format: "console", Output: "stderr"})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	st, err := stage.Load(stagePath)
	if err != nil {
		return err
	}

	all, err := runAll(st, opts, log)
	if err != nil {
		return err
	}

	out := os.Stdout
	fmt.Fprintf(out, "=== Headless Loop Report ===\n")
	fmt.Fprintf(out, "stage=%s scenario=%s runs=%d ticks=%d tps=%d delay_step=%.2f\n\n",
		st.Name, opts.scenario, opts.runs, opts.ticks, opts.tps, opts.delayStep)
	for _, rs := range all {
		printRun(out, rs)
	}
	printAggregate(out, all)
	return nil
}

// runAll simulates opts.runs independent worlds, opts.parallel at a time.
// Results come back in run order.
func runAll(st *stage.Stage, opts options, log *zap.Logger) ([]runStats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.runs <= 0 {
		return nil, fmt.Errorf("-runs must be > 0")
	}
	if opts.ticks <= 0 {
		return nil, fmt.Errorf("-ticks must be > 0")
	}
	if opts.tps <= 0 {
		return nil, fmt.Errorf("-tps must be > 0")
	}
	sc, ok := scenarios[opts.scenario]
	if !ok {
		return nil, fmt.Errorf("unsupported scenario %q (supported: %s)", opts.scenario, strings.Join(scenarioNames(), ", "))
	}

	all := make([]runStats, opts.runs)
	var g errgroup.Group
	if opts.parallel > 0 {
		g.SetLimit(opts.parallel)
	}
	for i := 0; i < opts.runs; i++ {
		g.Go(func() error {
			rs, err := runOne(st, sc, i, opts, log)
			if err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
			all[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func runOne(st *stage.Stage, sc scenario, index int, opts options, log *zap.Logger) (runStats, error) {
	id := uuid.New()
	delay := float64(index) * opts.delayStep
	rlog := log.With(zap.String("run", id.String()), zap.Int("index", index+1))

	simOpts := []sim.SimOption{
		sim.WithLayout(st.Layout()),
		sim.WithTickRate(opts.tps),
		sim.WithVerbose(opts.verbose),
		sim.WithScript(sc.moves(delay, opts.tps)...),
		sim.WithWorldOption(sim.WithLogger(rlog)),
	}
	if st.Objective != "" {
		obj, err := script.NewObjective(st.Objective, rlog)
		if err != nil {
			return runStats{}, err
		}
		defer obj.Close()
		simOpts = append(simOpts, sim.WithWorldOption(sim.WithObjective(obj)))
	}

	ts, err := sim.NewTestSim(simOpts...)
	if err != nil {
		return runStats{}, err
	}
	ts.RunUntil(func(ts *sim.TestSim) bool {
		return ts.Screen() != screen.Playing
	}, opts.ticks)

	rs := collect(ts)
	rs.runIndex = index + 1
	rs.runID = id
	rs.scenario = sc.name
	rs.delay = delay
	if opts.full {
		rs.log = ts.SimLog.Format()
	}
	rlog.Debug("run finished", zap.String("outcome", rs.outcome), zap.Int("tick", rs.endTick))
	return rs, nil
}

// collect reads a finished harness into runStats.
func collect(ts *sim.TestSim) runStats {
	sl := ts.SimLog
	rs := runStats{
		endTick:      ts.CurrentTick(),
		firstSpotted: -1,
		takedowns:    sl.CountCategory(sim.CatTakedown, "down"),
		wraps:        sl.CountCategory(sim.CatClock, "wrap"),
		ghosts:       len(ts.World.Ghosts()),
		stateChanges: sl.CountCategory(sim.CatState, "change"),
		summary:      sl.Summary(ts.World),
	}
	if spots := sl.Filter(sim.CatDetect, "spotted"); len(spots) > 0 {
		rs.firstSpotted = spots[0].Tick
		rs.spottedBy = spots[0].Actor
	}
	switch ts.Screen() {
	case screen.Hell:
		rs.outcome = outcomeHell
	case screen.Win:
		rs.outcome = outcomeEscaped
	default:
		rs.outcome = outcomeTimeout
	}
	return rs
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (id=%s delay=%.2fs) ---\n", rs.runIndex, rs.runID, rs.delay)
	fmt.Fprintf(w, "outcome=%s end_tick=%d first_spotted=%d spotted_by=%s\n",
		rs.outcome, rs.endTick, rs.firstSpotted, orNone(rs.spottedBy))
	fmt.Fprintf(w, "event_totals: takedowns=%d wraps=%d ghosts=%d state_changes=%d\n",
		rs.takedowns, rs.wraps, rs.ghosts, rs.stateChanges)
	fmt.Fprint(w, rs.summary)
	if rs.log != "" {
		fmt.Fprint(w, rs.log)
	}
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, all []runStats) {
	outcomes := map[string]int{}
	spotters := map[string]int{}
	var spotTicks, endTicks []int
	totalTakedowns, totalWraps := 0, 0

	for _, rs := range all {
		outcomes[rs.outcome]++
		endTicks = append(endTicks, rs.endTick)
		if rs.firstSpotted >= 0 {
			spotTicks = append(spotTicks, rs.firstSpotted)
			spotters[rs.spottedBy]++
		}
		totalTakedowns += rs.takedowns
		totalWraps += rs.wraps
	}

	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d escaped=%d hell=%d timeout=%d\n",
		len(all), outcomes[outcomeEscaped], outcomes[outcomeHell], outcomes[outcomeTimeout])
	fmt.Fprintf(w, "avg_per_run: takedowns=%.1f wraps=%.1f\n",
		avg(totalTakedowns, len(all)), avg(totalWraps, len(all)))
	fmt.Fprintf(w, "avg_ticks: first_spotted=%s end=%s\n", avgTickString(spotTicks), avgTickString(endTicks))
	fmt.Fprintf(w, "spotters: %s\n", joinCounts(spotters))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, k := range labels {
		parts[i] = fmt.Sprintf("%s(%d)", k, counts[k])
	}
	return strings.Join(parts, ",")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
