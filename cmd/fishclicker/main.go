package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/projectred/fishclicker/internal/config"
	"github.com/projectred/fishclicker/internal/fishing"
	"github.com/projectred/fishclicker/internal/game"
	"github.com/projectred/fishclicker/internal/session"
	"github.com/projectred/fishclicker/internal/storage"
	"github.com/projectred/fishclicker/internal/store"
)

const ConfigPath = "configs/fishclicker.yaml"

const usage = `usage: fishclicker [flags] <command> [args]

commands:
  cast [n]                  cast n times (default 1)
  buy <id>                  buy one unit of a store item
  stats                     show counters, odds and inventory
  catalog                   list store items at current prices
  advise                    rank upgrades by how fast they pay back
  auto <duration>           auto cast for a while (needs the Auto-Clicker)
  simulate [casts] [trials] Monte Carlo a run with the current gear
  export <file>             save progress (.json or .msgpack)
  import <file>             restore progress from a save
`

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath string
	ruleset    string
	seed       uint64
	overrides  game.Overrides
}

func parseFlags(args []string) (cliFlags, []string, error) {
	var f cliFlags
	fs := flag.NewFlagSet("fishclicker", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage); fs.PrintDefaults() }
	fs.StringVar(&f.configPath, "config", "", "app config file (default $"+config.EnvPath+" or "+ConfigPath+")")
	fs.StringVar(&f.ruleset, "ruleset", "", "tuning ruleset layered over games/default.yaml")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for reproducible rolls (0 = crypto random)")
	baseCatch := fs.Float64("base-catch", 0, "override base catch chance")
	catchCap := fs.Float64("catch-cap", 0, "override catch chance ceiling")
	every := fs.Int("milestone-every", 0, "override milestone cadence")
	scale := fs.Float64("price-scale", 0, "override stackable price growth")
	if err := fs.Parse(args); err != nil {
		return f, nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "base-catch":
			f.overrides.BaseCatch = baseCatch
		case "catch-cap":
			f.overrides.CatchCap = catchCap
		case "milestone-every":
			f.overrides.MilestoneEvery = every
		case "price-scale":
			f.overrides.PriceScale = scale
		}
	})
	if f.configPath == "" {
		f.configPath = ConfigPath
		if p := os.Getenv(config.EnvPath); p != "" {
			f.configPath = p
		}
	}
	return f, fs.Args(), nil
}

// app bundles everything a command needs.
type app struct {
	cfg    config.App
	flags  cliFlags
	loader *game.Loader
	repo   *storage.Repository
	sess   *session.Session
	out    io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	f, rest, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("missing command")
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
	if f.ruleset != "" {
		cfg.Ruleset = f.ruleset
	}

	// Tuning
	loader := game.NewLoader(cfg.TuningDir)
	_, rules, err := loader.Resolve(cfg.Ruleset, f.overrides)
	if err != nil {
		return fmt.Errorf("loading tuning: %w", err)
	}
	slog.Debug("tuning loaded", "dir", cfg.TuningDir, "ruleset", cfg.Ruleset)

	// Storage
	kv, closeKV, err := openKV(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer closeKV()

	rng := fishing.DefaultRNG()
	if f.seed != 0 {
		rng = fishing.NewSeededRNG(f.seed)
	}
	repo := storage.NewRepository(kv)
	a := &app{
		cfg:    cfg,
		flags:  f,
		loader: loader,
		repo:   repo,
		sess:   session.New(ctx, repo, session.WithRules(rules), session.WithRNG(rng)),
		out:    out,
	}

	return a.dispatch(ctx, rest[0], rest[1:])
}

func openKV(ctx context.Context, sc config.StorageConfig) (storage.KV, func(), error) {
	switch sc.Driver {
	case config.DriverMemory:
		return storage.NewMemory(), func() {}, nil
	default:
		db, err := storage.OpenSQLite(ctx, sc.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening storage: %w", err)
		}
		slog.Debug("storage opened", "driver", sc.Driver, "path", sc.Path)
		return db, func() {
			if err := db.Close(); err != nil {
				slog.Warn("closing storage", "err", err)
			}
		}, nil
	}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "cast":
		n, err := intArg(args, 0, 1)
		if err != nil {
			return err
		}
		return a.cast(ctx, n)
	case "buy":
		if len(args) < 1 {
			return errors.New("buy: missing item id")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("buy: invalid item id %q", args[0])
		}
		return a.buy(ctx, fishing.ItemID(id))
	case "stats":
		fmt.Fprint(a.out, describeStats(a.sess.State(), a.sess.Stats()))
		return nil
	case "catalog":
		return a.catalog()
	case "advise":
		return a.advise()
	case "auto":
		if len(args) < 1 {
			return errors.New("auto: missing duration")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return fmt.Errorf("auto: %w", err)
		}
		return a.auto(ctx, d)
	case "simulate":
		casts, err := intArg(args, 0, 100)
		if err != nil {
			return err
		}
		trials, err := intArg(args, 1, 1000)
		if err != nil {
			return err
		}
		return a.simulate(casts, trials)
	case "export":
		if len(args) < 1 {
			return errors.New("export: missing file")
		}
		return a.export(ctx, args[0])
	case "import":
		if len(args) < 1 {
			return errors.New("import: missing file")
		}
		return a.importFile(ctx, args[0])
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cast(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return nil
		}
		a.printCast(a.sess.ResolveCast(ctx))
	}
	fmt.Fprintf(a.out, "coins: %d\n", a.sess.State().Coins)
	return nil
}

func (a *app) printCast(o fishing.Outcome) {
	for _, line := range describeCast(o) {
		fmt.Fprintln(a.out, line)
	}
}

func (a *app) buy(ctx context.Context, id fishing.ItemID) error {
	r, err := a.sess.Purchase(ctx, id)
	switch {
	case errors.Is(err, store.ErrInsufficientFunds), errors.Is(err, store.ErrAlreadyOwned):
		fmt.Fprintln(a.out, err)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintln(a.out, describeReceipt(r))
	return nil
}

func (a *app) catalog() error {
	st := a.sess.State()
	scale := a.sess.Rules().PriceScale
	for _, p := range store.Products {
		owned := st.Inventory.Count(p.ID)
		price := "owned"
		if p.Stackable() || owned == 0 {
			price = strconv.Itoa(store.Price(p, owned, scale))
		}
		fmt.Fprintf(a.out, "%2d  %-22s %-12s %8s  %s\n", p.ID, p.Name, p.Category, price, p.Effect)
	}
	return nil
}

func (a *app) advise() error {
	st := a.sess.State()
	rules := a.sess.Rules()
	fmt.Fprintf(a.out, "expected coins per cast: %.2f\n", rules.ExpectedCoins(st.Inventory))
	for _, adv := range store.Advise(rules, st.Inventory, st.Coins) {
		mark := " "
		if adv.Affordable {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %2d  %-22s %6d coins  +%.3f/cast  pays back in %.0f casts\n",
			mark, adv.Product.ID, adv.Product.Name, adv.Price, adv.Gain, adv.Payback)
	}
	return nil
}

func (a *app) auto(ctx context.Context, d time.Duration) error {
	caster := session.NewAutoCaster(a.sess, a.printCast)
	rl := game.NewReloader(a.loader, a.cfg.Ruleset, a.flags.overrides,
		func(r fishing.Rules) error {
			if err := a.sess.SetRules(r); err != nil {
				return err
			}
			return caster.Reschedule()
		})

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	if err := caster.Start(ctx); err != nil {
		if errors.Is(err, session.ErrAutoCastLocked) {
			fmt.Fprintln(a.out, "Buy the Auto-Clicker first!")
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "auto casting every %s for %s\n", caster.Interval(), d)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return rl.Watch(gctx, a.cfg.ReloadInterval())
	})
	g.Go(func() error {
		<-gctx.Done()
		caster.Stop()
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "coins: %d\n", a.sess.State().Coins)
	return nil
}

func (a *app) simulate(casts, trials int) error {
	st := a.sess.State()
	rng := fishing.DefaultRNG()
	if a.flags.seed != 0 {
		rng = fishing.NewSeededRNG(a.flags.seed)
	}
	rep, err := fishing.RunMonteCarlo(fishing.SimParams{
		Rules:     a.sess.Rules(),
		Inventory: st.Inventory,
		Casts:     casts,
		StartCast: st.CastCount,
	}, trials, rng)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d trials x %d casts\n", rep.Trials, casts)
	fmt.Fprintf(a.out, "hit rate: %.2f%%\n", rep.HitRate*100)
	fmt.Fprintf(a.out, "coins: mean %.1f sd %.1f p50 %.0f p90 %.0f p99 %.0f\n",
		rep.Coins.Mean, rep.Coins.StdDev, rep.Coins.P50, rep.Coins.P90, rep.Coins.P99)
	fmt.Fprintf(a.out, "milestones: %d\n", rep.Milestones)
	for _, t := range fishing.Tiers {
		fmt.Fprintf(a.out, "  %-10s %6.2f%%\n", t, rep.TierFrequency(t)*100)
	}
	return nil
}

func (a *app) export(ctx context.Context, path string) error {
	s, err := a.repo.Export(ctx)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := storage.EncodeSnapshot(fh, s, formatFor(path, a.cfg.ExportFormat)); err != nil {
		fh.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(a.out, "exported %d casts, %d coins, %d items to %s\n", s.CastCount, s.Coins, len(s.Inventory), path)
	return nil
}

func (a *app) importFile(ctx context.Context, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	defer fh.Close()
	s, err := storage.DecodeSnapshot(fh, formatFor(path, a.cfg.ExportFormat))
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if err := a.repo.Import(ctx, s); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintf(a.out, "imported %d casts, %d coins, %d items from %s\n", s.CastCount, s.Coins, len(s.Inventory), path)
	return nil
}

// formatFor trusts a recognised extension and falls back to the configured format.
func formatFor(path, fallback string) storage.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".msgpack", ".mpk", ".mp":
		return storage.FormatFromPath(path)
	}
	return storage.Format(fallback)
}

func intArg(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid count %q", args[i])
	}
	return n, nil
}
