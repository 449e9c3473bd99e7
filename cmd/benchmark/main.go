package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/watchable/watch"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	renderKey  = "render"
	profileKey = "profile"
)

var (
	ww = []int{1, 10, 100, 1_000}
	hh = []int{1, 10, 100, 1_000}
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure synchronous propagation latency through watch graphs",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  itersKey,
				Usage: "Source updates timed per graph shape",
				Value: 100,
			},
			&cli.BoolFlag{
				Name:  renderKey,
				Usage: "Print result tables",
				Value: true,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
				Value: "default.pgo",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "creating profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return errors.Wrap(err, "starting profile")
		}
		defer pprof.StopCPUProfile()
	}

	iters := int(cmd.Uint(itersKey))
	shouldRender := cmd.Bool(renderKey)

	logrus.Info("warming up")
	if err := benchmarkChains(iters, false); err != nil {
		return err
	}
	if err := benchmarkChains(iters, shouldRender); err != nil {
		return err
	}
	return benchmarkFanIn(iters, shouldRender)
}

func addOne(v int) int {
	return v + 1
}

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetTitle(title)
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})
	return tbl
}

func appendCalc(tbl table.Writer, name string, tach *tachymeter.Tachymeter) {
	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{
			name,
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		},
	})
}

// benchmarkChains builds w independent chains of h Map nodes hanging off
// one source, each ending in an effect, and times source updates.
func benchmarkChains(iters int, shouldRender bool) error {
	tbl := newTable("watch: Map chains")

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			src := watch.NewValue(1)
			var nodes []*watch.Derived[int]
			effects := 0
			for i := 0; i < w; i++ {
				var last watch.Source[int] = src
				for j := 0; j < h; j++ {
					next, err := watch.Map(last, addOne)
					if err != nil {
						return errors.Wrapf(err, "building chain %d", i)
					}
					nodes = append(nodes, next)
					last = next
				}
				if _, err := watch.Effect[int](last, func(int) { effects++ }); err != nil {
					return err
				}
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Value() + 1)
				tach.AddTime(time.Since(start))
			}
			if want := w * (iters + 1); effects != want {
				return errors.Errorf("%dx%d: effects ran %d times, want %d", w, h, effects, want)
			}

			for _, n := range nodes {
				n.Dispose()
			}
			appendCalc(tbl, fmt.Sprintf("propagate: %d * %d", w, h), tach)
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}

// benchmarkFanIn times updates to one of w sources feeding a CombineAll.
func benchmarkFanIn(iters int, shouldRender bool) error {
	tbl := newTable("watch: CombineAll fan-in")

	for _, w := range ww {
		tach := tachymeter.New(&tachymeter.Config{Size: iters})

		values := make([]*watch.Value[int], w)
		sources := make([]watch.Source[int], w)
		for i := range values {
			values[i] = watch.NewValue(i)
			sources[i] = values[i]
		}
		total, err := watch.CombineAll(sources, func(vals []int) int {
			sum := 0
			for _, v := range vals {
				sum += v
			}
			return sum
		})
		if err != nil {
			return errors.Wrap(err, "building fan-in")
		}

		for i := 0; i < iters; i++ {
			v := values[i%w]
			start := time.Now()
			v.Set(v.Value() + 1)
			tach.AddTime(time.Since(start))
		}
		if want := w*(w-1)/2 + iters; total.Value() != want {
			return errors.Errorf("fan-in %d: total %d, want %d", w, total.Value(), want)
		}
		total.Dispose()

		appendCalc(tbl, fmt.Sprintf("fan-in: %d", w), tach)
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}
