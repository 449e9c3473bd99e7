package main

import (
	"context"
	"go/format"
	"os"
	"time"

	"github.com/delaneyj/watchable/cmd/codegen/templates"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const (
	maxArityKey = "count"
	outKey      = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the CombineN family for package watch",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  maxArityKey,
				Usage: "Largest number of sources to generate a combiner for",
				Value: templates.DefaultArity,
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "File to write",
				Value: "watch/combine_gen.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	logrus.Info("Codegen for watch started")
	defer func() {
		logrus.Infof("Codegen for watch finished in %v", time.Since(start))
	}()

	maxArity := int(cmd.Uint(maxArityKey))
	if maxArity < templates.MinArity {
		return errors.Errorf("--%s must be at least %d, got %d", maxArityKey, templates.MinArity, maxArity)
	}
	out := cmd.String(outKey)
	logrus.WithFields(logrus.Fields{"arity": maxArity, "out": out}).Info("generating combiners")

	contents, err := format.Source([]byte(templates.CombineGen(maxArity)))
	if err != nil {
		return errors.Wrap(err, "formatting generated code")
	}
	if err := os.WriteFile(out, contents, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}
	return nil
}
