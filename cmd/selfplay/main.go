package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	logger := NewLogger()
	defer logger.Sync()

	app := &cli.App{
		Name:  "selfplay",
		Usage: "play random legal games and print the final positions",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "size", Value: 9, Usage: "board size"},
			&cli.IntFlag{Name: "games", Value: 4, Usage: "number of games played concurrently"},
			&cli.IntFlag{Name: "moves", Value: 120, Usage: "maximum plies per game"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "seed of the first game"},
			&cli.StringFlag{Name: "pdf", Usage: "write the final diagrams to this file"},
		},
		Action: func(c *cli.Context) error {
			cfg := playoutConfig{
				Size:     c.Int("size"),
				Games:    c.Int("games"),
				MaxMoves: c.Int("moves"),
				Seed:     c.Int64("seed"),
			}
			if cfg.Games < 1 || cfg.MaxMoves < 0 {
				return cli.Exit("games must be positive and moves non-negative", 2)
			}

			results, err := runPlayouts(context.Background(), cfg)
			if err != nil {
				return err
			}

			for _, res := range results {
				fmt.Fprintf(c.App.Writer, "%s\n%s\n", res.Title(), res.Final.String())
			}

			if out := c.String("pdf"); out != "" {
				if err = generatePDF(results, out); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
				logger.Infof("diagrams written to %s", out)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("selfplay failed", zap.Error(err))
		os.Exit(1)
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
