// Command blstate drives the BLS setup/sign/verify/steps pipeline from
// the command line, logging setup and failures with zerolog and loading
// curve parameters from an optional TOML config file.
package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/vybium/bls-tate/internal/config"
	"github.com/vybium/bls-tate/pkg/blscore/bls"
	"github.com/vybium/bls-tate/pkg/blscore/curve"
	"github.com/vybium/bls-tate/pkg/blscore/render"
)

func main() {
	app := &cli.App{
		Name:  "blstate",
		Usage: "walk through a pedagogical BLS signature scheme over the reduced Tate pairing",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a TOML config file"},
			&cli.StringFlag{Name: "log-level", Value: "", Usage: "override the configured log level"},
		},
		Commands: []*cli.Command{
			stepsCommand(),
			signCommand(),
			verifyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "blstate:", err)
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		l = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(l).
		With().
		Timestamp().
		Logger()
}

func loadContext(c *cli.Context) (*bls.Context, zerolog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	level := cfg.LogLevel
	if override := c.String("log-level"); override != "" {
		level = override
	}
	log := newLogger(level)

	p, err := cfg.PrimeModulus()
	if err != nil {
		return nil, log, err
	}
	a, err := cfg.PrivateScalar()
	if err != nil {
		return nil, log, err
	}

	log.Debug().Str("p", p.String()).Int64("A", cfg.A).Int64("B", cfg.B).Msg("running setup pipeline")
	ctx, err := bls.Setup(bls.Params{P: p, A: cfg.A, B: cfg.B, PrivateKey: a})
	if err != nil {
		log.Error().Err(err).Msg("setup failed")
		return nil, log, err
	}
	log.Info().
		Str("N", ctx.GroupOrder().String()).
		Str("r", ctx.R().String()).
		Int("k", ctx.EmbeddingDegree()).
		Msg("setup complete")
	return ctx, log, nil
}

func stepsCommand() *cli.Command {
	return &cli.Command{
		Name:      "steps",
		Usage:     "run setup, sign and verify a message, and print every intermediate value",
		ArgsUsage: "<message>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one message argument", 1)
			}
			ctx, log, err := loadContext(c)
			if err != nil {
				return err
			}
			s, err := ctx.Steps(c.Args().First())
			if err != nil {
				log.Error().Err(err).Msg("steps failed")
				return err
			}
			fmt.Printf("N = |E(F_p)|    = %s\n", s.GroupOrder)
			fmt.Printf("r               = %s\n", s.R)
			fmt.Printf("cofactor (N/r)  = %s\n", s.Cofactor)
			fmt.Printf("k               = %d\n", s.EmbeddingDegree)
			fmt.Printf("irreducible f   = %s\n", s.IrreduciblePoly)
			fmt.Printf("H(m)            = %s\n", s.HashPoint)
			fmt.Printf("signature       = %s\n", s.Signature)
			fmt.Printf("Q               = %s\n", s.Q)
			fmt.Printf("pairing lhs     = %s\n", s.PairingLHS)
			fmt.Printf("pairing rhs     = %s\n", s.PairingRHS)
			fmt.Printf("verified        = %t\n", s.Verified)
			fmt.Printf("%s\n", s.DisplayMessage)
			return nil
		},
	}
}

func signCommand() *cli.Command {
	return &cli.Command{
		Name:      "sign",
		Usage:     "sign a message",
		ArgsUsage: "<message>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("expected exactly one message argument", 1)
			}
			ctx, log, err := loadContext(c)
			if err != nil {
				return err
			}
			sig, err := ctx.Sign(c.Args().First())
			if err != nil {
				log.Error().Err(err).Msg("signing failed")
				return err
			}
			fmt.Println(render.Point(sig.Point))
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "verify a message against a signature point (x, y)",
		ArgsUsage: "<message> <x> <y>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				return cli.Exit("expected <message> <x> <y>", 1)
			}
			ctx, log, err := loadContext(c)
			if err != nil {
				return err
			}

			x, ok := new(big.Int).SetString(c.Args().Get(1), 10)
			if !ok {
				return cli.Exit("invalid x coordinate", 1)
			}
			y, ok := new(big.Int).SetString(c.Args().Get(2), 10)
			if !ok {
				return cli.Exit("invalid y coordinate", 1)
			}

			f := ctx.Field()
			sig := bls.Signature{Point: curve.NewPoint(ctx.Curve(), f.Element(x), f.Element(y))}
			ok2, err := ctx.Verify(c.Args().First(), sig)
			if err != nil {
				log.Error().Err(err).Msg("verification failed")
				return err
			}
			fmt.Println(ok2)
			return nil
		},
	}
}
