// Package cmd holds the subcommands of the asymp binary.
package cmd

import (
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/asymplib/asymp"
	"github.com/asymplib/asymp/internal/log"
	"github.com/asymplib/asymp/symbolic"
	"github.com/spf13/viper"
)

type ringFlags struct {
	growth    string
	dependent string
	lower     string
	upper     string
	prec      int
}

func initConfig() {
	viper.SetEnvPrefix("ASYMP")
	viper.AutomaticEnv()
	viper.SetDefault("prec", asymp.DefaultPrecision)
	viper.SetDefault("log_level", "warn")

	switch strings.ToLower(viper.GetString("log_level")) {
	case "debug":
		log.SetLevel(slog.LevelDebug)
	case "info":
		log.SetLevel(slog.LevelInfo)
	case "error":
		log.SetLevel(slog.LevelError)
	default:
		log.SetLevel(slog.LevelWarn)
	}
}

// buildRing constructs the ring described by the flags, together with
// the substitution values mapping every growth variable to its
// monomial expansion.
func (f ringFlags) buildRing() (*asymp.Ring, map[string]any, error) {
	initConfig()
	prec := f.prec
	if prec == 0 {
		prec = viper.GetInt("prec")
	}

	values := map[string]any{}
	if f.dependent == "" {
		ring, err := asymp.NewRing(f.growth, asymp.WithDefaultPrec(prec))
		if err != nil {
			return nil, nil, err
		}
		for _, v := range ring.Variables() {
			values[v] = ring.Monomial(v, big.NewRat(1, 1))
		}
		return ring, values, nil
	}

	lower, err := parseRat(f.lower)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid lower power %q: %w", f.lower, err)
	}
	upper, err := parseRat(f.upper)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid upper power %q: %w", f.upper, err)
	}
	ring, primary, dep, err := asymp.NewRingWithDependentVariable(
		f.growth, f.dependent, lower, upper, asymp.WithDefaultPrec(prec),
	)
	if err != nil {
		return nil, nil, err
	}
	values[ring.Variables()[0]] = primary
	for _, v := range ring.Variables()[1:] {
		values[v] = ring.Monomial(v, big.NewRat(1, 1))
	}
	values[f.dependent] = dep
	return ring, values, nil
}

func parseRat(s string) (*big.Rat, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("not a rational number")
	}
	return r, nil
}

func evaluateArg(arg string, ring *asymp.Ring, values map[string]any) (*asymp.Expansion, error) {
	expr, err := symbolic.Parse(arg)
	if err != nil {
		return nil, err
	}
	return ring.Evaluate(expr, values)
}
