package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/passform/passform-go/internal/passgen"
)

var errInvalidCount = errors.New("count must be at least 1")

type generateOptions struct {
	length  string
	classes passgen.ClassSet
	count   int
	seed    uint64
}

func newGenerateCmd() *cobra.Command {
	opts := generateOptions{classes: passgen.DefaultClassSet()}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print one or more generated passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src passgen.Source = passgen.CryptoSource{}
			if cmd.Flags().Changed("seed") {
				src = passgen.NewSeededSource(opts.seed)
			}
			return runGenerate(cmd, opts, passgen.NewGenerator(src))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.length, "length", "l", "12", "password length (4-16)")
	f.BoolVar(&opts.classes.Lowercase, "lowercase", opts.classes.Lowercase, "include lowercase letters")
	f.BoolVar(&opts.classes.Uppercase, "uppercase", opts.classes.Uppercase, "include uppercase letters")
	f.BoolVarP(&opts.classes.Numbers, "numbers", "n", opts.classes.Numbers, "include digits")
	f.BoolVarP(&opts.classes.Symbols, "symbols", "s", opts.classes.Symbols, "include symbols")
	f.IntVarP(&opts.count, "count", "c", 1, "number of passwords to generate")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for reproducible output")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts generateOptions, gen *passgen.Generator) error {
	if opts.count < 1 {
		return errInvalidCount
	}
	n, err := passgen.ValidateLength(opts.length)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i := 0; i < opts.count; i++ {
		password, err := gen.Generate(n, opts.classes)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, password)
	}
	return nil
}
