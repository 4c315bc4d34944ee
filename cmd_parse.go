package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OLUWAMUYIWA/parsec/parsec"
)

func (d *driver) intCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "int <text>",
		Short: "Parse an unsigned integer at the start of text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefix(d, cmd, "int", parsec.UnsignedInt(), args[0], func(v int) string {
				return fmt.Sprint(v)
			})
		},
	}
}

func (d *driver) stringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "string <text>",
		Short: "Parse a double quoted string at the start of text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefix(d, cmd, "string", parsec.QuotedString(), args[0], func(v string) string {
				return fmt.Sprintf("%q", v)
			})
		},
	}
}

func (d *driver) wsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ws <text>",
		Short: "Skip leading whitespace and print what is left",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefix(d, cmd, "ws", parsec.SkipWhitespace(), args[0], func(struct{}) string {
				return "-"
			})
		},
	}
}

// runPrefix runs p on text and prints the value and the unconsumed rest,
// one per line.
func runPrefix[T any](d *driver, cmd *cobra.Command, name string, p parsec.Parser[T], text string, show func(T) string) error {
	v, rem, ok := parsec.Parse(traced(d, name, p), text)
	if !ok {
		return fmt.Errorf("%s %q: %w", name, text, parsec.ErrNoMatch)
	}
	d.log.Infof("%s consumed %d of %d bytes", name, len(text)-rem.Len(), len(text))
	fmt.Fprintf(cmd.OutOrStdout(), "value: %s\nrest: %q\n", show(v), rem.String())
	return nil
}
