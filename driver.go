package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/OLUWAMUYIWA/parsec/parsec"
)

// driver holds the state shared by every subcommand. Flags are bound to its
// fields, the logger is set up once the flags are parsed.
type driver struct {
	log     commonlog.Logger
	verbose int
	trace   bool
	format  string
	root    *cobra.Command
}

func newDriver() *driver {
	d := &driver{}
	d.root = d.rootCmd()
	return d
}

func (d *driver) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "parsec",
		Short:         "Run the parsec parsers and formats from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if d.trace && d.verbose < 2 {
				d.verbose = 2
			}
			commonlog.Configure(d.verbose, nil)
			d.log = commonlog.GetLogger("parsec")
		},
	}

	cmd.PersistentFlags().CountVarP(&d.verbose, "verbose", "v", "increase log verbosity (repeat for more)")
	cmd.PersistentFlags().BoolVar(&d.trace, "trace", false, "log every call of the top level parser")

	cmd.AddCommand(d.intCmd())
	cmd.AddCommand(d.stringCmd())
	cmd.AddCommand(d.wsCmd())
	cmd.AddCommand(d.bencodeCmd())
	cmd.AddCommand(d.rexprCmd())

	return cmd
}

// Drive runs the command line in args and reports any error on stderr.
func (d *driver) Drive(args []string) error {
	d.root.SetArgs(args)
	if err := d.root.Execute(); err != nil {
		fmt.Fprintf(d.root.ErrOrStderr(), "parsec: %s\n", err)
		return err
	}
	return nil
}

// traced wraps p with parsec.Trace when --trace is set.
func traced[T any](d *driver, name string, p parsec.Parser[T]) parsec.Parser[T] {
	if !d.trace {
		return p
	}
	return parsec.Trace(d.log, name, p)
}

// readSource returns the contents of the file named in args, or of stdin when
// there is none.
func readSource(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
