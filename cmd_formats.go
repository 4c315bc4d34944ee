package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/OLUWAMUYIWA/parsec/formats"
	"github.com/OLUWAMUYIWA/parsec/parsec"
)

func (d *driver) bencodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bencode [file]",
		Short: "Decode a bencoded file (stdin when omitted) and print it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			v, rem, ok := parsec.Parse(traced(d, "bencode", formats.BencValue()), string(data))
			if !ok {
				return fmt.Errorf("bencode: %w", parsec.ErrNoMatch)
			}
			if !rem.Empty() {
				return fmt.Errorf("bencode: %d bytes at offset %d: %w", rem.Len(), rem.Offset(), parsec.ErrTrailingInput)
			}
			d.log.Infof("decoded %d bytes of bencode", len(data))
			return writeValue(cmd.OutOrStdout(), d.format, v)
		},
	}
	cmd.Flags().StringVarP(&d.format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}

func (d *driver) rexprCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rexpr [file]",
		Short: "Parse an rexpr file (stdin when omitted) and pretty print it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readSource(cmd, args)
			if err != nil {
				return err
			}
			r, err := parsec.ParseAll(traced(d, "rexpr", formats.RexprParser()), string(data))
			if err != nil {
				return fmt.Errorf("rexpr: %w", err)
			}
			d.log.Infof("parsed rexpr with %d top level entries", len(r.Entries))
			return r.Print(cmd.OutOrStdout())
		},
	}
}

func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
