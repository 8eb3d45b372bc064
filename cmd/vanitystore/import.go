package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/vanitystore/pkg/addrstore"
	"github.com/dmitrymomot/vanitystore/pkg/logger"
)

func newImportCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Save every record from generator output",
		Long: `Read generator output from a file, or stdin when no file or "-" is given,
and save one record per line.

Each line holds address, pattern and an optional private key separated by
commas or tabs. Blank lines and lines starting with # are ignored. Lines with
a missing address or pattern, or with extra fields, are skipped and reported;
any other failure stops the import.`,
		Example: `  vanity-gen --prefix 1Boat | vanitystore import
  vanitystore import found.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.prepare(cmd); err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			return rootOpts.withGateway(cmd.Context(), func(gw *addrstore.Gateway) error {
				res, err := importRecords(cmd.Context(), rootOpts.log, gw, in)
				fmt.Fprintf(cmd.OutOrStdout(), "saved %d, skipped %d\n", res.saved, res.skipped)
				return err
			})
		},
	}
}

type importResult struct {
	saved   int
	skipped int
}

func importRecords(ctx context.Context, log *slog.Logger, gw *addrstore.Gateway, in io.Reader) (importResult, error) {
	var res importResult

	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		rec, ok, err := parseLine(sc.Text())
		if !ok {
			continue
		}
		if err == nil {
			err = gw.SaveRecord(ctx, rec)
		}
		switch {
		case err == nil:
			res.saved++
		case errors.Is(err, addrstore.ErrInvalidArgument):
			res.skipped++
			log.WarnContext(ctx, "skipping line", logger.Count("line", lineNo), logger.Error(err))
		default:
			return res, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("reading input: %w", err)
	}
	log.InfoContext(ctx, "import finished", logger.Count("saved", res.saved), logger.Count("skipped", res.skipped))
	return res, nil
}

// maxLineFields is address, pattern and private key.
const maxLineFields = 3

// parseLine splits "address,pattern[,private_key]". A line containing a tab
// is split on tabs instead of commas.
// ok is false for blank and comment lines. A line with more than three fields
// returns an error wrapping addrstore.ErrInvalidArgument. CreatedAt is left
// for SaveRecord to stamp.
func parseLine(raw string) (addrstore.Record, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return addrstore.Record{}, false, nil
	}
	sep := ","
	if strings.Contains(raw, "\t") {
		sep = "\t"
	}
	fields := strings.Split(raw, sep)
	if len(fields) > maxLineFields {
		return addrstore.Record{}, true, errors.Join(addrstore.ErrInvalidArgument,
			fmt.Errorf("expected at most %d fields, got %d", maxLineFields, len(fields)))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	fields = append(fields, make([]string, maxLineFields-len(fields))...)
	return addrstore.Record{Address: fields[0], Pattern: fields[1], PrivateKey: fields[2]}, true, nil
}
