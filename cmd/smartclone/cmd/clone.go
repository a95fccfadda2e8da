package cmd

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoncoen/query-go"
	"golang.org/x/sync/errgroup"

	"github.com/scenarigo/smartclone"
	"github.com/scenarigo/smartclone/cmd/smartclone/cmd/config"
	"github.com/scenarigo/smartclone/codec"
	"github.com/scenarigo/smartclone/errors"
	"github.com/scenarigo/smartclone/object"
)

const stdin = "-"

var (
	queryPath  string
	ignoreCase bool
	parallel   int
	colored    bool
)

func init() {
	cloneCmd.Flags().StringVarP(&queryPath, "query", "q", "", "clone the value at the query path of each document instead of the whole document")
	cloneCmd.Flags().BoolVar(&ignoreCase, "ignore-case", false, "match query keys case-insensitively")
	cloneCmd.Flags().IntVarP(&parallel, "parallel", "", 0, "specify the number of files to process in parallel (the default value is the number of logical CPUs usable by the current process)")
	cloneCmd.Flags().BoolVar(&colored, "color", false, "force colored output on or off")
	rootCmd.AddCommand(cloneCmd)
}

var cloneCmd = &cobra.Command{
	Use:   "clone [file...]",
	Short: "clone YAML object graphs",
	Long: `Decodes each document of the files, clones it and prints the clone as YAML.

Anchors and aliases express shared and cyclic references, and the "$proto" key
sets the parent of a mapping. Reads the standard input when no file is given.`,
	RunE:          cloneFiles,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func flagConfig(cmd *cobra.Command) *config.Config {
	flags := &config.Config{Parallel: parallel}
	if cmd.Flags().Changed("color") {
		flags.Color = &colored
	}
	return flags
}

func cloneFiles(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd, flagConfig(cmd))
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{stdin}
	}
	cloner := smartclone.New(e.realm)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outputs := make([][]byte, len(args))
	errs := make([]error, len(args))
	var eg errgroup.Group
	eg.SetLimit(e.cfg.Parallel)
	for i, path := range args {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			outputs[i], errs[i] = cloneFile(cmd, e, cloner, path)
			return nil
		})
	}
	_ = eg.Wait()

	var out bytes.Buffer
	for _, b := range outputs {
		if b == nil {
			continue
		}
		if out.Len() > 0 {
			out.WriteString("---\n")
		}
		out.Write(b)
	}
	if _, err := cmd.OutOrStdout().Write(e.color.HighlightYAML(out.Bytes())); err != nil {
		return err
	}
	return errors.Errors(errs...)
}

func cloneFile(cmd *cobra.Command, e *env, cloner *smartclone.Cloner, path string) ([]byte, error) {
	docs, err := decodeFile(cmd, e, path)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	for i, doc := range docs {
		if queryPath != "" {
			var opts []query.Option
			if ignoreCase {
				opts = append(opts, query.CaseInsensitive())
			}
			doc, err = object.Lookup(doc, queryPath, opts...)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: document %d", path, i)
			}
		}
		b, err := codec.Encode(e.realm, cloner.Clone(doc))
		if err != nil {
			return nil, errors.Wrapf(err, "%s: document %d", path, i)
		}
		if i > 0 {
			out.WriteString("---\n")
		}
		out.Write(b)
	}
	e.logger.Debug("cloned", "file", path, "documents", len(docs))
	return out.Bytes(), nil
}

func decodeFile(cmd *cobra.Command, e *env, path string) ([]object.Value, error) {
	var (
		b   []byte
		err error
	)
	if path == stdin {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	docs, err := codec.Decode(e.realm, b)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return docs, nil
}
