package cmd

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/scenarigo/smartclone"
	"github.com/scenarigo/smartclone/codec"
	"github.com/scenarigo/smartclone/errors"
)

func init() {
	diffCmd.Flags().BoolVar(&colored, "color", false, "force colored output on or off")
	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff file...",
	Short: "show how cloning changes a YAML object graph",
	Long: `Prints a line diff between each document of the files and its clone.

Inherited fields copied onto the clone and shared references cloned apart
show up as changed lines.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          diffFile,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func diffFile(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd, flagConfig(cmd))
	if err != nil {
		return err
	}
	cloner := smartclone.New(e.realm)
	for _, path := range args {
		if err := diffDocuments(cmd, e, cloner, path); err != nil {
			return err
		}
	}
	return nil
}

func diffDocuments(cmd *cobra.Command, e *env, cloner *smartclone.Cloner, path string) error {
	docs, err := decodeFile(cmd, e, path)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for i, doc := range docs {
		before, err := codec.Encode(e.realm, doc)
		if err != nil {
			return errors.Wrapf(err, "%s: document %d", path, i)
		}
		after, err := codec.Encode(e.realm, cloner.Clone(doc))
		if err != nil {
			return errors.Wrapf(err, "%s: document %d", path, i)
		}
		fmt.Fprint(w, e.color.Cyan().Sprintf("--- %s#%d\n", path, i))
		fmt.Fprint(w, e.color.Cyan().Sprint("+++ clone\n"))
		for _, line := range lineDiff(string(before), string(after)) {
			switch line[0] {
			case '-':
				fmt.Fprint(w, e.color.Red().Sprint(line))
			case '+':
				fmt.Fprint(w, e.color.Green().Sprint(line))
			default:
				fmt.Fprint(w, line)
			}
		}
	}
	return nil
}

// lineDiff returns the lines of a and b prefixed with "-", "+" or " ".
func lineDiff(a, b string) []string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var result []string
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			result = append(result, prefix+line)
		}
	}
	return result
}
