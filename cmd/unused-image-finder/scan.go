package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"unused-image-finder/internal/folder"
	"unused-image-finder/internal/inspect"
	"unused-image-finder/internal/matcher"
	"unused-image-finder/internal/references"
	"unused-image-finder/internal/report"
)

// readClipboard is swapped in tests
var readClipboard = clipboard.ReadAll

type scanOptions struct {
	folder       string
	refs         string
	useClipboard bool
	prefix       string
	prefixSource string
	skipHidden   bool
	asJSON       bool
	details      bool
	failOnUnused bool
	explain      bool
}

func newScanCommand(state *cliState) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Print the unused images of a folder without opening a window",
		Example: `  unused-image-finder scan --folder Book/Graphics --refs graphics.txt
  pbpaste | unused-image-finder scan --folder Book/Graphics --refs -
  unused-image-finder scan --folder Book/Graphics --clipboard --prefix-source folder`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("prefix") {
				return runScan(cmd, state, opts, &opts.prefix)
			}
			return runScan(cmd, state, opts, nil)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.folder, "folder", "f", "", "images folder to scan (required)")
	f.StringVarP(&opts.refs, "refs", "r", "", "file with the graphic reference list, - for stdin")
	f.BoolVar(&opts.useClipboard, "clipboard", false, "read the reference list from the system clipboard")
	f.StringVarP(&opts.prefix, "prefix", "p", "", "project folder prefix expected in reference lines (overrides --prefix-source)")
	f.StringVar(&opts.prefixSource, "prefix-source", "", "derive the prefix from the \"parent\" directory or the image \"folder\" itself")
	f.BoolVar(&opts.skipHidden, "skip-hidden", false, "ignore dot-files in the folder")
	f.BoolVar(&opts.asJSON, "json", false, "print a JSON document")
	f.BoolVar(&opts.details, "details", false, "print size and pixel dimensions of each unused image")
	f.BoolVar(&opts.failOnUnused, "fail-on-unused", false, "exit with status 1 when any image is unused")
	f.BoolVar(&opts.explain, "explain", false, "print the prefix each reference line must start with")
	_ = cmd.MarkFlagRequired("folder")
	cmd.MarkFlagsMutuallyExclusive("refs", "clipboard")
	cmd.MarkFlagsMutuallyExclusive("json", "details")

	return cmd
}

func runScan(cmd *cobra.Command, state *cliState, opts *scanOptions, prefixOverride *string) error {
	listOpts := state.cfg.ListOptions()
	if opts.prefixSource != "" {
		src, err := folder.ParsePrefixSource(opts.prefixSource)
		if err != nil {
			return err
		}
		listOpts.PrefixSource = src
	}
	if opts.skipHidden {
		listOpts.SkipHidden = true
	}

	listing, err := folder.List(opts.folder, listOpts)
	if err != nil {
		return err
	}
	if prefixOverride != nil {
		listing.ProjectFolder = *prefixOverride
	}

	lines, err := readReferences(cmd, opts)
	if err != nil {
		return err
	}

	result := matcher.Match(listing.Images, lines, listing.ProjectFolder)
	state.log.Info("scan", "unused images computed", map[string]interface{}{
		"folder":          listing.Path,
		"project_folder":  listing.ProjectFolder,
		"reference_lines": len(lines),
		"images":          result.Total,
		"unused":          len(result.Unused),
	})

	out := cmd.OutOrStdout()
	if opts.explain {
		fmt.Fprintf(out, "# reference lines must start with %q\n", matcher.ReferencePrefix(listing.ProjectFolder, "<image>"))
	}

	switch {
	case opts.asJSON:
		err = report.WriteJSON(out, listing, result)
	case opts.details && !result.Empty():
		err = writeDetails(out, inspect.NewInspector(state.log), listing.Path, result.Unused)
	default:
		text := report.Text(result)
		if result.Empty() {
			text += "\n"
		}
		_, err = io.WriteString(out, text)
	}
	if err != nil {
		return err
	}

	if opts.failOnUnused && !result.Empty() {
		return errUnusedFound
	}
	return nil
}

func readReferences(cmd *cobra.Command, opts *scanOptions) ([]string, error) {
	switch {
	case opts.useClipboard:
		text, err := readClipboard()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return references.SplitLines(text), nil
	case opts.refs == "-":
		return references.Read(cmd.InOrStdin())
	case opts.refs != "":
		f, err := os.Open(opts.refs)
		if err != nil {
			return nil, fmt.Errorf("failed to open reference list: %w", err)
		}
		defer f.Close()
		return references.Read(f)
	default:
		// no list given: every image is unused
		return nil, nil
	}
}

func writeDetails(w io.Writer, in *inspect.Inspector, dir string, names []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tDIMENSIONS")
	for _, name := range names {
		d, err := in.Inspect(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(tw, "%s\t-\t-\n", name)
				continue
			}
			return err
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", name, d.Size, d.Dimensions())
	}
	return tw.Flush()
}
