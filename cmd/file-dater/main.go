package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jkoelman/file-dater-go/pkg/apply"
	"github.com/jkoelman/file-dater-go/pkg/batch"
	"github.com/jkoelman/file-dater-go/pkg/scan"
)

const version = "0.1.0"

type options struct {
	verbose bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "file-dater",
		Short:   "Apply dates encoded in filenames to file timestamps",
		Long:    "File Dater reads a calendar date from the start of each filename (2023-04-15, 2023-04, 202304, 2021-2022, ...) and applies it to the file's creation and modification timestamps.",
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("File Dater CLI")
			cmd.Printf("Version: %s\n", version)
			if opts.verbose {
				cmd.Println("Verbose mode: enabled")
			}
			cmd.Println("")
			cmd.Println("Use --help to see available commands and options")
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newApplyCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))

	return rootCmd
}

// jsonRecord is the machine-readable form of one processed file.
type jsonRecord struct {
	Path        string `json:"path"`
	Date        string `json:"date,omitempty"`
	Source      string `json:"source,omitempty"`
	SetCreated  string `json:"set_created,omitempty"`
	SetModified string `json:"set_modified,omitempty"`
	Applied     bool   `json:"applied"`
	Error       string `json:"error,omitempty"`
}

func newApplyCmd(opts *options) *cobra.Command {
	var (
		execute      bool
		jsonOut      bool
		workers      int
		exifFallback bool
		locationName string
		maxDepth     int
		extensions   []string
	)

	applyCmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Apply filename dates to file timestamps",
		Long:  "Apply the date encoded at the start of each filename to the file's creation and modification timestamps. Directories are walked; files with no recognizable date are reported and left untouched. Without --execute this is a dry run.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := time.Local
			if locationName != "" {
				l, err := time.LoadLocation(locationName)
				if err != nil {
					return fmt.Errorf("load location: %w", err)
				}
				loc = l
			}

			batchOpts := batch.Options{Location: loc, Workers: workers}
			if exifFallback {
				batchOpts.Metadata = batch.DefaultMetadata()
			}

			scanOpts := scan.DefaultOptions()
			scanOpts.MaxDepth = maxDepth
			scanOpts.Extensions = extensions

			var items []batch.Item
			var fullPaths []string

			for _, arg := range args {
				root, names, err := expandArg(arg, scanOpts)
				if err != nil {
					return err
				}

				argItems, err := batch.Run(cmd.Context(), os.DirFS(root), names, batchOpts)
				if err != nil {
					return err
				}

				for _, item := range argItems {
					items = append(items, item)
					fullPaths = append(fullPaths, filepath.Join(root, filepath.FromSlash(item.Path)))
				}
			}

			// Per-file rejections are reported, not written; only planned
			// items reach the writer.
			opIndex := make([]int, 0, len(items))
			ops := make([]apply.Operation, 0, len(items))
			for i, item := range items {
				if item.Err != nil {
					continue
				}
				opIndex = append(opIndex, i)
				ops = append(ops, apply.Operation{Path: fullPaths[i], Change: item.Change})
			}

			results := apply.Execute(ops, apply.Options{DryRun: !execute})

			writeErrs := make(map[int]error)
			for n, res := range results {
				if !res.Success {
					writeErrs[opIndex[n]] = res.Error
				}
			}

			dated, failed := 0, 0
			records := make([]jsonRecord, 0, len(items))
			for i, item := range items {
				rec := jsonRecord{Path: fullPaths[i]}

				switch {
				case item.Err != nil:
					rec.Error = item.Err.Error()
					failed++
				case writeErrs[i] != nil:
					rec.Error = writeErrs[i].Error()
					rec.Date = item.Date.Format("2006-01-02")
					rec.Source = string(item.Source)
					failed++
				default:
					rec.Date = item.Date.Format("2006-01-02")
					rec.Source = string(item.Source)
					rec.SetCreated = item.Change.CreatedAt.Format(time.RFC3339)
					if !item.Change.ModifiedAt.IsZero() {
						rec.SetModified = item.Change.ModifiedAt.Format(time.RFC3339)
					}
					rec.Applied = execute
					dated++
				}
				records = append(records, rec)
			}

			if jsonOut {
				out, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(out))
			} else {
				for _, rec := range records {
					cmd.Println(formatRecord(rec))
				}
			}

			if opts.verbose {
				cmd.PrintErrf("%d dated, %d failed\n", dated, failed)
			}

			return nil
		},
	}

	applyCmd.Flags().BoolVar(&execute, "execute", false, "write timestamps (default is a dry run)")
	applyCmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON records")
	applyCmd.Flags().IntVar(&workers, "workers", 1, "number of files processed concurrently")
	applyCmd.Flags().BoolVar(&exifFallback, "exif-fallback", false, "use the embedded EXIF timestamp when the filename has no date")
	applyCmd.Flags().StringVar(&locationName, "location", "", "IANA timezone for resolved dates (default: local)")
	applyCmd.Flags().IntVar(&maxDepth, "max-depth", -1, "maximum recursion depth for directories (0 = no recursion)")
	applyCmd.Flags().StringSliceVar(&extensions, "ext", nil, "restrict directory walks to these extensions")

	return applyCmd
}

func formatRecord(rec jsonRecord) string {
	if rec.Error != "" {
		return fmt.Sprintf("%s: %s", rec.Path, rec.Error)
	}

	attrs := "creation"
	if rec.SetModified != "" {
		attrs = "creation+modification"
	}
	verb := "planned"
	if rec.Applied {
		verb = "applied"
	}
	return fmt.Sprintf("%s: %s (%s) %s %s", rec.Path, rec.Date, rec.Source, attrs, verb)
}

// expandArg turns one CLI argument into a walk root plus relative names for
// the batch driver.
func expandArg(arg string, scanOpts scan.Options) (root string, names []string, err error) {
	info, err := os.Stat(arg)
	if err != nil {
		return "", nil, err
	}

	if !info.IsDir() {
		return filepath.Dir(arg), []string{filepath.Base(arg)}, nil
	}

	records, err := scan.Scan(os.DirFS(arg), ".", scanOpts)
	if err != nil {
		return "", nil, err
	}
	return arg, scan.Paths(records), nil
}

func newScanCmd(opts *options) *cobra.Command {
	var (
		maxDepth   int
		jsonOut    bool
		extensions []string
	)

	scanCmd := &cobra.Command{
		Use:   "scan [directory]",
		Short: "List candidate files under a directory",
		Long:  "Scan a directory and print the files that would be considered by apply (relative to the scan root).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory := args[0]

			scanOpts := scan.DefaultOptions()
			scanOpts.MaxDepth = maxDepth
			scanOpts.Extensions = extensions

			records, err := scan.Scan(os.DirFS(directory), ".", scanOpts)
			if err != nil {
				return err
			}

			if jsonOut {
				out, err := json.MarshalIndent(records, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(out))
			} else {
				for _, record := range records {
					cmd.Println(record.Path)
				}
			}

			if opts.verbose {
				cmd.PrintErrf("found %d files\n", len(records))
			}

			return nil
		},
	}

	scanCmd.Flags().IntVar(&maxDepth, "max-depth", -1, "maximum recursion depth (0 = no recursion)")
	scanCmd.Flags().BoolVar(&jsonOut, "json", false, "emit JSON records")
	scanCmd.Flags().StringSliceVar(&extensions, "ext", nil, "restrict the walk to these extensions")

	return scanCmd
}
