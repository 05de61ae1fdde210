// Command pagestamp is the batch CLI: analyze existing headers/footers,
// stamp new ones, merge, unlock and number PDF files.
//
// Usage:
//
//	pagestamp analyze [-mode combined] [-max-pages 10] [-json out.json] input.pdf
//	pagestamp process [-header-mode filename] [-header text] [-footer text] [-out dir] inputs...
//	pagestamp merge [-out merged.pdf] [-page-numbers] inputs...
//	pagestamp unlock [-password pw] [-out file.pdf] input.pdf
//	pagestamp pagenum [-start 1] [-template "{page} / {total}"] [-out file.pdf] input.pdf
//
// Defaults for process come from the settings file under ~/.pagestamp.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pagestamp/pagestamp/analyze"
	"github.com/pagestamp/pagestamp/batch"
	"github.com/pagestamp/pagestamp/config"
	"github.com/pagestamp/pagestamp/merge"
	"github.com/pagestamp/pagestamp/namer"
	"github.com/pagestamp/pagestamp/overlay"
	"github.com/pagestamp/pagestamp/unlock"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(log)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(os.Args[2:])
	case "process":
		err = runProcess(os.Args[2:], log)
	case "merge":
		err = runMerge(os.Args[2:], log)
	case "unlock":
		err = runUnlock(os.Args[2:])
	case "pagenum":
		err = runPageNum(os.Args[2:])
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: pagestamp <command> [flags] <files...>

commands:
  analyze   detect existing headers and footers
  process   stamp header/footer text onto files or folders
  merge     combine multiple PDFs into one
  unlock    remove encryption and restrictions
  pagenum   stamp running page numbers

run "pagestamp <command> -h" for command flags`)
}

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	mode := fs.String("mode", "combined", "detection mode: combined, structured or heuristic")
	maxPages := fs.Int("max-pages", 10, "how many pages to scan")
	jsonOut := fs.String("json", "", "write the JSON report to a file instead of stdout")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("analyze wants exactly one input file")
	}

	var m analyze.Mode
	switch *mode {
	case "combined":
		m = analyze.Combined
	case "structured":
		m = analyze.Structured
	case "heuristic":
		m = analyze.Heuristic
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}

	cfg := analyze.DefaultConfig()
	if *maxPages > 0 {
		cfg.MaxPages = *maxPages
	}

	report := analyze.NewAnalyzerWithConfig(cfg).Analyze(fs.Arg(0), m)

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if *jsonOut != "" {
		return os.WriteFile(*jsonOut, append(b, '\n'), 0o644)
	}
	fmt.Println(string(b))
	fmt.Fprintln(os.Stderr, report.Summary())
	return nil
}

func runProcess(args []string, log *slog.Logger) error {
	settings, err := config.Load()
	if err != nil {
		log.Warn("settings not loaded, using defaults", slog.String("error", err.Error()))
	}

	fs := flag.NewFlagSet("process", flag.ExitOnError)
	header := fs.String("header", "", "custom header text (with -header-mode custom)")
	footer := fs.String("footer", "", "footer text, {page} and {total} expand per page")
	headerMode := fs.String("header-mode", settings.String("header_mode"), "filename, auto_number or custom")
	outDir := fs.String("out", settings.String("output_dir"), "output directory")
	suffix := fs.String("suffix", namer.DefaultSuffix, "suffix for generated output names")
	normalize := fs.Bool("normalize-a4", settings.Bool("normalize_a4"), "rescale pages onto A4 before stamping")
	structured := fs.Bool("structured", false, "prefer Artifact-tagged stamping for ASCII text")
	fontFile := fs.String("font", "", "TTF file to embed for non-Latin text")
	numPrefix := fs.String("number-prefix", settings.String("number_prefix"), "auto_number prefix")
	numStart := fs.Int("number-start", settings.Int("number_start"), "auto_number start")
	numStep := fs.Int("number-step", settings.Int("number_step"), "auto_number step")
	numSuffix := fs.String("number-suffix", settings.String("number_suffix"), "auto_number suffix")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("process wants input files or folders")
	}

	items := batch.ImportFiles(fs.Args(), log)
	if len(items) == 0 {
		return fmt.Errorf("no readable PDF files found")
	}

	batch.ApplyHeaderMode(items, batch.HeaderMode(*headerMode), batch.Numbering{
		Prefix: *numPrefix,
		Start:  *numStart,
		Step:   *numStep,
		Suffix: *numSuffix,
	})
	for i := range items {
		if *headerMode == string(batch.HeaderModeCustom) {
			items[i].HeaderText = *header
		}
		items[i].FooterText = *footer
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	p := batch.NewProcessor(log, nil)
	results := p.Run(items, batch.Options{
		OutputDir:  *outDir,
		Suffix:     *suffix,
		Structured: *structured,
		Overlay: overlay.Options{
			NormalizeA4: *normalize,
			FontFile:    *fontFile,
		},
		OnProgress: func(i, n int, name string) {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", i, n, name)
		},
	})

	failed := 0
	for _, r := range results {
		if !r.Ok() {
			failed++
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", r.Input, r.Err)
		}
	}
	fmt.Printf("processed %d file(s), %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

func runMerge(args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	out := fs.String("out", "", "merged output path (default: timestamped name next to the first input)")
	pageNumbers := fs.Bool("page-numbers", false, "stamp page numbers onto the merged file")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("merge wants at least two input files")
	}

	res, err := merge.NewMerger(log).Merge(fs.Args(), merge.Options{
		Output:         *out,
		AddPageNumbers: *pageNumbers,
	})
	if err != nil {
		return err
	}
	for _, s := range res.Skipped {
		fmt.Fprintf(os.Stderr, "skipped: %s: %v\n", s.Path, s.Err)
	}
	fmt.Printf("merged %d file(s) into %s\n", len(res.Merged), res.Output)
	return nil
}

func runUnlock(args []string) error {
	fs := flag.NewFlagSet("unlock", flag.ExitOnError)
	password := fs.String("password", "", "user password, empty for edit-restricted files")
	out := fs.String("out", "", "output path (default: <name>_unlocked.pdf beside the input)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("unlock wants exactly one input file")
	}
	in := fs.Arg(0)

	outPath := *out
	if outPath == "" {
		dir := filepath.Dir(in)
		name := namer.UniqueName(dir, namer.SuggestOutputName(in, "_unlocked"), nil)
		outPath = filepath.Join(dir, name)
	}

	if err := unlock.Unlock(in, outPath, *password); err != nil {
		return err
	}
	fmt.Printf("unlocked %s -> %s\n", in, outPath)
	return nil
}

func runPageNum(args []string) error {
	fs := flag.NewFlagSet("pagenum", flag.ExitOnError)
	start := fs.Int("start", 1, "number printed on the first page")
	template := fs.String("template", overlay.DefaultNumberTemplate, "per-page text; {page} and {total} expand")
	position := fs.String("pos", "bc", "anchor: bc, bl, br or tc")
	out := fs.String("out", "", "output path (default: <name>_numbered.pdf beside the input)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("pagenum wants exactly one input file")
	}
	in := fs.Arg(0)

	outPath := *out
	if outPath == "" {
		dir := filepath.Dir(in)
		name := namer.UniqueName(dir, namer.SuggestOutputName(in, "_numbered"), nil)
		outPath = filepath.Join(dir, name)
	}

	err := overlay.AddPageNumbers(in, outPath, overlay.NumberOptions{
		Start:    *start,
		Template: *template,
		Position: *position,
	})
	if err != nil {
		return err
	}
	fmt.Printf("numbered %s -> %s\n", in, outPath)
	return nil
}
