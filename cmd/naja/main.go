package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/driver"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

const cliVersion = "naja 0.1.0-dev"

const usage = `naja

Usage:
  naja run [--manifest=<path>] [--trace=<level>] [<file>]
  naja check [--manifest=<path>] [--trace=<level>] [<file>]
  naja -h | --help
  naja --version

Arguments:
  <file>  Program to execute, as a JSON AST. Defaults to the manifest entry.

Options:
  --manifest=<path>  Project manifest. Defaults to the nearest naja.yml.
  --trace=<level>    Trace level, one of debug, info, error.
  -h, --help         Display this help.
  --version          Print the naja version.
`

func tracer() tracing.Trace {
	return tracing.Select("naja.cli")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type cli struct {
	stdout io.Writer
	stderr io.Writer
	styled bool
}

func run(args []string, stdout, stderr io.Writer) int {
	var helpText string
	parser := &docopt.Parser{
		HelpHandler: func(_ error, text string) { helpText = text },
	}
	opts, err := parser.ParseArgs(usage, args, cliVersion)
	if err != nil {
		fmt.Fprintln(stderr, strings.TrimSpace(helpText))
		return 2
	}
	if helpText != "" {
		fmt.Fprintln(stdout, strings.TrimSpace(helpText))
		return 0
	}

	c := &cli{stdout: stdout, stderr: stderr, styled: isTerminal(stdout)}
	if c.styled {
		initDisplay()
	}
	manifestPath, _ := opts.String("--manifest")
	file, _ := opts.String("<file>")
	level, _ := opts.String("--trace")

	manifest, err := selectManifest(manifestPath, file)
	if err != nil {
		c.fail(err)
		return 1
	}
	if level == "" {
		level = manifest.Trace
	}
	configureTracing(level, stderr)

	session := driver.NewSession(manifest, stdout, nil)
	if check, _ := opts.Bool("check"); check {
		infos, err := session.Check(file)
		c.printModules(infos)
		if err != nil {
			c.fail(err)
			return 1
		}
		return 0
	}
	val, err := session.Run(context.Background(), file)
	if err != nil {
		c.fail(err)
		return 1
	}
	tracer().Debugf("program result: %s", runtime.Repr(val))
	return 0
}

// selectManifest prefers an explicit manifest, then the nearest naja.yml
// above the program, then a manifest-less setup rooted at the program.
func selectManifest(explicit, file string) (*driver.Manifest, error) {
	if explicit != "" {
		return driver.LoadManifest(explicit)
	}
	start := "."
	if file != "" {
		start = filepath.Dir(file)
	}
	path, err := driver.FindManifest(start)
	if errors.Is(err, driver.ErrNoManifest) {
		if file == "" {
			return nil, fmt.Errorf("no program given and no %s found", driver.ManifestFileName)
		}
		return driver.DefaultManifest(file)
	}
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func configureTracing(level string, out io.Writer) {
	if level == "" {
		return
	}
	tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
	t := tracing.Select("naja")
	t.SetOutput(out)
	t.SetTraceLevel(tracing.TraceLevelFromString(level))
	t.Infof("trace level is %s", level)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// We use pterm for output on a terminal only.
func initDisplay() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " NAJA ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
}

// fail reports err. Language errors print as "Kind: message".
func (c *cli) fail(err error) {
	msg := err.Error()
	if rerr, ok := runtime.AsRuntimeError(err); ok {
		msg = rerr.Error()
	}
	if c.styled {
		pterm.Error.Println(msg)
		return
	}
	fmt.Fprintf(c.stderr, "error: %s\n", msg)
}

func (c *cli) printModules(infos []driver.ModuleInfo) {
	if len(infos) == 0 {
		return
	}
	if c.styled {
		ll := pterm.LeveledList{}
		for _, info := range infos {
			ll = append(ll, pterm.LeveledListItem{Level: info.Level, Text: moduleLabel(info)})
		}
		pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
		return
	}
	for _, info := range infos {
		fmt.Fprintf(c.stdout, "%s%s\n", strings.Repeat("  ", info.Level), moduleLabel(info))
	}
}

func moduleLabel(info driver.ModuleInfo) string {
	switch {
	case info.Cycle:
		return info.Name + " (cycle)"
	case info.Opaque:
		return info.Name + " [source text]"
	}
	return info.Name
}
