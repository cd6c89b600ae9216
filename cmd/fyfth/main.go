package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/peterh/liner"

	fyfth "github.com/greytdepression/fyfth"
)

const (
	appName     = "fyfth"
	historyFile = ".fyfth_history"
	prompt      = ">> "
)

var (
	red   = color.New(color.FgRed).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	blue  = color.New(color.FgHiBlue).SprintFunc()

	banner = fmt.Sprintf("fyfth %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", fyfth.Version)
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(fyfth.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`fyfth %s (built %s)

Usage:
  %s run [-prelude file] <file.fy>    Run a script against the demo world.
  %s run -e <code>                    Evaluate code from the command line.
  %s repl [-prelude file]             Start the REPL.
  %s version                          Print the compiled version

`, fyfth.Version, fyfth.BuildDate, appName, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// demo world
// -----------------------------------------------------------------------------

// Transform is the demo component: position, orientation, uniform scale.
type Transform struct {
	Pos   mgl32.Vec3
	Rot   mgl32.Quat
	Scale float32
}

// Health is a second demo component so name resolution has something to
// disambiguate against.
type Health struct {
	Current float32
	Max     float32
}

func demoWorld() (*fyfth.MemWorld, error) {
	reg := fyfth.NewRegistry()
	if err := reg.Add(fyfth.NewStructCodec[Transform]("demo::Transform")); err != nil {
		return nil, err
	}
	if err := reg.Add(fyfth.NewStructCodec[Health]("demo::Health")); err != nil {
		return nil, err
	}

	w := fyfth.NewMemWorld(reg)

	ident := mgl32.QuatIdent()
	player := w.Spawn("player")
	_ = w.SetComponent(player, "demo::Transform", Transform{Pos: mgl32.Vec3{0, 1, 0}, Rot: ident, Scale: 1})
	_ = w.SetComponent(player, "demo::Health", Health{Current: 80, Max: 100})

	crate := w.Spawn("wooden crate")
	_ = w.SetComponent(crate, "demo::Transform", Transform{Pos: mgl32.Vec3{4, 0, -2}, Rot: ident, Scale: 2})

	lamp := w.Spawn("street lamp")
	_ = w.SetComponent(lamp, "demo::Transform", Transform{Pos: mgl32.Vec3{-3, 0, 7}, Rot: ident, Scale: 1})

	w.Spawn("") // a nameless entity

	return w, nil
}

func newInterp(world fyfth.World, prelude string) (*fyfth.Interp, error) {
	lang := fyfth.BaseLanguage()
	if err := lang.Merge(fyfth.TagLanguage()); err != nil {
		return nil, err
	}

	it := fyfth.NewInterp(lang)
	if err := it.LoadPrelude(prelude, world); err != nil {
		return nil, err
	}
	return it, nil
}

// preludeSource reads the prelude override, or falls back to the built-in.
func preludeSource(path string) (string, error) {
	if path == "" {
		return fyfth.DefaultPrelude, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	preludePath := fs.String("prelude", "", "prelude file to load instead of the built-in one")
	expr := fs.String("e", "", "evaluate code given on the command line")
	_ = fs.Parse(args)

	src := *expr
	if src == "" {
		if fs.NArg() < 1 {
			fmt.Fprintf(os.Stderr, "usage: %s run [-prelude file] <file.fy> | -e <code>\n", appName)
			return 2
		}
		b, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, fs.Arg(0), err)
			return 1
		}
		src = string(b)
	}

	prelude, err := preludeSource(*preludePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read prelude: %v\n", appName, err)
		return 1
	}

	world, err := demoWorld()
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	it, err := newInterp(world, prelude)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}

	out, err := it.RunScript(src, world)
	if out != "" {
		fmt.Print(out)
		if !strings.HasSuffix(out, "\n") {
			fmt.Println()
		}
	}
	if err != nil {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ExitOnError)
	preludePath := fs.String("prelude", "", "prelude file to load instead of the built-in one")
	_ = fs.Parse(args)

	prelude, err := preludeSource(*preludePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read prelude: %v\n", appName, err)
		return 1
	}

	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	world, err := demoWorld()
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	it, err := newInterp(world, prelude)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}

	for {
		code, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			continue
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		// run speculatively: commit the clone only if the line succeeded,
		// so a failed line leaves the session state untouched
		trial := it.Clone()
		out, err := trial.RunScript(code, world)
		if out != "" {
			if err != nil {
				fmt.Print(red(out))
			} else {
				fmt.Print(green(out))
			}
			if !strings.HasSuffix(out, "\n") {
				fmt.Println()
			}
		}
		if err == nil {
			it = trial
			if state := it.FormatStackState(world, " "); state != "" {
				fmt.Println(blue(state))
			}
		}

		ln.AppendHistory(code)
	}

	return 0
}
