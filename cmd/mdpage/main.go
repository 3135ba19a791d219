package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(maxprocsLogger(verboseRequested(os.Args), env.Stderr)))

	os.Exit(runMain(os.Args, env))
}

// runMain dispatches the command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd := args[1]
	switch {
	case cmd == "build":
		return runBuildCmd(args[2:], env)
	case isCommand(cmd, "version"):
		fmt.Fprintf(env.Stdout, "go-mdpage %s\n", Version)
		return ExitSuccess
	case isCommand(cmd, "help"):
		runHelp(args[2:], env)
		return ExitSuccess
	case cmd == "completion":
		if err := runCompletion(args[2:], env); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	case looksLikeMarkdown(cmd):
		// mdpage README.md is shorthand for mdpage build README.md.
		return runBuildCmd(args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// isCommand matches a command name and its flag spellings.
func isCommand(arg, name string) bool {
	return arg == name || arg == "--"+name || (name == "help" && arg == "-h")
}

// looksLikeMarkdown reports whether arg names a Markdown file.
func looksLikeMarkdown(arg string) bool {
	lower := strings.ToLower(arg)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// verboseRequested scans raw arguments for -v/--verbose before flag parsing.
func verboseRequested(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// maxprocsLogger writes automaxprocs messages to w in verbose mode and
// discards them otherwise.
func maxprocsLogger(verbose bool, w io.Writer) func(string, ...interface{}) {
	if !verbose {
		return func(string, ...interface{}) {}
	}
	return func(format string, args ...interface{}) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}
