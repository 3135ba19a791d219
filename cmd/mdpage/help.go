package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpage <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build an HTML page from a markdown file")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdpage help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpage build <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a static HTML page from a markdown file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file.md    Markdown source (optional if config has input.path)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: dist)")
	fmt.Fprintln(w, "  -f, --filename <name>       Page base name (default: index)")
	fmt.Fprintln(w, "  -i, --images <path>         Image file or directory")
	fmt.Fprintln(w, "      --title <s>             Page title (default: front matter or first H1)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --anchors <s>           Heading anchors: flat, hierarchical, hash")
	fmt.Fprintln(w, "      --dedupe-anchors        Suffix repeated hash anchors with -1, -2, ...")
	fmt.Fprintln(w, "      --image-policy <s>      Images: inline, copy, none")
	fmt.Fprintln(w, "                              (default: inline with --images, none without)")
	fmt.Fprintln(w, "      --strict-mime           Fail on images of unknown type")
	fmt.Fprintln(w, "      --allow-html            Pass raw HTML through")
	fmt.Fprintln(w, "      --highlight-style <s>   Code highlight style (default: github)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "  -s, --style <name|path>     CSS style (default: markdown)")
	fmt.Fprintln(w, "  -t, --template <name|path>  Page template (default: page)")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --css-mode <s>          Stylesheet: inline, file (css/<style>.css)")
	fmt.Fprintln(w, "      --strict-markers        Fail when the template lacks a marker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDPAGE_CONFIG, MDPAGE_STYLE, MDPAGE_TEMPLATE, MDPAGE_OUTPUT_DIR,")
	fmt.Fprintln(w, "  MDPAGE_IMAGE_ROOT, MDPAGE_IMAGE_POLICY, MDPAGE_ANCHORS, MDPAGE_CSS_MODE,")
	fmt.Fprintln(w, "  MDPAGE_HIGHLIGHT_STYLE, MDPAGE_ASSET_PATH")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdpage version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdpage help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
