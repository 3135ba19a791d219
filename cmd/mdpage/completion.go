package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpage/internal/pipeline"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   func() []string // enum values
	FileGlob string          // file glob pattern
	IsDir    bool            // directory completion
}

func fixed(values ...string) func() []string {
	return func() []string { return values }
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"anchors":         {Values: fixed("flat", "hierarchical", "hash")},
	"image-policy":    {Values: fixed("inline", "copy", "none")},
	"css-mode":        {Values: fixed("inline", "file")},
	"highlight-style": {Values: pipeline.HighlightStyles},

	// File flags with glob patterns
	"config":   {FileGlob: "*.yaml,*.yml"},
	"style":    {FileGlob: "*.css"},
	"template": {FileGlob: "*.html"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.Values != nil:
				fd.Type = flagEnum
				fd.Values = meta.Values()
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Build flags are extracted from the real FlagSet.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "build", Desc: "Build an HTML page from a markdown file", Flags: extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{}))},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdpage completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells: bash, zsh, fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:  eval \"$(mdpage completion bash)\"        # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:   eval \"$(mdpage completion zsh)\"         # in ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:  mdpage completion fish > ~/.config/fish/completions/mdpage.fish")
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// bashScript renders a bash completion function.
func bashScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for mdpage\n")
	b.WriteString("_mdpage_completions() {\n")
	b.WriteString("    local cur prev\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")

	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("    completion)\n")
			b.WriteString("        COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"))\n        ;;\n")
		case c.Name == "help":
			b.WriteString("    help)\n")
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n        ;;\n", commandNames(cmds))
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "    %s)\n", c.Name)
			b.WriteString("        case \"$prev\" in\n")
			for _, f := range c.Flags {
				if f.Type == flagBool || f.Type == flagString {
					continue
				}
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern += "|-" + f.Short
				}
				fmt.Fprintf(&b, "        %s)\n", pattern)
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(f.Values, " "))
				case flagDir:
					b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
				case flagFile:
					b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
				}
				b.WriteString("            return\n            ;;\n")
			}
			b.WriteString("        esac\n")
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", flagWords(c.Flags))
			b.WriteString("        else\n")
			b.WriteString("            COMPREPLY=($(compgen -f -X '!*.@(md|markdown)' -- \"$cur\"))\n")
			b.WriteString("        fi\n        ;;\n")
		}
	}

	b.WriteString("    esac\n}\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _mdpage_completions mdpage\n")
	return b.String()
}

// zshEscape escapes characters with meaning inside an _arguments option.
func zshEscape(s string) string {
	return strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
}

// zshAction returns the _arguments action for a flag taking a value.
func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagDir:
		return ":" + f.Long + ":_files -/"
	case flagFile:
		globs := strings.Split(f.FileGlob, ",")
		return ":" + f.Long + ":_files -g \"" + strings.Join(globs, " ") + "\""
	default:
		return ":" + f.Long + ": "
	}
}

// zshScript renders a zsh completion function.
func zshScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef mdpage\n\n")
	b.WriteString("_mdpage() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")

	for _, c := range cmds {
		switch {
		case c.Name == "completion":
			b.WriteString("    completion)\n        _values 'shell' bash zsh fish\n        ;;\n")
		case len(c.Flags) > 0:
			fmt.Fprintf(&b, "    %s)\n", c.Name)
			b.WriteString("        _arguments \\\n")
			for _, f := range c.Flags {
				desc := zshEscape(f.Desc)
				action := zshAction(f)
				fmt.Fprintf(&b, "            '--%s[%s]%s' \\\n", f.Long, desc, action)
				if f.Short != "" {
					fmt.Fprintf(&b, "            '-%s[%s]%s' \\\n", f.Short, desc, action)
				}
			}
			b.WriteString("            '*:markdown file:_files -g \"*.md *.markdown\"'\n        ;;\n")
		}
	}

	b.WriteString("    esac\n}\n\n")
	b.WriteString("compdef _mdpage mdpage\n")
	return b.String()
}

// fishEscape quotes s for a single-quoted fish string.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// fishScript renders fish completions.
func fishScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for mdpage\n")
	b.WriteString("function __fish_mdpage_needs_command\n")
	b.WriteString("    test (count (commandline -opc)) -eq 1\nend\n\n")
	b.WriteString("function __fish_mdpage_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test \"$cmd[2]\" = \"$argv[1]\"\nend\n\n")
	b.WriteString("complete -c mdpage -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c mdpage -n __fish_mdpage_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("complete -c mdpage -n '__fish_mdpage_using_command completion' -a 'bash zsh fish'\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		cond := fmt.Sprintf("'__fish_mdpage_using_command %s'", c.Name)
		fmt.Fprintf(&b, "complete -c mdpage -n %s -a '(__fish_complete_suffix .md)'\n", cond)
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c mdpage -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagFile:
				fmt.Fprintf(&b, " -r -F -a '(__fish_complete_suffix %s)'", strings.TrimPrefix(strings.Split(f.FileGlob, ",")[0], "*"))
			case flagString:
				b.WriteString(" -r")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
	}

	return b.String()
}
