package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdpage"
	"github.com/alnah/go-mdpage/internal/config"
	"github.com/alnah/go-mdpage/internal/hints"
	"github.com/alnah/go-mdpage/internal/pipeline"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrInvalidExtension = errors.New("file must have .md or .markdown extension")
	ErrTooManyArgs      = errors.New("build takes a single markdown file")
)

// runBuildCmd parses flags, runs the build and maps the outcome to an exit code.
func runBuildCmd(args []string, env *Environment) int {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "error:", err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	imageRoot, err := runBuild(ctx, positional, flags, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, imageRoot))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runBuild orchestrates one page build. It returns the effective image
// root so error hints can refer to it.
func runBuild(ctx context.Context, positional []string, flags *buildFlags, env *Environment) (string, error) {
	quiet, verbose := flags.common.quiet, flags.common.verbose && !flags.common.quiet

	envCfg := loadEnvConfig()
	if !quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	// Load configuration
	base := *env.Config
	cfg := &base
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			return "", fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		if verbose {
			fmt.Fprintf(env.Stderr, "Config: %s\n", configName)
		}
	}

	// Environment, then CLI flags, override the file
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	source, err := resolveInputPath(positional, cfg)
	if err != nil {
		return cfg.Input.ImageRoot, err
	}
	if err := validateMarkdownExtension(source); err != nil {
		return cfg.Input.ImageRoot, err
	}

	conv, err := mdpage.NewConverter(converterOptions(cfg)...)
	if err != nil {
		return cfg.Input.ImageRoot, err
	}

	if verbose {
		fmt.Fprintf(env.Stderr, "Source: %s\n", source)
		fmt.Fprintf(env.Stderr, "Anchors: %s, images: %s, css: %s\n",
			orDefault(cfg.Render.Anchors, string(mdpage.AnchorsFlat)),
			orDefault(cfg.Render.Images, "auto"),
			orDefault(cfg.CSS.Mode, string(mdpage.CSSInline)))
	}

	start := env.Now()
	res, err := mdpage.Build(ctx, mdpage.BuildOptions{
		Source:    source,
		OutputDir: cfg.Output.Dir,
		Filename:  cfg.Output.Filename,
		ImageRoot: cfg.Input.ImageRoot,
		Title:     flags.title,
		Converter: conv,
	})
	if err != nil {
		return cfg.Input.ImageRoot, err
	}

	printResult(env, res, env.Now().Sub(start), quiet, verbose)
	return cfg.Input.ImageRoot, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	// I/O flags
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.filename != "" {
		cfg.Output.Filename = flags.filename
	}
	if flags.imageRoot != "" {
		cfg.Input.ImageRoot = flags.imageRoot
	}

	// Render flags
	if flags.render.anchors != "" {
		cfg.Render.Anchors = flags.render.anchors
	}
	if flags.render.imagePolicy != "" {
		cfg.Render.Images = flags.render.imagePolicy
	}
	if flags.render.highlightStyle != "" {
		cfg.Render.HighlightStyle = flags.render.highlightStyle
	}
	if flags.render.dedupeAnchors {
		cfg.Render.DedupeAnchors = true
	}
	if flags.render.strictMIME {
		cfg.Render.StrictMIME = true
	}
	if flags.render.allowHTML {
		cfg.Render.AllowHTML = true
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.CSS.Style = flags.assets.style
	}
	if flags.assets.cssMode != "" {
		cfg.CSS.Mode = flags.assets.cssMode
	}
	if flags.assets.template != "" {
		cfg.Template.Name = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.strictMarkers {
		cfg.Template.StrictMarkers = true
	}
}

// converterOptions translates the merged config into converter options.
func converterOptions(cfg *config.Config) []mdpage.Option {
	opts := []mdpage.Option{
		mdpage.WithAnchorPolicy(mdpage.AnchorPolicy(cfg.Render.Anchors)),
		mdpage.WithDedupeAnchors(cfg.Render.DedupeAnchors),
		mdpage.WithImagePolicy(mdpage.ImagePolicy(cfg.Render.Images)),
		mdpage.WithStrictMIME(cfg.Render.StrictMIME),
		mdpage.WithAllowHTML(cfg.Render.AllowHTML),
		mdpage.WithHighlightStyle(cfg.Render.HighlightStyle),
		mdpage.WithStrictMarkers(cfg.Template.StrictMarkers),
		mdpage.WithCSSMode(mdpage.CSSMode(cfg.CSS.Mode)),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, mdpage.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, mdpage.WithStyle(cfg.CSS.Style))
	}
	if cfg.Template.Name != "" {
		opts = append(opts, mdpage.WithTemplate(cfg.Template.Name))
	}
	return opts
}

// resolveInputPath determines the source from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	switch {
	case len(args) > 1:
		return "", fmt.Errorf("%w: got %d", ErrTooManyArgs, len(args))
	case len(args) == 1:
		return args[0], nil
	case cfg.Input.Path != "":
		return cfg.Input.Path, nil
	default:
		return "", ErrNoInput
	}
}

// validateMarkdownExtension checks the source has a Markdown extension.
func validateMarkdownExtension(path string) error {
	if !looksLikeMarkdown(path) {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	return nil
}

// printResult reports what was written. --quiet silences warnings too.
func printResult(env *Environment, res *mdpage.BuildResult, elapsed time.Duration, quiet, verbose bool) {
	if quiet {
		return
	}

	for _, w := range res.Warnings {
		fmt.Fprintf(env.Stderr, "warning: %s\n", w)
	}

	if verbose {
		fmt.Fprintf(env.Stdout, "Created %s (%v, %d headings)\n", res.PagePath, elapsed.Round(time.Millisecond), len(res.Headings))
	} else {
		fmt.Fprintf(env.Stdout, "Created %s\n", res.PagePath)
	}
	if res.CSSPath != "" {
		fmt.Fprintf(env.Stdout, "Created %s\n", res.CSSPath)
	}
	if res.ImagesCopied > 0 {
		fmt.Fprintf(env.Stdout, "Copied %d image(s)\n", res.ImagesCopied)
	}
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, imageRoot string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		var notFound *config.NotFoundError
		if errors.As(err, &notFound) {
			return hints.ForConfigNotFound(notFound.Tried)
		}
		return hints.ForConfigNotFound(nil)
	case errors.Is(err, mdpage.ErrStyleNotFound):
		return hints.ForStyleNotFound(mdpage.BuiltinStyles())
	case errors.Is(err, mdpage.ErrTemplateNotFound):
		return hints.ForTemplateNotFound()
	case errors.Is(err, mdpage.ErrInvalidHighlightStyle):
		return hints.ForHighlightStyle(pipeline.HighlightStyles())
	case errors.Is(err, mdpage.ErrInvalidImagePath):
		return hints.ForImagePath()
	case errors.Is(err, mdpage.ErrImageRead):
		return hints.ForImageRead(imageRoot)
	case errors.Is(err, mdpage.ErrUnknownMIME):
		return hints.ForUnknownMIME()
	case errors.Is(err, mdpage.ErrMarkerNotFound):
		var markerErr *mdpage.MarkerError
		if errors.As(err, &markerErr) {
			return hints.ForMissingMarkers(markerErr.Missing)
		}
		return hints.ForMissingMarkers(nil)
	case errors.Is(err, mdpage.ErrInvalidOutputDir):
		return hints.ForOutputOverlap()
	case errors.Is(err, mdpage.ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
