// perfilcard — Templated profile-card compositor.
//
// Usage:
//
//	perfilcard serve [--addr :8080] [--templates DIR]
//	perfilcard init [DIR]
//	perfilcard -o <file> --templates DIR --username NAME --avatar REF [options]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aurautils/perfilcard/clients/server"
	"github.com/aurautils/perfilcard/pkg/layout"
	"github.com/aurautils/perfilcard/pkg/render"
	"github.com/aurautils/perfilcard/pkg/resource"
	"github.com/aurautils/perfilcard/pkg/template"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "init":
		if err := runInit(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		if err := runRender(os.Args[1:]); err != nil {
			fatal(err)
		}
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var opts server.Options
	fs.StringVar(&opts.Addr, "addr", ":8080", "Listen address")
	fs.StringVar(&opts.TemplateRoot, "templates", "templates", "Template root directory")
	fs.DurationVar(&opts.FetchTimeout, "fetch-timeout", 0, "Remote image fetch timeout (0 = default)")
	fs.DurationVar(&opts.CacheRefresh, "cache-refresh", 0, "Cache expiry interval (0 = never)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return server.Run(opts)
}

// runInit writes a starter default/template.json into the target directory.
func runInit(args []string) error {
	dir := "templates"
	if len(args) > 0 {
		dir = args[0]
	}
	target := filepath.Join(dir, "default")
	if err := os.MkdirAll(target, 0755); err != nil {
		return err
	}
	path := filepath.Join(target, "template.json")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.WriteFile(path, []byte(template.ExampleJSON()), 0644); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

// runRender produces one card to a file without the server.
func runRender(args []string) error {
	fs := flag.NewFlagSet("perfilcard", flag.ExitOnError)

	var (
		output       string
		templateRoot string
		templateName string
		username     string
		avatar       string
		bio          string
		bg           string
		coinIcon     string
		level        int
		xp           int
		maxXP        int
		coins        int
		fetchTimeout time.Duration
	)

	fs.StringVar(&output, "o", "", "Output PNG path")
	fs.StringVar(&output, "output", "", "Output PNG path")
	fs.StringVar(&templateRoot, "templates", "templates", "Template root directory")
	fs.StringVar(&templateName, "template", "default", "Template name")
	fs.StringVar(&username, "username", "", "Username (required)")
	fs.StringVar(&avatar, "avatar", "", "Avatar reference: URL or path (required)")
	fs.StringVar(&bio, "bio", "", "Bio text")
	fs.StringVar(&bg, "bg", "", "Background override: color or URL")
	fs.StringVar(&coinIcon, "coin-icon", "", "Coin icon override")
	fs.IntVar(&level, "level", -1, "Level")
	fs.IntVar(&xp, "xp", -1, "Current XP")
	fs.IntVar(&maxXP, "max-xp", -1, "XP needed for next level")
	fs.IntVar(&coins, "coins", -1, "Coin count")
	fs.DurationVar(&fetchTimeout, "fetch-timeout", 0, "Remote image fetch timeout")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	if output == "" {
		return fmt.Errorf("output file is required (-o)")
	}
	if username == "" || avatar == "" {
		return fmt.Errorf("--username and --avatar are required")
	}

	fonts, err := render.NewFontManager()
	if err != nil {
		return err
	}

	loader := template.NewLoader(template.DirSource{Root: templateRoot}, 0)
	doc, err := loader.Load(templateName)
	if err != nil {
		return err
	}
	for _, warning := range template.Validate(doc) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	resolver := resource.NewResolver(resource.NewImageCache(0), fetchTimeout)
	engine := layout.NewEngine(resolver, fonts)

	req := &layout.Request{
		Username:   username,
		Avatar:     avatar,
		Bio:        bio,
		Level:      optInt(level),
		XP:         optInt(xp),
		MaxXP:      optInt(maxXP),
		Coins:      optInt(coins),
		CoinIcon:   coinIcon,
		Template:   templateName,
		Background: bg,
	}

	ops, err := engine.Build(doc, req, loader.AssetDir(templateName))
	if err != nil {
		return err
	}

	width, height := doc.CanvasSize()
	img, err := render.NewRenderer(fonts).Render(ops, width, height)
	if err != nil {
		return err
	}

	buf, err := render.EncodePNG(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, buf, 0644); err != nil {
		return err
	}

	fmt.Printf("Done: %s (%dx%d)\n", output, width, height)
	return nil
}

// optInt converts the flag sentinel -1 into "absent".
func optInt(v int) *int {
	if v < 0 {
		return nil
	}
	return &v
}

func printUsage() {
	fmt.Print(`perfilcard — templated profile-card compositor

Usage:
  perfilcard serve [--addr :8080] [--templates DIR]
  perfilcard init [DIR]
  perfilcard -o out.png --templates DIR --username NAME --avatar REF [options]

Options (render mode):
  --template NAME   Template name (default "default")
  --bio TEXT        Bio text
  --level N         Level
  --xp N            Current XP
  --max-xp N        XP needed for next level
  --coins N         Coin count
  --coin-icon REF   Coin icon: image reference or emoji
  --bg REF          Background override: color or URL
`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
