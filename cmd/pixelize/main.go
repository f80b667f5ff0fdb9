package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pixelize/pixelize/internal/config"
	"github.com/pixelize/pixelize/internal/imaging"
	"github.com/pixelize/pixelize/internal/segment"
	"github.com/pixelize/pixelize/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "--version", "-v", "version":
		fmt.Printf("pixelize %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printHelp()
		return
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("pixelize v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	switch cmd {
	case "serve":
		srv := server.New(cfg)
		if err := srv.Run(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case "split":
		args, refine := parseSplitArgs(os.Args[2:])
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "usage: pixelize split <input> <outdir> [--refine]")
			os.Exit(2)
		}
		if err := runSplit(cfg, args[0], args[1], refine); err != nil {
			log.Fatalf("Split error: %v", err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		printHelp()
		os.Exit(2)
	}
}

func printHelp() {
	fmt.Println("pixelize - cut scanned text lines into character images")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  pixelize split <input> <outdir> [--refine]")
	fmt.Println("  pixelize serve")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  split            Write denoised.png, binarized.png, boundaries.png and char_NN.png")
	fmt.Println("  serve            Run the MCP server over stdin/stdout (default)")
	fmt.Println("  version, -v      Print version information")
	fmt.Println("  help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Println("  PIXELIZE_LOG_LEVEL=debug           Enable debug logging")
	fmt.Println("  PIXELIZE_BRIGHTNESS_LIMIT=0.3      Binarization lightness limit")
	fmt.Println("  PIXELIZE_WATERMARK=blue:16         none, blue:<max> or hue:<min>,<max>,<sat>")
	fmt.Println("  PIXELIZE_MAX_CHARACTER_WIDTH=35    Wider characters hold two glyphs")
	fmt.Println("  PIXELIZE_MIN_CHARACTER_INK=40      Less ink is a lost fragment")
}

func parseSplitArgs(args []string) ([]string, bool) {
	var positional []string
	refine := false
	for _, a := range args {
		if a == "--refine" {
			refine = true
			continue
		}
		positional = append(positional, a)
	}
	return positional, refine
}

func runSplit(cfg *config.Config, input, outDir string, refine bool) error {
	img, err := imaging.NewImageCache().Load(input)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := segment.Segment(img, cfg.Segmentation)
	if err != nil {
		return err
	}
	chars := res.Characters
	if refine {
		chars = segment.Refine(chars, cfg.Segmentation)
	}
	if cfg.Debug() {
		log.Printf("segmented %s in %s: boundaries %v", input, time.Since(start), res.Boundaries)
	}

	if err := imaging.SavePNG(filepath.Join(outDir, "denoised.png"), res.Denoised); err != nil {
		return err
	}
	if err := imaging.SavePNG(filepath.Join(outDir, "binarized.png"), res.Binarized); err != nil {
		return err
	}
	overlay := imaging.OverlayColumns(res.Binarized, res.Boundaries, true, "#FF0000")
	if err := imaging.SavePNG(filepath.Join(outDir, "boundaries.png"), overlay); err != nil {
		return err
	}

	for _, c := range chars {
		flags := ""
		if c.HasMoreThanOneCharacterInside() {
			flags += " wide"
		}
		if c.IsALostFragment() {
			flags += " fragment"
		}
		if c.Empty() {
			fmt.Printf("char %02d  empty\n", c.Place())
			continue
		}
		name := fmt.Sprintf("char_%02d.png", c.Place())
		if err := imaging.SavePNG(filepath.Join(outDir, name), c.Image()); err != nil {
			return err
		}
		fmt.Printf("char %02d  %3dx%-3d ink %4d%s\n", c.Place(), c.Width(), c.Height(), c.InkPixels(), flags)
	}
	fmt.Printf("%d characters, boundaries %v\n", len(chars), res.Boundaries)
	return nil
}
