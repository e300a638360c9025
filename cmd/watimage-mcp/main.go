package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/watimage-mcp/internal/config"
	"github.com/ironsheep/watimage-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("watimage-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("watimage-mcp - MCP server for resizing, cropping, rotating and watermarking images")
			fmt.Println()
			fmt.Println("Usage: watimage-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  WATIMAGE_LOG_LEVEL=debug       Enable debug logging")
			fmt.Println("  WATIMAGE_QUALITY=90            Default JPEG/GIF quality (0-100)")
			fmt.Println("  WATIMAGE_COMPRESSION=6         Default PNG compression (0-9)")
			fmt.Println("  WATIMAGE_MAX_PIXELS=100000000  Largest accepted image in pixels, 0 for no limit")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Watimage MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Quality %d, compression %d, max pixels %d", cfg.Quality, cfg.Compression, cfg.MaxPixels)
	}

	server.Version = Version
	srv := server.New(cfg.PipelineOptions())
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
