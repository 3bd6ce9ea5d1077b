package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/text-card-mcp/internal/config"
	"github.com/ironsheep/text-card-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("text-card-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "render":
			setupLogging()
			if err := runRender(os.Args[2:], config.FromEnv(), os.Stdout); err != nil {
				log.Fatalf("Render failed: %v", err)
			}
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	setupLogging()

	cfg := config.FromEnv()
	if cfg.Debug {
		log.Printf("Text Card MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Assets: %s, output: %s", cfg.AssetDir, cfg.Output)
	}

	if Version != "dev" {
		server.Version = Version
	}
	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

func printUsage() {
	fmt.Println("text-card-mcp - MCP server that renders text onto images")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  text-card-mcp [options]          Run the MCP server on stdin/stdout")
	fmt.Println("  text-card-mcp render [flags]     Render one card and exit")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Run 'text-card-mcp render -h' for render flags.")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  TEXT_CARD_ASSET_DIR     Directory with the custom font and bg.png")
	fmt.Println("  TEXT_CARD_FONT          Custom font file name (default cute_font.ttf)")
	fmt.Println("  TEXT_CARD_BACKGROUND    Default background image")
	fmt.Println("  TEXT_CARD_OUTPUT        Default output path")
	fmt.Println("  TEXT_CARD_FONT_SIZE     Base font size (default 60)")
	fmt.Println("  TEXT_CARD_MIN_WIDTH     Minimum canvas width (default 800)")
	fmt.Println("  TEXT_CARD_SPACING       Line spacing (default 4)")
	fmt.Println("  TEXT_CARD_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("In server mode the process communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
