// APU - ASCII Processing Unit
//
// A terminal display server: games connect to the game port and send
// display commands as newline-delimited JSON; players connect to the
// client port over telnet and see the composited result.
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/benj-edwards/ascii-processing-unit/internal/apuserver"
	"github.com/benj-edwards/ascii-processing-unit/internal/config"
)

func main() {
	cfg := config.Load()

	args := os.Args[1:]
	positional := 0
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--game-bind":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: --game-bind requires an address")
				os.Exit(1)
			}
			cfg.GameBind = args[i+1]
			i++
		case "--client-bind":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "Error: --client-bind requires an address")
				os.Exit(1)
			}
			cfg.ClientBind = args[i+1]
			i++
		case "--help", "-h":
			printUsage()
			os.Exit(0)
		default:
			port, err := strconv.Atoi(args[i])
			if err != nil {
				continue
			}
			if positional == 0 {
				cfg.GamePort = port
			} else {
				cfg.ClientPort = port
			}
			positional++
		}
	}

	networkWarning := ""
	if cfg.GameBind == "0.0.0.0" {
		networkWarning = "\n║  WARNING: Game port open to network!                           ║"
	}

	log.Println("╔═══════════════════════════════════════════════════════════════╗")
	log.Println("║            APU - ASCII Processing Unit                         ║")
	log.Println("║     Universal Character-Cell Display Engine                    ║")
	log.Println("╠═══════════════════════════════════════════════════════════════╣")
	log.Printf("║  Game port:   %-5d (bind: %-15s)                  ║", cfg.GamePort, cfg.GameBind)
	log.Printf("║  Client port: %-5d (bind: %-15s)                  ║", cfg.ClientPort, cfg.ClientBind)
	if networkWarning != "" {
		log.Println(networkWarning)
	}
	log.Println("╚═══════════════════════════════════════════════════════════════╝")

	srv := apuserver.NewServer(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("[apu] server exited: %v", err)
	}
}

func printUsage() {
	fmt.Println("APU - ASCII Processing Unit")
	fmt.Println()
	fmt.Println("Usage: apu [game_port] [client_port] [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --game-bind <addr>    Bind game port to address (default: 127.0.0.1)")
	fmt.Println("                        Use 0.0.0.0 for network access")
	fmt.Println("  --client-bind <addr>  Bind client port to address (default: 0.0.0.0)")
	fmt.Println("  --help, -h            Show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  apu 6122 6123                      # Local game, public telnet")
	fmt.Println("  apu 6122 6123 --game-bind 0.0.0.0  # Network game connections")
}
