// Command stickpanel is a terminal joint editor. With -url it drives a
// running stickd; otherwise it animates a local figure in the preview.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/phanxgames/stickfigure/config"
	"github.com/phanxgames/stickfigure/panel"
)

func main() {
	fs := flag.NewFlagSet("stickpanel", flag.ExitOnError)
	baseURL := fs.String("url", "", "stickd base URL, e.g. http://localhost:9099 (empty edits a local figure)")
	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sk, lib, err := cfg.Figure.Build()
	if err != nil {
		log.Fatal(err)
	}

	var target panel.Target
	if *baseURL != "" {
		target = panel.NewHTTPTarget(*baseURL)
	} else {
		local := panel.NewLocalTarget(sk, lib)
		local.Animator.SetDefaultDuration(cfg.Animation.Duration())
		target = local
	}

	m := panel.New(sk, lib, target, cfg.Animation.Duration())
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "stickpanel: %v\n", err)
		os.Exit(1)
	}
}
