// Command chat runs the booking assistant in the terminal.
//
// Besides free text it understands a few slash commands:
//
//	/status                           booking progress
//	/auto                             popularity-based suggestion
//	/quick movie|date|time|tickets    fill the booking form directly
//	/quit                             leave
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/movie-booking-assistant/internal/app"
	"github.com/iliyamo/movie-booking-assistant/internal/assistant"
	"github.com/iliyamo/movie-booking-assistant/internal/config"
	"github.com/iliyamo/movie-booking-assistant/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// keep the terminal for the conversation
	log, err := logger.NewFile(filepath.Join("logs", "chat.log"))
	if err != nil {
		log = zap.NewNop()
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Close()

	// the only conversation lives as long as the process, so it is
	// kept out of the idle sweep
	reg := assistant.NewRegistry(cfg.MaxTickets, 0)
	s := reg.Create(os.Getenv("CHAT_USER"))
	if cfg.SuggestionInterval > 0 {
		g := &assistant.Suggester{Registry: reg, Interval: cfg.SuggestionInterval, Log: log}
		go g.Run(ctx)
	}

	fmt.Println(a.Assistant.Greet(s))
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !in.Scan() {
			return
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		reply, quit := run(ctx, a.Assistant, s, line)
		if quit {
			return
		}
		fmt.Println(reply)
	}
}

func run(ctx context.Context, a *assistant.Assistant, s *assistant.Session, line string) (string, bool) {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "/quit", "/exit":
		return "", true
	case "/status":
		return a.Status(s), false
	case "/auto":
		return a.AutoBook(ctx, s), false
	case "/quick":
		parts := strings.Split(arg, "|")
		if len(parts) != 4 {
			return "usage: /quick movie|date|time|tickets", false
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[3]))
		if err != nil {
			return "tickets must be a number", false
		}
		reply, err := a.QuickBook(ctx, s, assistant.QuickBookRequest{
			Movie: parts[0], Date: parts[1], Time: parts[2], Tickets: n,
		})
		if err != nil {
			return "❌ " + err.Error(), false
		}
		return reply, false
	}
	return a.Respond(ctx, s, line), false
}
