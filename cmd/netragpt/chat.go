package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/DMWllc/netragpt/pkg/agent"
	"github.com/DMWllc/netragpt/pkg/logger"
)

func chatCmd(configPath, message string, debug bool) error {
	logger.SetDebug(debug)

	rt, err := buildRuntime(configPath)
	if err != nil {
		return err
	}
	defer rt.close()

	if strings.TrimSpace(message) != "" {
		reply, err := rt.orch.HandleMessage(context.Background(), "", message)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s %s\n", appName, reply.Text)
		return nil
	}

	fmt.Printf("%s Interactive mode (Ctrl+C to exit)\n\n", appName)
	interactiveMode(rt.orch)
	return nil
}

func interactiveMode(orch *agent.Orchestrator) {
	prompt := fmt.Sprintf("%s You: ", appName)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".netragpt_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		fmt.Println("Falling back to simple input mode...")
		simpleInteractiveMode(orch)
		return
	}
	defer rl.Close()

	sessionID := ""
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		sessionID = handleREPLLine(orch, sessionID, line)
		if sessionID == replExit {
			return
		}
	}
}

func simpleInteractiveMode(orch *agent.Orchestrator) {
	reader := bufio.NewReader(os.Stdin)
	sessionID := ""
	for {
		fmt.Printf("%s You: ", appName)
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		sessionID = handleREPLLine(orch, sessionID, line)
		if sessionID == replExit {
			return
		}
	}
}

// replExit is an impossible session id used to signal the REPL to stop.
const replExit = "\x00exit"

func handleREPLLine(orch *agent.Orchestrator, sessionID, line string) string {
	input := strings.TrimSpace(line)
	if input == "" {
		return sessionID
	}
	if input == "exit" || input == "quit" {
		fmt.Println("Goodbye!")
		return replExit
	}
	if input == "/new" {
		fresh, welcome := orch.StartNewSession(sessionID)
		fmt.Printf("\n%s %s\n\n", appName, welcome)
		return fresh.ID
	}

	reply, err := orch.HandleMessage(context.Background(), sessionID, input)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return sessionID
	}

	fmt.Printf("\n%s %s\n", appName, reply.Text)
	if reply.SessionWarning != "" {
		fmt.Printf("%s %s\n", appName, reply.SessionWarning)
	}
	fmt.Println()

	if reply.SessionExpired {
		// Next line starts a fresh session.
		return ""
	}
	return reply.SessionID
}
