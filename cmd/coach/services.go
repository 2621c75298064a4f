// ABOUTME: Builds the coach services shared by CLI commands and the MCP server.
// ABOUTME: Everything is constructed from the loaded config and open repository.
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/llm"
	"github.com/harperreed/coach/internal/tips"
	"github.com/harperreed/coach/internal/voice"
)

func newSession() *coach.Session {
	return newSessionWith(llm.NewOllamaClient(logger, cfg.OllamaConfig()))
}

func newSessionWith(gen llm.Generator) *coach.Session {
	return coach.NewSession(logger, repo, coach.NewResponder(logger, gen))
}

func newSelector() (*tips.Selector, error) {
	list, err := cfg.LoadTips()
	if err != nil {
		return nil, fmt.Errorf("failed to load tips: %w", err)
	}
	return tips.NewSelector(logger, list, repo), nil
}

func newBridge() (*voice.Bridge, error) {
	synth, err := cfg.NewSynthesizer(logger)
	if err != nil {
		return nil, err
	}
	return voice.NewBridge(logger, synth, cfg.NewRecognizer(logger), cfg.GetAudioDir()), nil
}

// confirm asks a yes/no question, defaulting to no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
