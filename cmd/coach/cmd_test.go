// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands end to end against temp config and data directories.
package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harperreed/coach/internal/coach"
	"github.com/harperreed/coach/internal/config"
	"github.com/harperreed/coach/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default so commands can be run
// repeatedly against the shared rootCmd.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setupCLI points config at a temp dir and returns the data dir.
func setupCLI(t *testing.T, c *config.Config) string {
	t.Helper()
	color.NoColor = true

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	if c != nil {
		if err := c.Save(); err != nil {
			t.Fatalf("Save config failed: %v", err)
		}
	}
	return t.TempDir()
}

// runCLI executes rootCmd with args and returns stdout.
func runCLI(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--data-dir", dataDir))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestLogAddAndList(t *testing.T) {
	dataDir := setupCLI(t, nil)

	out, err := runCLI(t, dataDir, "", "log", "add", "--sleep", "7.5", "--meals", "oats, salad", "--mood", "happy", "--steps", "8000", "--date", "2025-03-01")
	if err != nil {
		t.Fatalf("log add failed: %v", err)
	}
	if !strings.Contains(out, "Logged 2025-03-01") {
		t.Errorf("unexpected add output:\n%s", out)
	}

	// Omitted numbers are stored as missing
	if _, err := runCLI(t, dataDir, "", "log", "add", "--mood", "TIRED", "--date", "2025-03-02"); err != nil {
		t.Fatalf("log add failed: %v", err)
	}

	out, err = runCLI(t, dataDir, "", "log", "list")
	if err != nil {
		t.Fatalf("log list failed: %v", err)
	}
	for _, want := range []string{"2025-03-01", "7.5", "8000", "Happy", "oats, salad", "2025-03-02", "Tired", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}

	data, err := os.ReadFile(filepath.Join(dataDir, "user_logs.csv"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "2025-03-02,,,Tired,\n") {
		t.Errorf("missing values not stored empty:\n%s", data)
	}
}

func TestLogAddRejectsUnknownMood(t *testing.T) {
	dataDir := setupCLI(t, nil)

	_, err := runCLI(t, dataDir, "", "log", "add", "--mood", "grumpy")
	if err == nil || !strings.Contains(err.Error(), "unknown mood") {
		t.Errorf("Expected unknown mood error, got %v", err)
	}
}

func TestLogAddRejectsBadSleep(t *testing.T) {
	dataDir := setupCLI(t, nil)

	for _, sleep := range []string{"30", "-2", "NaN", "Inf"} {
		if _, err := runCLI(t, dataDir, "", "log", "add", "--mood", "sad", "--sleep", sleep); err == nil {
			t.Errorf("Expected error for --sleep %s", sleep)
		}
	}
	if _, err := runCLI(t, dataDir, "", "log", "add", "--mood", "sad", "--steps", "-5"); err == nil {
		t.Error("Expected error for negative steps")
	}

	out, _ := runCLI(t, dataDir, "", "log", "list")
	if !strings.Contains(out, "No entries found.") {
		t.Errorf("rejected entries should not be stored, got:\n%s", out)
	}
}

func TestLogClear(t *testing.T) {
	dataDir := setupCLI(t, nil)
	_, _ = runCLI(t, dataDir, "", "log", "add", "--mood", "sad")

	out, err := runCLI(t, dataDir, "n\n", "log", "clear")
	if err != nil {
		t.Fatalf("log clear failed: %v", err)
	}
	if !strings.Contains(out, "Canceled.") {
		t.Errorf("Expected cancel, got:\n%s", out)
	}

	if _, err := runCLI(t, dataDir, "", "log", "clear", "--yes"); err != nil {
		t.Fatalf("log clear --yes failed: %v", err)
	}
	out, _ = runCLI(t, dataDir, "", "log", "list")
	if !strings.Contains(out, "No entries found.") {
		t.Errorf("Expected empty log, got:\n%s", out)
	}
}

func TestTipCategory(t *testing.T) {
	dataDir := setupCLI(t, nil)

	out, err := runCLI(t, dataDir, "", "tip", "--category", "hydration")
	if err != nil {
		t.Fatalf("tip failed: %v", err)
	}
	if !strings.Contains(out, "Hydration") {
		t.Errorf("Expected a hydration tip, got:\n%s", out)
	}

	out, _ = runCLI(t, dataDir, "", "tip", "--category", "astrology")
	if !strings.Contains(out, "No tips available for the category 'astrology'.") {
		t.Errorf("Expected placeholder, got:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(dataDir, "tip_log.csv"))
	if err != nil {
		t.Fatalf("tip log not written: %v", err)
	}
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("Expected 2 tip log rows, got %d", n)
	}
}

func TestTipCategoriesList(t *testing.T) {
	dataDir := setupCLI(t, nil)

	out, err := runCLI(t, dataDir, "", "tip", "--categories")
	if err != nil {
		t.Fatalf("tip --categories failed: %v", err)
	}
	if !strings.Contains(out, "Sleep") || !strings.Contains(out, "Exercise") {
		t.Errorf("unexpected categories:\n%s", out)
	}
}

func fakeOllama(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			http.Error(w, "model not found", status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"model": "mistral", "response": reply, "done": true})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAskAndHistory(t *testing.T) {
	srv := fakeOllama(t, http.StatusOK, "Try a 20 minute walk\nafter lunch.")
	dataDir := setupCLI(t, &config.Config{Ollama: &config.OllamaSettings{URL: srv.URL}})

	out, err := runCLI(t, dataDir, "", "ask", "how", "do", "I", "get", "more", "energy?")
	if err != nil {
		t.Fatalf("ask failed: %v", err)
	}
	if !strings.Contains(out, "Try a 20 minute walk after lunch.") {
		t.Errorf("Expected flattened reply, got:\n%s", out)
	}

	out, err = runCLI(t, dataDir, "", "ask", "show me the last 1 chats")
	if err != nil {
		t.Fatalf("recall failed: %v", err)
	}
	if !strings.Contains(out, "You (") || !strings.Contains(out, "how do I get more energy?") {
		t.Errorf("Expected recalled exchange, got:\n%s", out)
	}

	out, _ = runCLI(t, dataDir, "", "history")
	if strings.Count(out, "\n") != 2 {
		t.Errorf("Expected 2 turns after a recall, got:\n%s", out)
	}

	if _, err := runCLI(t, dataDir, "", "history", "clear", "-y"); err != nil {
		t.Fatalf("history clear failed: %v", err)
	}
	out, _ = runCLI(t, dataDir, "", "history")
	if !strings.Contains(out, "No previous chat found.") {
		t.Errorf("Expected empty history, got:\n%s", out)
	}
}

func TestAskModelFailure(t *testing.T) {
	srv := fakeOllama(t, http.StatusInternalServerError, "")
	dataDir := setupCLI(t, &config.Config{Ollama: &config.OllamaSettings{URL: srv.URL}})

	out, err := runCLI(t, dataDir, "", "ask", "hello?")
	if err != nil {
		t.Fatalf("ask should report failures as a reply, got error %v", err)
	}
	if !strings.HasPrefix(out, "❌ Coach error:") {
		t.Errorf("Expected coach error reply, got:\n%s", out)
	}
}

func TestAskRequiresQuestion(t *testing.T) {
	dataDir := setupCLI(t, nil)

	if _, err := runCLI(t, dataDir, "", "ask"); err == nil {
		t.Error("Expected error without a question")
	}
}

func TestSummary(t *testing.T) {
	dataDir := setupCLI(t, nil)
	_, _ = runCLI(t, dataDir, "", "log", "add", "--mood", "happy", "--sleep", "7", "--steps", "1000")
	_, _ = runCLI(t, dataDir, "", "log", "add", "--mood", "happy", "--sleep", "8")

	out, err := runCLI(t, dataDir, "", "summary")
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	for _, want := range []string{"Avg sleep: 7.5 h", "Avg steps: 1000", "Happy", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestExportToFile(t *testing.T) {
	dataDir := setupCLI(t, nil)
	_, _ = runCLI(t, dataDir, "", "log", "add", "--mood", "energetic", "--date", "2025-02-01")

	path := filepath.Join(t.TempDir(), "backup.json")
	if _, err := runCLI(t, dataDir, "", "export", "json", "-o", path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	var export storage.ExportData
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(export.Entries) != 1 || export.Entries[0].Mood != "Energetic" {
		t.Errorf("unexpected export: %+v", export.Entries)
	}

	if _, err := runCLI(t, dataDir, "", "export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestSQLiteBackend(t *testing.T) {
	dataDir := setupCLI(t, &config.Config{Backend: "sqlite"})

	if _, err := runCLI(t, dataDir, "", "log", "add", "--mood", "stressed"); err != nil {
		t.Fatalf("log add failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "coach.db")); err != nil {
		t.Errorf("Expected coach.db: %v", err)
	}

	out, _ := runCLI(t, dataDir, "", "log", "list")
	if !strings.Contains(out, "Stressed") {
		t.Errorf("Expected entry from sqlite, got:\n%s", out)
	}
}

func TestSpeakWritesAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ID3-audio"))
	}))
	defer srv.Close()

	dataDir := setupCLI(t, &config.Config{TTS: &config.TTSSettings{URL: srv.URL}})

	out, err := runCLI(t, dataDir, "", "speak", "drink", "water")
	if err != nil {
		t.Fatalf("speak failed: %v", err)
	}
	want := filepath.Join(dataDir, "audio", "response.mp3")
	if !strings.Contains(out, want) {
		t.Errorf("Expected audio path in output, got:\n%s", out)
	}
	data, err := os.ReadFile(want)
	if err != nil || string(data) != "ID3-audio" {
		t.Errorf("audio file = %q, %v", data, err)
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	dataDir := setupCLI(t, nil)

	if _, err := runCLI(t, dataDir, "", "transcribe", filepath.Join(dataDir, "nope.wav")); err == nil {
		t.Error("Expected error for missing audio file")
	}
}

func TestNeedsStorage(t *testing.T) {
	if needsStorage(speakCmd) || needsStorage(installSkillCmd) {
		t.Error("voice and skill commands should not open storage")
	}
	if !needsStorage(logAddCmd) || !needsStorage(historyClearCmd) {
		t.Error("log and history commands should open storage")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string no truncation", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact length", input: "hello", maxLen: 5, want: "hello"},
		{name: "needs truncation", input: "hello world this is a long string", maxLen: 10, want: "hello w..."},
		{name: "multibyte", input: "café au lait", maxLen: 7, want: "café..."},
		{name: "empty string", input: "", maxLen: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"hi", 5, "hi   "},
		{"hello", 5, "hello"},
		{"hello world", 5, "hello world"},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestConfirm(t *testing.T) {
	for input, want := range map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false} {
		got, err := confirm(strings.NewReader(input), &bytes.Buffer{}, "ok?")
		if err != nil {
			t.Fatalf("confirm(%q) error: %v", input, err)
		}
		if got != want {
			t.Errorf("confirm(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestMigrateToSQLite(t *testing.T) {
	dataDir := setupCLI(t, nil)
	_, _ = runCLI(t, dataDir, "", "log", "add", "--mood", "happy", "--date", "2025-06-01")

	out, err := runCLI(t, dataDir, "", "migrate", "--to", "sqlite", "--dry-run")
	if err != nil {
		t.Fatalf("migrate --dry-run failed: %v", err)
	}
	if !strings.Contains(out, "Would copy 1 entries") {
		t.Errorf("unexpected dry run output:\n%s", out)
	}

	if _, err := runCLI(t, dataDir, "", "migrate", "--to", "sqlite"); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	out, _ = runCLI(t, dataDir, "", "--backend", "sqlite", "log", "list")
	if !strings.Contains(out, "2025-06-01") {
		t.Errorf("Expected migrated entry, got:\n%s", out)
	}

	// A second run refuses to write into a non-empty destination
	if _, err := runCLI(t, dataDir, "", "migrate", "--to", "sqlite"); err == nil {
		t.Error("Expected error migrating into non-empty backend")
	}
}

func TestAskHelpRecallExamplesTriggerRecall(t *testing.T) {
	start := strings.Index(askCmd.Long, "Asking for past answers")
	end := strings.Index(askCmd.Long, "replays")
	if start < 0 || end < start {
		t.Fatalf("recall paragraph not found in help:\n%s", askCmd.Long)
	}

	examples := regexp.MustCompile(`"([^"]+)"`).FindAllStringSubmatch(askCmd.Long[start:end], -1)
	if len(examples) == 0 {
		t.Fatal("Expected quoted recall examples in help")
	}
	for _, m := range examples {
		if _, ok := coach.ParseRecall(m[1]); !ok {
			t.Errorf("help example %q is not a recall request", m[1])
		}
	}
}
