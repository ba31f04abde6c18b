package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/provider"
	"github.com/ZaguanLabs/furigo/server"
	"github.com/ZaguanLabs/furigo/store"
)

// runCLI runs the command with an isolated config, the mock provider and an
// in-memory store.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FURIGO_PROVIDER", "mock")
	t.Setenv("FURIGO_STORE__TYPE", "memory")
	t.Setenv("FURIGO_LOG_LEVEL", "error")

	cfg := filepath.Join(t.TempDir(), "furigo.yml")
	var stdout, stderr bytes.Buffer
	err := run(append([]string{"--config", cfg}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func startHost(t *testing.T) (*server.Server, string) {
	t.Helper()

	var ctrl *furigo.Controller
	hub := server.NewHub(server.WithResponder(func(msg furigo.Message) (furigo.TranslationResult, bool) {
		return ctrl.Respond(msg)
	}))
	ctrl = furigo.NewController(furigo.NewTranslator(provider.NewMockProvider()), furigo.WithNotifier(hub))
	srv, err := server.New(server.Config{}, ctrl, hub, store.NewMemoryStore())
	if err != nil {
		t.Fatalf("server.New failed: %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Wait()
		hub.Close()
		ts.Close()
	})
	return srv, ts.URL
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"version"}, &stdout, &stderr)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(stdout.String(), "furigo "+furigo.FullVersion()+"\n") {
		t.Errorf("expected version output, got: %s", stdout.String())
	}
}

func TestRun_TranslateLearning(t *testing.T) {
	stdout, _, err := runCLI(t, "translate", "--to", "zh", "東京へ行く")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// mock reply has the learning field in Japanese with readings
	if strings.TrimSpace(stdout) != "東京(とうきょう)へ行(い)く" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestRun_TranslatePlain(t *testing.T) {
	stdout, _, err := runCLI(t, "translate", "--plain", "東京へ行く")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "去東京" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestRun_TranslateJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "translate", "--json", "--to", "ja", "我是老師")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out JSONOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if out.Direction != "ja" {
		t.Errorf("Direction = %q", out.Direction)
	}
	if out.PlainText != "私は先生です" {
		t.Errorf("PlainText = %q", out.PlainText)
	}
	if len(out.Readings) != 2 || out.Readings[1].Base != "先生" || out.Readings[1].Reading != "せんせい" {
		t.Errorf("Readings = %+v", out.Readings)
	}
}

func TestRun_TranslateStdin(t *testing.T) {
	t.Setenv("FURIGO_PROVIDER", "mock")
	t.Setenv("FURIGO_STORE__TYPE", "memory")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetIn(strings.NewReader("こんにちは\n"))
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "c.yml"), "translate", "--plain"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout.String()) != "你好" {
		t.Errorf("unexpected output: %q", stdout.String())
	}
}

func TestRun_TranslateFailure(t *testing.T) {
	stdout, _, err := runCLI(t, "translate", "--to", "zh", "知らない言葉")
	if err == nil {
		t.Fatal("expected error for a failed translation")
	}
	// mock has no reply for this text, so the result is the unavailable placeholder
	if !strings.Contains(stdout, furigo.UnavailableText(furigo.ToChinese)) {
		t.Errorf("expected placeholder, got %q", stdout)
	}
}

func TestRun_TranslateInvalidTarget(t *testing.T) {
	_, _, err := runCLI(t, "translate", "--to", "ko", "안녕")
	if err == nil || !strings.Contains(err.Error(), "unknown target") {
		t.Errorf("expected unknown target error, got %v", err)
	}
}

func TestRun_TranslateEmpty(t *testing.T) {
	_, _, err := runCLI(t, "translate", "   ")
	if err != furigo.ErrEmptySelection {
		t.Errorf("expected ErrEmptySelection, got %v", err)
	}
}

func TestRun_MissingAPIKey(t *testing.T) {
	t.Setenv("FURIGO_PROVIDER", "gemini")
	t.Setenv("FURIGO_GEMINI__API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	var stdout, stderr bytes.Buffer
	err := run([]string{"--config", filepath.Join(t.TempDir(), "c.yml"), "translate", "こんにちは"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "api key") {
		t.Errorf("expected api key error, got %v", err)
	}
}

func TestRun_ConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "furigo.yml")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"--config", path, "config", "init"}, &stdout, &stderr); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	err := run([]string{"--config", path, "config", "init"}, &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected refusal to overwrite, got %v", err)
	}

	if err := run([]string{"--config", path, "config", "init", "--force"}, &stdout, &stderr); err != nil {
		t.Errorf("config init --force failed: %v", err)
	}
}

func TestRun_MenuLocal(t *testing.T) {
	stdout, _, err := runCLI(t, "menu", "--local")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, id := range []string{furigo.MenuParentID, furigo.MenuToJapaneseID, furigo.MenuToChineseID} {
		if !strings.Contains(stdout, id) {
			t.Errorf("expected %s in menu output", id)
		}
	}
}

func TestRun_SelectAndPopup(t *testing.T) {
	_, url := startHost(t)

	stdout, _, err := runCLI(t, "select", "--host", url, "--to", "zh", "--wait", "東京へ行く")
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "東京(とうきょう)へ行(い)く" {
		t.Errorf("unexpected select output: %q", stdout)
	}

	stdout, _, err = runCLI(t, "popup", "--host", url, "--plain")
	if err != nil {
		t.Fatalf("popup failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "去東京" {
		t.Errorf("unexpected popup output: %q", stdout)
	}

	// the plain choice is remembered by the host
	stdout, _, err = runCLI(t, "popup", "--host", url)
	if err != nil {
		t.Fatalf("popup failed: %v", err)
	}
	if strings.TrimSpace(stdout) != "去東京" {
		t.Errorf("expected remembered plain mode, got %q", stdout)
	}
}
