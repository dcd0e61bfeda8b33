package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ksyq12/phpvhost/internal/config"
	"github.com/ksyq12/phpvhost/internal/errors"
	"github.com/ksyq12/phpvhost/internal/logger"
)

func TestRunRegister(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		entry       string
		setup       func(*testing.T, *TestHelper)
		wantErr     bool
		errContains string
		validate    func(*testing.T, *TestHelper)
	}{
		{
			name: "default entry point",
			args: []string{"shop"},
			setup: func(t *testing.T, h *TestHelper) {
				h.ProjectDir("shop/public")
			},
			validate: func(t *testing.T, h *TestHelper) {
				tools := h.Tools()
				p, err := tools.Store.Get("shop.test")
				if err != nil {
					t.Fatalf("vhost not written: %v", err)
				}
				if p.DocumentRoot != filepath.Join(h.GetConfig().BasePath, "shop", "public") {
					t.Errorf("unexpected document root %s", p.DocumentRoot)
				}
				if ok, _ := tools.Hosts.Contains("shop.test"); !ok {
					t.Error("hosts entry missing")
				}
				if !tools.Certs.Exists("shop.test") {
					t.Error("certificate pair missing")
				}
			},
		},
		{
			name:  "custom entry point",
			args:  []string{"blog"},
			entry: "blog/web",
			setup: func(t *testing.T, h *TestHelper) {
				h.ProjectDir("blog/web")
			},
			validate: func(t *testing.T, h *TestHelper) {
				p, err := h.Tools().Store.Get("blog.test")
				if err != nil {
					t.Fatal(err)
				}
				if !strings.HasSuffix(p.DocumentRoot, filepath.Join("blog", "web")) {
					t.Errorf("unexpected document root %s", p.DocumentRoot)
				}
			},
		},
		{
			name:        "missing document root",
			args:        []string{"ghost"},
			wantErr:     true,
			errContains: "path does not exist",
			validate: func(t *testing.T, h *TestHelper) {
				if h.Tools().Store.Exists("ghost.test") {
					t.Error("vhost written for missing path")
				}
				if len(h.Exec.CallsTo("mkcert")) != 0 {
					t.Error("mkcert should not run")
				}
			},
		},
		{
			name:        "invalid name",
			args:        []string{"my shop"},
			wantErr:     true,
			errContains: "invalid project name",
		},
		{
			name: "restart failure still succeeds",
			args: []string{"shop"},
			setup: func(t *testing.T, h *TestHelper) {
				h.ProjectDir("shop/public")
				h.RestartErr = fmt.Errorf("exit status 1")
			},
			validate: func(t *testing.T, h *TestHelper) {
				if !h.Tools().Store.Exists("shop.test") {
					t.Error("vhost should be written")
				}
			},
		},
		{
			name: "layout failure",
			args: []string{"shop"},
			setup: func(t *testing.T, h *TestHelper) {
				h.ProjectDir("shop/public")
				deps.LayoutLoader = &MockLayoutLoader{Err: fmt.Errorf("unsupported platform: plan9")}
			},
			wantErr:     true,
			errContains: "unsupported platform",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			defer resetFlags()
			h := NewTestHelper(t)
			entryPoint = tt.entry
			if tt.setup != nil {
				tt.setup(t, h)
			}

			var err error
			captureStdout(func() {
				err = runRegister(nil, tt.args)
			})

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, h)
			}
		})
	}
}

func TestRunRegisterJSON(t *testing.T) {
	resetFlags()
	defer resetFlags()
	h := NewTestHelper(t)
	h.ProjectDir("shop/public")
	jsonOutput = true

	var err error
	out := captureStdout(func() {
		err = runRegister(nil, []string{"shop"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result CommandResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if !result.Success || result.Domain != "shop.test" || !result.Restart {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Message != "https://shop.test" {
		t.Errorf("unexpected message %s", result.Message)
	}
}

func TestRunRegisterRestartWarningShownOnce(t *testing.T) {
	resetFlags()
	defer resetFlags()
	h := NewTestHelper(t)
	h.ProjectDir("shop/public")
	h.RestartErr = fmt.Errorf("exit status 1")

	var logs bytes.Buffer
	logger.SetOutput(&logs)
	logger.Init(false)
	defer logger.SetOutput(nil)

	var err error
	out := captureStdout(func() {
		err = runRegister(nil, []string{"shop"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := strings.Count(out, "restart the web server manually"); n != 1 {
		t.Errorf("restart warning printed %d times:\n%s", n, out)
	}
	if logs.Len() != 0 {
		t.Errorf("warnings should not be logged without --verbose: %s", logs.String())
	}
}

func TestRunRegisterTwice(t *testing.T) {
	resetFlags()
	defer resetFlags()
	h := NewTestHelper(t)
	h.ProjectDir("shop/public")

	for i := 0; i < 2; i++ {
		var err error
		captureStdout(func() {
			err = runRegister(nil, []string{"shop"})
		})
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	n, err := h.Tools().Hosts.Count("shop.test")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 hosts line, got %d", n)
	}
}

func TestEnsureBasePath(t *testing.T) {
	tests := []struct {
		name        string
		cfg         *config.Config
		flag        string
		interactive bool
		stdin       string
		wantBase    string
		wantSaves   int
		wantErr     bool
	}{
		{
			name:     "already set",
			cfg:      &config.Config{BasePath: "/srv"},
			wantBase: "/srv",
		},
		{
			name:      "flag overrides",
			cfg:       &config.Config{BasePath: "/srv"},
			flag:      "/home/dev/Projects/",
			wantBase:  "/home/dev/Projects",
			wantSaves: 1,
		},
		{
			name:    "relative flag rejected",
			cfg:     config.New(),
			flag:    "Projects",
			wantErr: true,
		},
		{
			name:        "prompted on terminal",
			cfg:         config.New(),
			interactive: true,
			stdin:       "/opt/www\n",
			wantBase:    "/opt/www",
			wantSaves:   1,
		},
		{
			name:        "empty answer",
			cfg:         config.New(),
			interactive: true,
			stdin:       "\n",
			wantErr:     true,
		},
		{
			name:    "not a terminal",
			cfg:     config.New(),
			wantErr: true,
		},
	}

	oldDeps := deps
	defer func() { deps = oldDeps }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &MockConfigLoader{Cfg: tt.cfg}
			deps = NewMockDeps().
				WithConfigLoader(loader).
				WithTerminal(tt.interactive).
				WithStdinInput(tt.stdin).
				Build()

			var err error
			captureStdout(func() {
				err = ensureBasePath(tt.cfg, tt.flag)
			})

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, errors.ErrInvalidDomain) {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.cfg.BasePath != tt.wantBase {
				t.Errorf("base path = %s, want %s", tt.cfg.BasePath, tt.wantBase)
			}
			if loader.SaveCalls != tt.wantSaves {
				t.Errorf("save calls = %d, want %d", loader.SaveCalls, tt.wantSaves)
			}
		})
	}
}

func TestRunRegisterPromptsForBasePath(t *testing.T) {
	resetFlags()
	defer resetFlags()
	h := NewTestHelper(t)
	base := filepath.Join(h.Root, "projects")
	if err := os.MkdirAll(filepath.Join(base, "shop", "public"), 0755); err != nil {
		t.Fatal(err)
	}
	h.MockConfig.Cfg = config.New()
	h.SetTerminal(true)
	h.SetStdinInput(base + "\n")

	var err error
	captureStdout(func() {
		err = runRegister(nil, []string{"shop"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.GetConfig().BasePath != base {
		t.Errorf("base path not saved: %s", h.GetConfig().BasePath)
	}
}
