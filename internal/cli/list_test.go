package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ksyq12/phpvhost/internal/config"
)

func TestRunList(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*testing.T, *TestHelper)
		validate func(*testing.T, string)
	}{
		{
			name: "list multiple projects",
			setup: func(t *testing.T, h *TestHelper) {
				store := h.Tools().Store
				root := h.ProjectDir("shop/public")
				if _, _, err := store.Write("shop.test", root, "/c.pem", "/k.pem"); err != nil {
					t.Fatal(err)
				}
				if _, _, err := store.Write("gone.test", filepath.Join(h.Root, "nowhere"), "/c.pem", "/k.pem"); err != nil {
					t.Fatal(err)
				}
			},
			validate: func(t *testing.T, out string) {
				for _, want := range []string{"DOMAIN", "gone.test", "shop.test", "Active", "Missing"} {
					if !strings.Contains(out, want) {
						t.Errorf("output missing %q:\n%s", want, out)
					}
				}
				if strings.Index(out, "gone.test") > strings.Index(out, "shop.test") {
					t.Error("projects should be sorted by domain")
				}
			},
		},
		{
			name: "list empty",
			validate: func(t *testing.T, out string) {
				if !strings.Contains(out, "No projects registered") {
					t.Errorf("unexpected output %q", out)
				}
			},
		},
		{
			name: "ignores foreign config files",
			setup: func(t *testing.T, h *TestHelper) {
				dir := h.Layout.VHostDir
				if err := os.MkdirAll(dir, 0755); err != nil {
					t.Fatal(err)
				}
				if err := os.WriteFile(filepath.Join(dir, "ssl.conf"), []byte("Listen 443"), 0644); err != nil {
					t.Fatal(err)
				}
			},
			validate: func(t *testing.T, out string) {
				if strings.Contains(out, "ssl.conf") || !strings.Contains(out, "No projects registered") {
					t.Errorf("unexpected output %q", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			defer resetFlags()
			h := NewTestHelper(t)
			if tt.setup != nil {
				tt.setup(t, h)
			}

			var err error
			out := captureStdout(func() {
				err = runList(nil, nil)
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, out)
		})
	}
}

func TestRunListJSON(t *testing.T) {
	resetFlags()
	defer resetFlags()
	h := NewTestHelper(t)
	jsonOutput = true

	root := h.ProjectDir("shop/public")
	if _, _, err := h.Tools().Store.Write("shop.test", root, "/c.pem", "/k.pem"); err != nil {
		t.Fatal(err)
	}

	var err error
	out := captureStdout(func() {
		err = runList(nil, nil)
	})
	if err != nil {
		t.Fatal(err)
	}

	var projects []config.Project
	if err := json.Unmarshal([]byte(out), &projects); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(projects) != 1 || projects[0].Domain != "shop.test" || projects[0].Status != config.StatusActive {
		t.Errorf("unexpected projects %+v", projects)
	}
}

func TestRunListJSONEmpty(t *testing.T) {
	resetFlags()
	defer resetFlags()
	NewTestHelper(t)
	jsonOutput = true

	out := captureStdout(func() {
		_ = runList(nil, nil)
	})
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("expected [], got %q", out)
	}
}
