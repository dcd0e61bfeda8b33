package cli

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRunShow(t *testing.T) {
	tests := []struct {
		name        string
		arg         string
		register    bool
		wantErr     bool
		errContains string
		contains    []string
	}{
		{
			name:     "registered project",
			arg:      "shop",
			register: true,
			contains: []string{"shop.test", "https://shop.test", "Active", "SSL:        enabled", "Hosts:      yes"},
		},
		{
			name:     "by domain",
			arg:      "shop.test",
			register: true,
			contains: []string{"Domain:     shop.test"},
		},
		{
			name:        "unknown project",
			arg:         "nope",
			wantErr:     true,
			errContains: "not registered",
		},
		{
			name:        "invalid name",
			arg:         "bad name",
			wantErr:     true,
			errContains: "invalid project name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			defer resetFlags()
			h := NewTestHelper(t)
			if tt.register {
				h.ProjectDir("shop/public")
				captureStdout(func() {
					if err := runRegister(nil, []string{"shop"}); err != nil {
						t.Errorf("register failed: %v", err)
					}
				})
			}

			var err error
			out := captureStdout(func() {
				err = runShow(nil, []string{tt.arg})
			})

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRunShowJSON(t *testing.T) {
	resetFlags()
	defer resetFlags()
	h := NewTestHelper(t)
	h.ProjectDir("shop/public")
	captureStdout(func() {
		if err := runRegister(nil, []string{"shop"}); err != nil {
			t.Fatalf("register failed: %v", err)
		}
	})
	jsonOutput = true

	var err error
	out := captureStdout(func() {
		err = runShow(nil, []string{"shop"})
	})
	if err != nil {
		t.Fatal(err)
	}

	var detail map[string]interface{}
	if err := json.Unmarshal([]byte(out), &detail); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if detail["domain"] != "shop.test" {
		t.Errorf("domain = %v", detail["domain"])
	}
	if detail["cert_exists"] != true || detail["in_hosts"] != true || detail["ssl"] != true {
		t.Errorf("unexpected detail %v", detail)
	}
	// the fake certificate is not PEM, so no expiry is reported
	if _, ok := detail["ssl_expires"]; ok {
		t.Error("ssl_expires should be omitted for unparseable certificates")
	}
}
