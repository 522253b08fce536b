package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heilocal/heilocal/internal/api"
	"github.com/heilocal/heilocal/internal/auth"
	"github.com/heilocal/heilocal/internal/locations"
	"github.com/heilocal/heilocal/internal/models"
	"github.com/heilocal/heilocal/internal/shared"
	tu "github.com/heilocal/heilocal/internal/testing"
)

func newTestRunner(t *testing.T, handler http.Handler) (*Runner, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	output := &bytes.Buffer{}
	client := api.NewClient(api.Opts{BaseURL: server.URL})

	runner := NewRunner(RunnerOpts{
		Config:    shared.DefaultConfig(),
		Client:    client,
		Auth:      auth.NewManager(client, nil),
		Locations: locations.NewService(client, nil),
		Output:    output,
	})

	return runner, output
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			client := api.NewClient(api.Opts{})

			runner := NewRunner(RunnerOpts{
				Config: config,
				Client: client,
				Logger: logger,
				Output: output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.client != client {
				t.Error("expected client to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.client == nil {
				t.Error("expected default client to be set")
			}
			if runner.auth == nil {
				t.Error("expected auth manager to be created")
			}
			if runner.locations == nil {
				t.Error("expected location service to be created")
			}
			if runner.engine == nil {
				t.Error("expected export engine to be created")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) != 4 {
			t.Fatalf("expected 4 top-level commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, c := range commands {
			names[c.Name] = true
		}
		for _, want := range []string{"setup", "auth", "locations", "feed"} {
			if !names[want] {
				t.Errorf("expected command %q to be registered", want)
			}
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		if err := runner.writeJSON(map[string]string{"k": "v"}, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"k":"v"`) {
			t.Errorf("unexpected output %q", output.String())
		}
	})

	t.Run("writePlain Surfaces Writer Failures", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

		if err := runner.writePlain("hello"); err == nil {
			t.Error("expected write error to surface")
		}
		if err := runner.writeJSON(map[string]string{}, false); err == nil {
			t.Error("expected write error to surface")
		}
	})
}

func TestRunnerActions(t *testing.T) {
	t.Run("Locations List Renders Rows", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/locations", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]models.Location{
				{ID: "1", Name: "Oodi", Category: "Library", Rating: 4.9, Likes: 5},
			})
		})

		runner, output := newTestRunner(t, mux)

		cmd := locationsCommand(runner)
		if err := cmd.Run(context.Background(), []string{"locations", "list"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Oodi") {
			t.Errorf("expected location row, got %q", output.String())
		}
	})

	t.Run("Locations List JSON Output", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/locations", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]models.Location{{ID: "1", Name: "Oodi"}})
		})

		runner, output := newTestRunner(t, mux)

		cmd := locationsCommand(runner)
		if err := cmd.Run(context.Background(), []string{"locations", "list", "--json"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), `"name":"Oodi"`) {
			t.Errorf("expected JSON output, got %q", output.String())
		}
	})

	t.Run("Auth Status While Anonymous", func(t *testing.T) {
		runner, output := newTestRunner(t, http.NewServeMux())

		cmd := authCommand(runner)
		if err := cmd.Run(context.Background(), []string{"auth", "status"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Not signed in") {
			t.Errorf("expected anonymous status, got %q", output.String())
		}
	})

	t.Run("Feed Refuses An Anonymous Session", func(t *testing.T) {
		runner, _ := newTestRunner(t, http.NewServeMux())

		cmd := feedCommand(runner)
		err := cmd.Run(context.Background(), []string{"feed"})
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Like Requires An Id", func(t *testing.T) {
		runner, _ := newTestRunner(t, http.NewServeMux())

		cmd := locationsCommand(runner)
		if err := cmd.Run(context.Background(), []string{"locations", "like"}); err == nil {
			t.Error("expected missing argument error")
		}
	})
}
