package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fulmenhq/gofulmen/appidentity"
)

func TestVersionHandlerIncludesIdentityMetadata(t *testing.T) {
	SetVersionInfo("0.2.0", "deadbee", "2026-08-31T12:00:00Z")
	SetAppIdentity(&appidentity.Identity{
		BinaryName: "searchlens",
	})
	t.Cleanup(func() { SetAppIdentity(nil) })

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()

	VersionHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp VersionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.App.Name != "searchlens" {
		t.Fatalf("expected app name searchlens, got %s", resp.App.Name)
	}

	if resp.App.Version != "0.2.0" {
		t.Fatalf("expected version 0.2.0, got %s", resp.App.Version)
	}

	if resp.App.Commit != "deadbee" {
		t.Fatalf("expected commit deadbee, got %s", resp.App.Commit)
	}

	if resp.Dependencies.Gofulmen == "" || resp.Dependencies.Crucible == "" {
		t.Fatal("expected dependency versions to be populated")
	}

	if resp.Runtime.Platform == "" {
		t.Fatal("expected runtime platform to be populated")
	}
}

func TestVersionHandlerFallsBackToExecutableName(t *testing.T) {
	SetAppIdentity(nil)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()

	VersionHandler(rec, req)

	var resp VersionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.App.Name == "" {
		t.Fatal("expected a fallback app name")
	}
}
