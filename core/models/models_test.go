package models

import (
	"errors"
	"slices"
	"testing"
)

func TestSyncRequestAffected(t *testing.T) {
	t.Parallel()

	req := SyncRequest{
		Added:     []string{"a.cs", "b.cs"},
		Deleted:   []string{"b.cs", "c.cs"},
		Moved:     []string{"d.cs"},
		MovedFrom: []string{"old/d.cs", "a.cs"},
		Imported:  []string{"e.cs"},
	}

	got := req.Affected()
	want := []string{"a.cs", "b.cs", "c.cs", "d.cs", "old/d.cs"}
	if !slices.Equal(got, want) {
		t.Errorf("Affected() = %v, want %v", got, want)
	}
}

func TestSyncRequestIsEmpty(t *testing.T) {
	t.Parallel()

	if !(SyncRequest{}).IsEmpty() {
		t.Error("zero SyncRequest should be empty")
	}
	if (SyncRequest{Imported: []string{"x.cs"}}).IsEmpty() {
		t.Error("request with imported files should not be empty")
	}
}

func TestSyncReport(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	report := SyncReport{Documents: []DocumentResult{
		{TargetPath: "/p/Game.sln"},
		{TargetPath: "/p/A.csproj"},
		{TargetPath: "/p/B.csproj", Err: boom},
	}}

	if report.OK() {
		t.Error("OK() = true with a failed document")
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].TargetPath != "/p/B.csproj" {
		t.Errorf("Failed() = %v, want only /p/B.csproj", failed)
	}
	if got, want := report.Written(), []string{"/p/Game.sln", "/p/A.csproj"}; !slices.Equal(got, want) {
		t.Errorf("Written() = %v, want %v", got, want)
	}
	if !(SyncReport{}).OK() {
		t.Error("empty report should be OK")
	}
}
