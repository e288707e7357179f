package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrateCommand(t *testing.T) {
	tests := []struct {
		name           string
		args           []string
		wantErr        bool
		expectedOutput string
	}{
		{
			name:           "migrate command with help",
			args:           []string{"migrate", "--help"},
			wantErr:        false,
			expectedOutput: "Manage database migrations",
		},
		{
			name:           "migrate up subcommand",
			args:           []string{"migrate", "up", "--help"},
			wantErr:        false,
			expectedOutput: "Apply all pending database migrations",
		},
		{
			name:           "migrate status subcommand",
			args:           []string{"migrate", "status", "--help"},
			wantErr:        false,
			expectedOutput: "Display the current status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeCommand(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.expectedOutput != "" && !strings.Contains(output, tt.expectedOutput) {
				t.Errorf("Expected output to contain %q, got %q", tt.expectedOutput, output)
			}
		})
	}
}

func TestMigrateCommandSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	migrateCmd, _, err := cmd.Find([]string{"migrate"})
	if err != nil {
		t.Fatalf("Failed to find migrate command: %v", err)
	}

	// Check that subcommands exist
	expectedSubcommands := []string{"up", "status"}
	for _, subCmd := range expectedSubcommands {
		found := false
		for _, child := range migrateCmd.Commands() {
			if child.Name() == subCmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected migrate command to have %q subcommand", subCmd)
		}
	}
}

func TestMigrateUpAndStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	output, err := executeCommand(t, "migrate", "status", "--db", path)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(output, "search_records") || !strings.Contains(output, "pending") {
		t.Errorf("Expected pending search_records table, got %q", output)
	}

	output, err = executeCommand(t, "migrate", "up", "--dry-run", "--db", path)
	if err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if !strings.Contains(output, "Dry run mode") || !strings.Contains(output, "1 of 1 table(s) pending") {
		t.Errorf("Expected dry run to leave the table pending, got %q", output)
	}

	if _, err := executeCommand(t, "migrate", "up", "--db", path); err != nil {
		t.Fatalf("up failed: %v", err)
	}

	output, err = executeCommand(t, "migrate", "status", "--db", path)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(output, "applied") || !strings.Contains(output, "0 of 1 table(s) pending") {
		t.Errorf("Expected applied search_records table, got %q", output)
	}
}
