package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes args against rootCmd with a fresh sqlite database per test.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))
	t.Setenv("GORM_LOG", "off")
}

func TestMigrateCreateLocationAndOperator(t *testing.T) {
	useSQLite(t)

	out, err := run(t, "db:migrate")
	if err != nil || !strings.Contains(out, "Schema up to date (sqlite)") {
		t.Fatalf("db:migrate: out = %q err = %v", out, err)
	}

	out, err = run(t, "locations:new", "--code", "A-01", "--capacity", "12.5")
	if err != nil || !strings.Contains(out, "Created location A-01 (A-01), capacity 12.5") {
		t.Fatalf("locations:new: out = %q err = %v", out, err)
	}
	if _, err := run(t, "locations:new", "--code", "A-01", "--name", "again", "--capacity", "1"); err == nil {
		t.Error("duplicate location code: want error")
	}

	out, err = run(t, "operators:create", "-u", "dana", "-g", "operators")
	if err != nil || !strings.Contains(out, "Created operator dana") {
		t.Fatalf("operators:create: out = %q err = %v", out, err)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Token: ") && len(strings.TrimPrefix(line, "Token: ")) != 32 {
			t.Errorf("token line = %q", line)
		}
	}
	if _, err := run(t, "operators:create", "-u", "eve", "-g", "admins"); err == nil {
		t.Error("unknown group: want error")
	}

	out, err = run(t, "stock:audit")
	if err != nil || !strings.Contains(out, "All batch totals match") {
		t.Errorf("stock:audit: out = %q err = %v", out, err)
	}
}

func TestItemsImportAndExport(t *testing.T) {
	useSQLite(t)
	if _, err := run(t, "db:migrate"); err != nil {
		t.Fatalf("db:migrate: %v", err)
	}
	csvPath := filepath.Join(t.TempDir(), "items.csv")
	os.WriteFile(csvPath, []byte("sku,name,packaging_volume\nP-1,Pasta,0.5\nP-2,Penne,bad\n"), 0o644)

	out, err := run(t, "items:import", "-f", csvPath)
	if err != nil {
		t.Fatalf("items:import: %v", err)
	}
	if !strings.Contains(out, "Created:     1") || !strings.Contains(out, "Skipped:     1") {
		t.Errorf("import report = %q", out)
	}

	xlsx := filepath.Join(t.TempDir(), "inv.xlsx")
	out, err = run(t, "inventory:export", "-o", xlsx)
	if err != nil || !strings.Contains(out, "Wrote "+xlsx) {
		t.Fatalf("inventory:export: out = %q err = %v", out, err)
	}
	if st, err := os.Stat(xlsx); err != nil || st.Size() == 0 {
		t.Errorf("workbook missing: %v", err)
	}
}

func TestGroupsList(t *testing.T) {
	out, err := run(t, "groups:list")
	if err != nil {
		t.Fatalf("groups:list: %v", err)
	}
	if !strings.Contains(out, "MANAGERS") || !strings.Contains(out, "OPERATORS") {
		t.Errorf("header missing: %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == "import_item" && (fields[1] != "x" || fields[2] != "-") {
			t.Errorf("import_item row = %q, want managers only", line)
		}
	}
}

func TestStockSimulate(t *testing.T) {
	out, err := run(t, "stock:simulate",
		"--location", "A-01=10", "--location", "B-01=4",
		"--volume", "2", "--in", "9", "--out", "3", "--preferred", "")
	if err != nil {
		t.Fatalf("stock:simulate: %v", err)
	}
	for _, want := range []string{
		"Placeable before inbound: 7",
		"Inbound 9: allocated 7, not shelved 2",
		"  + A-01 5",
		"  + B-01 2",
		"Outbound 3: removed 3 from locations",
		"  - A-01 3",
		"Batch total: 6",
		"  A-01: 2",
		"  B-01: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "stock:simulate", "--location", "A-01", "--in", "1"); err == nil {
		t.Error("malformed location: want error")
	}
}

func TestCronList(t *testing.T) {
	out, err := run(t, "cron:start", "--list")
	if err != nil {
		t.Fatalf("cron:start --list: %v", err)
	}
	for _, job := range []string{"nearexpiryscan", "stockaudit"} {
		if !strings.Contains(out, job) {
			t.Errorf("job %s missing from:\n%s", job, out)
		}
	}
}
