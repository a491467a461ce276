package cmd

import (
	"strings"
	"testing"
)

func Test_defaultExportFilename(t *testing.T) {
	plain := defaultExportFilename(false)
	if !strings.HasPrefix(plain, "wordsnap-backup-") || !strings.HasSuffix(plain, ".jsonl") {
		t.Fatalf("unexpected filename: %q", plain)
	}
	gz := defaultExportFilename(true)
	if !strings.HasSuffix(gz, ".jsonl.gz") {
		t.Fatalf("unexpected gzip filename: %q", gz)
	}
}
