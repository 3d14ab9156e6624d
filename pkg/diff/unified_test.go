package diff

import (
	"strings"
	"testing"
)

func TestUnified(t *testing.T) {
	before := []byte("<hudson>\n  <clouds/>\n</hudson>\n")
	after := []byte("<hudson>\n  <clouds>\n    <entry/>\n  </clouds>\n</hudson>\n")

	t.Run("identical inputs produce no diff", func(t *testing.T) {
		lines, err := Unified(before, before, "config.xml", "config.xml")
		if err != nil {
			t.Fatalf("Unified failed: %v", err)
		}
		if len(lines) != 0 {
			t.Errorf("Expected empty diff, got %d lines", len(lines))
		}
	})

	t.Run("changed input produces hunks", func(t *testing.T) {
		lines, err := Unified(before, after, "config.xml", "config.xml")
		if err != nil {
			t.Fatalf("Unified failed: %v", err)
		}
		if len(lines) == 0 {
			t.Fatal("Expected diff lines, got none")
		}
		if !strings.HasPrefix(lines[0], "---") {
			t.Errorf("Expected unified header, got %q", lines[0])
		}
		var added bool
		for _, line := range lines {
			if strings.HasPrefix(line, "+") && strings.Contains(line, "<entry/>") {
				added = true
			}
			if strings.HasSuffix(line, "\n") {
				t.Errorf("Line retains trailing newline: %q", line)
			}
		}
		if !added {
			t.Errorf("Expected an addition for <entry/>, got:\n%s", strings.Join(lines, "\n"))
		}
	})
}
