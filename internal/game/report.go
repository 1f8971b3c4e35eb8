package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Ghost-Loop/internal/session"
)

// reportTail is how many SimLog lines the copied report ends with.
const reportTail = 40

// sessionReport renders the session and its current world as plain text
// for pasting into a bug report.
func sessionReport(s *session.Session) string {
	var sb strings.Builder
	st := s.Stats()
	fmt.Fprintf(&sb, "=== Ghost Loop session %s ===\n", s.ID())
	fmt.Fprintf(&sb, "Stage: %s  Screen: %s\n", s.Stage().Name, s.Screen())
	fmt.Fprintf(&sb, "Attempts: %d  Deaths: %d  Wins: %d\n", st.Attempts, st.Deaths, st.Wins)

	w := s.World()
	if w == nil {
		sb.WriteString("No world spawned yet.\n")
		return sb.String()
	}
	sl := w.SimLog()
	sb.WriteString(sl.Summary(w))

	entries := sl.Entries()
	if len(entries) > reportTail {
		entries = entries[len(entries)-reportTail:]
	}
	fmt.Fprintf(&sb, "--- Last %d events ---\n", len(entries))
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll
