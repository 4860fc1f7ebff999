// internal/feed/wire.go
package feed

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/tamzrod/panelmon/internal/ingest"
)

// Send writes one frame: every pair as "key=value\n", then "END\n".
// lineDelay paces the lines so a slow receiver keeps up; zero disables it.
func Send(w io.Writer, pairs []Pair, lineDelay time.Duration) error {
	bw := bufio.NewWriter(w)

	line := func(s string) error {
		if _, err := bw.WriteString(s); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}
		if lineDelay > 0 {
			time.Sleep(lineDelay)
		}
		return nil
	}

	for _, p := range pairs {
		if err := line(p.Key + "=" + p.Value + "\n"); err != nil {
			return fmt.Errorf("feed: write %s: %w", p.Key, err)
		}
	}
	if err := line(ingest.FlushSentinel + "\n"); err != nil {
		return fmt.Errorf("feed: write end: %w", err)
	}
	return nil
}
