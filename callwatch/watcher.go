package callwatch

import (
	"bufio"
	"context"
	"io"
	"log"
	"strings"
)

// Watch reads one transition per line from r until EOF or ctx is done and
// reports every missed call. Report failures are logged and watching continues.
func Watch(ctx context.Context, r io.Reader, tracker *Tracker, reporter MissedCallReporter) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		transition, err := ParseTransition(line)
		if err != nil {
			log.Printf("Skipping line: %v", err)
			continue
		}

		phone, missed := tracker.Observe(transition)
		if !missed {
			continue
		}

		log.Printf("Missed call from %s", phone)
		result, err := reporter.ReportMissedCall(ctx, phone)
		if err != nil {
			log.Printf("Report for %s failed: %v", phone, err)
			continue
		}
		log.Printf("Report for %s accepted: %s", phone, result.Message)
	}
	return scanner.Err()
}
