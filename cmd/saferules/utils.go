package saferules

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// readRulesFile reads rule identifiers one per line, skipping blanks and
// comment lines.
func readRulesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no rule identifiers found in %q", path)
	}
	return ids, nil
}
