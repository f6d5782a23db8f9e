package detid

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ReadDetInfo loads a detector info file: one module per line, the
// first column a decimal DetId, anything after it ignored. Blank lines
// and #-comments are skipped.
func ReadDetInfo(filePath string) ([]DetId, error) {
	f, fileErr := os.Open(filePath)
	if fileErr != nil {
		return nil, fileErr
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Error closing det info file")
		}
	}()
	var ids []DetId
	var scanner = bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		raw, parseErr := strconv.ParseUint(fields[0], 10, 32)
		if parseErr != nil {
			return nil, parseErr
		}
		ids = append(ids, DetId(raw))
	}
	return ids, scanner.Err()
}
