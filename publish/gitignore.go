package publish

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"os"
	"strings"
)

// EnsureLines appends every line of lines that the file at path doesn't
// contain yet. Existing content is never rewritten, so the file stays
// untouched if nothing is missing. It returns the lines appended.
func EnsureLines(path string, lines []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	existing := make(map[string]bool)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		existing[strings.TrimRight(sc.Text(), "\r")] = true
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, l := range lines {
		if l == "" || existing[l] {
			continue
		}
		existing[l] = true
		missing = append(missing, l)
	}
	if len(missing) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	if len(data) > 0 && data[len(data)-1] != '\n' {
		buf.WriteByte('\n')
	}
	for _, l := range missing {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return nil, err
	}
	return missing, f.Close()
}
