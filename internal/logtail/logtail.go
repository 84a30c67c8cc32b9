package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file is empty.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level is the severity parsed from a log line.
type Level int

const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// Entry is one parsed log line.
type Entry struct {
	Time    string
	Level   Level
	Message string
	Raw     string
}

var levelTokens = map[string]Level{
	"DEBU": LevelDebug, "DEBUG": LevelDebug,
	"INFO": LevelInfo,
	"WARN": LevelWarn, "WARNING": LevelWarn,
	"ERRO": LevelError, "ERROR": LevelError, "FATA": LevelError, "FATAL": LevelError,
}

// Parse splits a text-formatted log line of the form
// "2006/01/02 15:04:05 INFO message key=value". Lines that do not match
// keep their text in Message.
func Parse(line string) Entry {
	e := Entry{Raw: line, Message: line}
	fields := strings.Fields(line)
	for i, f := range fields {
		if i > 2 {
			break
		}
		lvl, ok := levelTokens[f]
		if !ok {
			continue
		}
		e.Level = lvl
		e.Time = strings.Join(fields[:i], " ")
		rest := line
		for j := 0; j <= i; j++ {
			rest = strings.TrimLeft(rest, " \t")
			rest = rest[len(fields[j]):]
		}
		e.Message = strings.TrimSpace(rest)
		break
	}
	return e
}
