package service

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// HistoryParser reads plain history log files back into structured
// entries. Parsed files are cached by path and invalidated by modification
// time, so repeated reads of an unchanged file cost one stat call.
type HistoryParser struct {
	cache *cache.Cache
}

type parsedFile struct {
	mtime   time.Time
	entries []HistoryEntry
}

func NewHistoryParser() *HistoryParser {
	return &HistoryParser{cache: cache.New(cache.NoExpiration, 0)}
}

// Parse returns the entries of the history file at path, newest first.
func (p *HistoryParser) Parse(path string) ([]HistoryEntry, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if cached, found := p.cache.Get(path); found {
		pf := cached.(parsedFile)
		if pf.mtime.Equal(fi.ModTime()) {
			return pf.entries, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []HistoryEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Newest first, matching the order history views display.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	p.cache.Set(path, parsedFile{mtime: fi.ModTime(), entries: entries}, cache.NoExpiration)
	return entries, nil
}

// ParseLine parses one line in the format emitted by FormatEntry.
func ParseLine(line string) (HistoryEntry, error) {
	lp := lineParser{line: line}

	stampBlock, err := lp.block()
	if err != nil {
		return HistoryEntry{}, err
	}
	stamp, err := parseStamp(stampBlock)
	if err != nil {
		return HistoryEntry{}, err
	}

	user, err := lp.block()
	if err != nil {
		return HistoryEntry{}, err
	}

	objBlock, err := lp.block()
	if err != nil {
		return HistoryEntry{}, err
	}
	objType, objID, err := parseObjectRef(objBlock)
	if err != nil {
		return HistoryEntry{}, err
	}

	action, err := lp.block()
	if err != nil {
		return HistoryEntry{}, err
	}

	return HistoryEntry{
		Time:       stamp,
		User:       user,
		ObjectType: objType,
		ObjectID:   objID,
		Action:     action,
		Args:       lp.rest(),
	}, nil
}

// parseObjectRef splits a "TypeName:pk" reference.
func parseObjectRef(block string) (string, uint, error) {
	typ, pk, ok := strings.Cut(block, ":")
	if !ok {
		return "", 0, fmt.Errorf("malformed object reference %q", block)
	}
	id, err := strconv.ParseUint(pk, 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("malformed object id %q", block)
	}
	return typ, uint(id), nil
}

func parseStamp(block string) (time.Time, error) {
	var parts []int
	for _, chunk := range strings.Split(block, " ") {
		for _, s := range strings.Split(chunk, ".") {
			n, err := strconv.Atoi(s)
			if err != nil {
				return time.Time{}, fmt.Errorf("malformed timestamp %q", block)
			}
			parts = append(parts, n)
		}
	}
	if len(parts) != 6 {
		return time.Time{}, fmt.Errorf("malformed timestamp %q", block)
	}
	return time.Date(parts[0], time.Month(parts[1]), parts[2],
		parts[3], parts[4], parts[5], 0, time.Local), nil
}

// lineParser walks the bracketed blocks of one history line.
type lineParser struct {
	line string
	pos  int
}

func (lp *lineParser) block() (string, error) {
	start := strings.Index(lp.line[lp.pos:], "[")
	if start == -1 {
		return "", fmt.Errorf("missing block start in %q", lp.line)
	}
	start += lp.pos + 1
	stop := strings.Index(lp.line[start:], "]")
	if stop == -1 {
		return "", fmt.Errorf("missing block end in %q", lp.line)
	}
	stop += start
	lp.pos = stop + 1
	return lp.line[start:stop], nil
}

func (lp *lineParser) rest() string {
	return strings.TrimSpace(lp.line[lp.pos:])
}
