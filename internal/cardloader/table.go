package cardloader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var ErrNoTable = errors.New("no markdown table found")

var (
	separatorCellRe = regexp.MustCompile(`^:?-{3,}:?$`)
	linkRe          = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	brRe            = regexp.MustCompile(`(?i)<br\s*/?>`)
	emphasisRe      = regexp.MustCompile(`(\*\*|\*|~~)([^*~]+)(\*\*|\*|~~)`)
	underscoreRe    = regexp.MustCompile(`(^|\s)__?([^_\s][^_]*)__?(\s|$)`)
)

// Table is a parsed GitHub-flavoured Markdown table.
type Table struct {
	Headers []string
	Rows    [][]string
	// Lines holds the source line number of each row.
	Lines []int
}

// splitRow splits a table line on unescaped pipes.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	if strings.HasSuffix(line, "|") && !strings.HasSuffix(line, `\|`) {
		line = line[:len(line)-1]
	}

	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cur.WriteByte('|')
			i++
		case line[i] == '|':
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(line[i])
		}
	}
	cells = append(cells, cur.String())

	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// StripInline removes inline Markdown markup and keeps the text.
func StripInline(s string) string {
	s = brRe.ReplaceAllString(s, " ")
	s = linkRe.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "`", "")
	for {
		next := emphasisRe.ReplaceAllString(s, "$2")
		next = underscoreRe.ReplaceAllString(next, "$1$2$3")
		if next == s {
			break
		}
		s = next
	}
	return strings.Join(strings.Fields(s), " ")
}

func isSeparator(cells []string) bool {
	for _, c := range cells {
		if !separatorCellRe.MatchString(strings.ReplaceAll(c, " ", "")) {
			return false
		}
	}
	return len(cells) > 0
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// ParseTable reads the first table in r. Text around it is ignored.
func ParseTable(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var t *Table
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if t == nil {
			if !isTableLine(line) {
				continue
			}
			headers := splitRow(line)
			if !scanner.Scan() {
				break
			}
			lineNo++
			if !isSeparator(splitRow(scanner.Text())) {
				return nil, fmt.Errorf("line %d: header row is not followed by a separator", lineNo)
			}
			for i, h := range headers {
				headers[i] = StripInline(h)
			}
			t = &Table{Headers: headers}
			continue
		}

		if !isTableLine(line) {
			break
		}
		cells := splitRow(line)
		if len(cells) != len(t.Headers) {
			return nil, fmt.Errorf("line %d: row has %d cells, header has %d", lineNo, len(cells), len(t.Headers))
		}
		for i, c := range cells {
			cells[i] = StripInline(c)
		}
		t.Rows = append(t.Rows, cells)
		t.Lines = append(t.Lines, lineNo)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNoTable
	}
	return t, nil
}
