package corpus

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/happyhackingspace/gsdmm/internal/htmlutil"
)

// ReadOptions controls how raw texts are pulled out of input files.
type ReadOptions struct {
	Format      string // "text", "csv", "jsonl" or "html"; empty or "auto" detects by extension
	TextColumn  string // CSV column (name or index) or JSONL field holding the text
	LabelColumn string // CSV column or JSONL field holding a reference label
	Selector    string // CSS selector for HTML input, empty for block fragments
}

const maxLineSize = 1024 * 1024

// Format resolves the input format of a file from an explicit override
// or, failing that, its extension: "csv", "jsonl", "html" or "text".
func Format(path, override string) string {
	if f := strings.ToLower(override); f != "" && f != "auto" {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".jsonl", ".ndjson":
		return "jsonl"
	case ".html", ".htm":
		return "html"
	default:
		return "text"
	}
}

// ReadFile loads one text per document from path. The format is taken from
// opts.Format, or detected from the file extension: .csv, .jsonl/.ndjson,
// .html/.htm, anything else line by line.
func ReadFile(path string, opts ReadOptions) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch Format(path, opts.Format) {
	case "csv":
		texts, _, err := ReadCSV(f, opts.TextColumn, "")
		return texts, err
	case "jsonl":
		texts, _, err := ReadJSONL(f, opts.TextColumn, "")
		return texts, err
	case "html":
		return ReadHTML(f, opts.Selector)
	default:
		return ReadLines(f)
	}
}

// ReadLabeled loads texts together with reference labels from a CSV or
// JSONL file. The label column defaults to "label".
func ReadLabeled(path string, opts ReadOptions) ([]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	labelCol := opts.LabelColumn
	if labelCol == "" {
		labelCol = "label"
	}
	switch fm := Format(path, opts.Format); fm {
	case "csv":
		return ReadCSV(f, opts.TextColumn, labelCol)
	case "jsonl":
		return ReadJSONL(f, opts.TextColumn, labelCol)
	default:
		return nil, nil, fmt.Errorf("labeled input needs csv or jsonl, got %q", fm)
	}
}

// ReadLines returns one document per non-blank line.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var texts []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			texts = append(texts, line)
		}
	}
	return texts, sc.Err()
}

// ReadCSV reads texts (and labels, when labelCol is non-empty) from CSV
// data with a header row. Rows with an empty text cell are skipped so
// texts and labels stay aligned.
func ReadCSV(r io.Reader, textCol, labelCol string) ([]string, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv header: %w", err)
	}
	ti, err := columnIndex(header, textCol, "text")
	if err != nil {
		return nil, nil, err
	}
	li := -1
	if labelCol != "" {
		li, err = columnIndex(header, labelCol, "")
		if err != nil {
			return nil, nil, err
		}
	}

	var texts, labels []string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv record: %w", err)
		}
		if ti >= len(rec) {
			continue
		}
		text := strings.TrimSpace(rec[ti])
		if text == "" {
			continue
		}
		texts = append(texts, text)
		if li >= 0 {
			label := ""
			if li < len(rec) {
				label = strings.TrimSpace(rec[li])
			}
			labels = append(labels, label)
		}
	}
	return texts, labels, nil
}

// columnIndex resolves a column given by name or numeric index. A column
// that was only defaulted falls back to the first column when absent.
func columnIndex(header []string, col, def string) (int, error) {
	if col == "" {
		col = def
	}
	if n, err := strconv.Atoi(col); err == nil {
		if n < 0 || n >= len(header) {
			return 0, fmt.Errorf("csv column %d out of range, header has %d columns", n, len(header))
		}
		return n, nil
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), col) {
			return i, nil
		}
	}
	if col == def {
		return 0, nil
	}
	return 0, fmt.Errorf("csv column %q not found in header %v", col, header)
}

// ReadJSONL reads texts (and labels, when labelField is non-empty) from
// newline-delimited JSON. Malformed lines are skipped with a warning.
func ReadJSONL(r io.Reader, textField, labelField string) ([]string, []string, error) {
	if textField == "" {
		textField = "text"
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var texts, labels []string
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			slog.Warn("Skipping malformed JSONL line", "line", lineNo, "error", err)
			continue
		}
		text, _ := rec[textField].(string)
		text = strings.TrimSpace(text)
		if text == "" {
			slog.Warn("Skipping JSONL record without text", "line", lineNo, "field", textField)
			continue
		}
		texts = append(texts, text)
		if labelField != "" {
			label, _ := rec[labelField].(string)
			labels = append(labels, strings.TrimSpace(label))
		}
	}
	return texts, labels, sc.Err()
}

// ReadHTML extracts one text per matched element, or per block-level
// fragment when no selector is given.
func ReadHTML(r io.Reader, selector string) ([]string, error) {
	doc, err := htmlutil.LoadHTML(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	if selector != "" {
		return htmlutil.ExtractTexts(doc, selector), nil
	}
	return htmlutil.Fragments(doc), nil
}
