package gitstats

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FileChange is one numstat line.
type FileChange struct {
	Path    string `json:"path"`
	Added   int    `json:"added"`
	Deleted int    `json:"deleted"`
	Binary  bool   `json:"binary,omitempty"`
}

// Commit is one parsed log entry.
type Commit struct {
	Hash    string       `json:"hash"`
	Author  string       `json:"author"`
	Email   string       `json:"email"`
	Date    time.Time    `json:"date"`
	Subject string       `json:"subject"`
	Files   []FileChange `json:"files"`
}

// Added is the number of lines added across files.
func (c Commit) Added() int {
	n := 0
	for _, f := range c.Files {
		n += f.Added
	}
	return n
}

// Deleted is the number of lines deleted across files.
func (c Commit) Deleted() int {
	n := 0
	for _, f := range c.Files {
		n += f.Deleted
	}
	return n
}

// Summary drops the file list.
func (c Commit) Summary() CommitSummary {
	return CommitSummary{
		Hash:    c.Hash,
		Author:  c.Author,
		Date:    c.Date,
		Subject: c.Subject,
		Files:   len(c.Files),
		Added:   c.Added(),
		Deleted: c.Deleted(),
	}
}

// ParseLog parses the output of Log. Binary files, reported by numstat as
// "-", count as zero lines.
func ParseLog(out string) ([]Commit, error) {
	var commits []Commit
	for _, rec := range strings.Split(out, recordSep) {
		rec = strings.Trim(rec, "\n")
		if rec == "" {
			continue
		}
		header, body, _ := strings.Cut(rec, "\n")
		fields := strings.Split(header, fieldSep)
		if len(fields) < 4 {
			return nil, fmt.Errorf("malformed commit header %q", header)
		}
		date, err := time.Parse(time.RFC3339, fields[3])
		if err != nil {
			return nil, fmt.Errorf("commit %s: bad date %q: %w", fields[0], fields[3], err)
		}
		c := Commit{Hash: fields[0], Author: fields[1], Email: fields[2], Date: date}
		if len(fields) > 4 {
			c.Subject = fields[4]
		}
		for _, line := range strings.Split(body, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			fc, err := parseNumstat(line)
			if err != nil {
				return nil, fmt.Errorf("commit %s: %w", c.Hash, err)
			}
			c.Files = append(c.Files, fc)
		}
		commits = append(commits, c)
	}
	return commits, nil
}

func parseNumstat(line string) (FileChange, error) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) != 3 {
		return FileChange{}, fmt.Errorf("malformed numstat line %q", line)
	}
	fc := FileChange{Path: parts[2]}
	if parts[0] == "-" && parts[1] == "-" {
		fc.Binary = true
		return fc, nil
	}
	var err error
	if fc.Added, err = strconv.Atoi(parts[0]); err != nil {
		return FileChange{}, fmt.Errorf("numstat added %q: %w", parts[0], err)
	}
	if fc.Deleted, err = strconv.Atoi(parts[1]); err != nil {
		return FileChange{}, fmt.Errorf("numstat deleted %q: %w", parts[1], err)
	}
	return fc, nil
}
