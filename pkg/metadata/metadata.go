// Package metadata stamps generated report documents with a provenance
// block so downstream consumers can detect manual edits and read the
// acceptance verdict without parsing the report body.
package metadata

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// TagStart is the start of the provenance block.
	TagStart = "<!-- REPORT_META_START"
	// TagEnd is the end of the provenance block.
	TagEnd = "REPORT_META_END -->"
)

// Provenance verification errors.
var (
	ErrNoStampBlock = errors.New("no provenance block found")
	ErrNoHashFound  = errors.New("no hash found in provenance block")
	ErrHashMismatch = errors.New("hash mismatch")
)

// Stamp holds the provenance fields carried by a generated report.
type Stamp struct {
	GeneratedAt     time.Time
	Hash            string
	RequirementsMet bool
}

// stampRegex matches the entire provenance block including tags.
var stampRegex = regexp.MustCompile(`(?s)<!--\s*REPORT_META_START\s*\n(.*?)\n\s*REPORT_META_END\s*-->`)

// Extract removes the provenance block from content and returns both the
// stamp and the cleaned content. The cleaned content is what gets hashed.
func Extract(content string) (*Stamp, string) {
	match := stampRegex.FindStringSubmatch(content)
	clean := stampRegex.ReplaceAllString(content, "")
	// Trim trailing newlines so hashing is stable across rewrites
	clean = strings.TrimRight(clean, "\n")

	if len(match) < 2 {
		return nil, clean
	}

	stamp := &Stamp{}

	for _, line := range strings.Split(match[1], "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])

		switch key {
		case "REQUIREMENTS_MET":
			stamp.RequirementsMet = strings.EqualFold(val, "TRUE")
		case "GENERATED_AT":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				stamp.GeneratedAt = t
			}
		case "HASH":
			stamp.Hash = val
		}
	}

	return stamp, clean
}

// CalculateHash computes the SHA-256 hash of the content with any
// provenance block excluded.
func CalculateHash(content string) string {
	_, clean := Extract(content)
	hash := sha256.Sum256([]byte(clean))

	return hex.EncodeToString(hash[:])
}

// Sign appends or replaces the provenance block with a fresh hash,
// timestamp, and the acceptance verdict.
func Sign(content string, requirementsMet bool) string {
	_, clean := Extract(content)

	hash := CalculateHash(clean)
	now := time.Now().UTC().Format(time.RFC3339)

	verdict := "FALSE"
	if requirementsMet {
		verdict = "TRUE"
	}

	block := fmt.Sprintf("\n\n%s\nREQUIREMENTS_MET: %s\nGENERATED_AT: %s\nHASH: %s\n%s",
		TagStart, verdict, now, hash, TagEnd)

	return clean + block
}

// Verify checks that the content matches the hash in its provenance
// block.
func Verify(content string) (bool, error) {
	stamp, clean := Extract(content)
	if stamp == nil {
		return false, ErrNoStampBlock
	}

	if stamp.Hash == "" {
		return false, ErrNoHashFound
	}

	calculated := CalculateHash(clean)
	if calculated != stamp.Hash {
		return false, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, stamp.Hash, calculated)
	}

	return true, nil
}
