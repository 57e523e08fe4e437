package matching

import (
	"regexp"
	"strings"
)

// NameFormat identifies which parsing strategy produced a ParsedName.
type NameFormat string

const (
	// FormatComma handles "Last, First" labels.
	FormatComma NameFormat = "comma"
	// FormatDash handles "First Last - annotation" labels.
	FormatDash NameFormat = "dash"
	// FormatPlain handles "First [Middle ...] Last" labels.
	FormatPlain NameFormat = "plain"
)

var (
	rolePrefixRegex  = regexp.MustCompile(`(?i)^(member|client|case|folder)\b\s*`)
	labelSuffixRegex = regexp.MustCompile(`(?i)\s*\b(folders?|files?|docs?|documents?)$`)
	clientIDRegex    = regexp.MustCompile(`(?i)clientid:\s*(\d+)`)
)

// ParsedName is the structured interpretation of a free-text folder label.
type ParsedName struct {
	First  string     `json:"first"`
	Last   string     `json:"last"`
	Full   string     `json:"full"`
	Format NameFormat `json:"format"`
	HasID  bool       `json:"has_id"`
	ID     string     `json:"id,omitempty"`
}

// Parse extracts a candidate name and optional embedded member ID from a
// folder label. Labels come from staff typing whatever they like, so parsing
// degrades to empty fields on unusable input rather than failing.
//
// Order matters: role prefixes and label suffixes are stripped first, then an
// embedded "ClientID: NNN" is captured and removed, then the remainder is
// interpreted by the first applicable strategy (comma, dash, plain).
func Parse(raw string) ParsedName {
	working := strings.TrimSpace(raw)
	working = rolePrefixRegex.ReplaceAllString(working, "")
	working = labelSuffixRegex.ReplaceAllString(working, "")

	var parsed ParsedName
	if m := clientIDRegex.FindStringSubmatch(working); m != nil {
		parsed.HasID = true
		parsed.ID = m[1]
		working = strings.Replace(working, m[0], "", 1)
	}

	switch {
	case strings.Contains(working, ","):
		// "Last, First"; segments beyond the second are ignored.
		parsed.Format = FormatComma
		parts := strings.SplitN(working, ",", 3)
		parsed.Last = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			parsed.First = strings.TrimSpace(parts[1])
		}
	case strings.Contains(working, " - "):
		parsed.Format = FormatDash
		namePart := working[:strings.Index(working, " - ")]
		parsed.First, parsed.Last = splitFirstLast(namePart)
	default:
		parsed.Format = FormatPlain
		parsed.First, parsed.Last = splitFirstLast(working)
	}

	parsed.Full = strings.TrimSpace(parsed.First + " " + parsed.Last)
	return parsed
}

// splitFirstLast splits on whitespace: first token is the first name, the
// rest joined is the last name. A single token becomes the first name with
// the last name left empty.
func splitFirstLast(s string) (first, last string) {
	tokens := strings.Fields(s)
	switch len(tokens) {
	case 0:
		return "", ""
	case 1:
		return tokens[0], ""
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}
