package action

import "strings"

// ExtractActions pulls the action lines out of a raw model response. The
// response is line-oriented with NARRATIVE and ACTIONS section headers
// (case-insensitive, optional trailing colon); only non-empty lines after
// the ACTIONS header are returned, in order.
func ExtractActions(raw string) []string {
	var out []string
	section := ""
	for _, line := range strings.Split(raw, "\n") {
		s := strings.TrimSpace(line)
		header := strings.TrimSuffix(strings.ToUpper(s), ":")
		switch header {
		case "NARRATIVE":
			section = "narrative"
			continue
		case "ACTIONS":
			section = "actions"
			continue
		}
		if section == "actions" && s != "" {
			out = append(out, s)
		}
	}
	return out
}
