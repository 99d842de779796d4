package skills

import "strings"

// Extract returns every canonical skill with a keyword occurring anywhere in
// text. Matching is plain substring containment with no word boundaries, so
// "ai" is found inside "main" or "paint".
func Extract(text string) Set {
	found := Set{}
	if text == "" {
		return found
	}
	lower := strings.ToLower(text)
	for _, a := range aliasTable {
		for _, kw := range a.Keywords {
			if strings.Contains(lower, kw) {
				found.Add(a.Canonical)
				break
			}
		}
	}
	return found
}

// Infer runs Extract over each text and unions the results. Nil entries
// stand for absent fields.
func Infer(texts ...*string) Set {
	found := Set{}
	for _, t := range texts {
		if t != nil {
			found.Union(Extract(*t))
		}
	}
	return found
}
