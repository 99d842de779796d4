package skills

// Alias ties a canonical skill name to the keywords that identify it.
// Keywords are matched exactly by Normalize and as substrings by Extract.
type Alias struct {
	Canonical string
	Keywords  []string
}

// aliasTable is ordered: when two entries claim the same keyword the first
// one wins. The table itself keeps every keyword unique.
var aliasTable = []Alias{
	{Canonical: "artificial intelligence", Keywords: []string{"ai", "artificial intelligence"}},
	{Canonical: "machine learning", Keywords: []string{"ml", "machine learning", "random forest", "svm"}},
	{Canonical: "deep learning", Keywords: []string{"dl", "deep learning", "cnn", "rnn"}},
	{Canonical: "natural language processing", Keywords: []string{"nlp", "natural language processing"}},
	{Canonical: "large language models", Keywords: []string{"llm", "large language model", "gpt", "transformer"}},
	{Canonical: "retrieval augmented generation", Keywords: []string{"rag", "retrieval augmented generation"}},
	{Canonical: "python", Keywords: []string{"python", "py"}},
	{Canonical: "fastapi", Keywords: []string{"fastapi"}},
	{Canonical: "docker", Keywords: []string{"docker", "container"}},
	{Canonical: "kubernetes", Keywords: []string{"kubernetes", "k8s"}},
	{Canonical: "computer vision", Keywords: []string{"opencv", "yolo", "computer vision"}},
	{Canonical: "sql", Keywords: []string{"sql", "postgres", "mysql", "sqlite"}},
	{Canonical: "iot", Keywords: []string{"iot", "raspberry pi", "arduino"}},
}

var (
	canonicalIndex = make(map[string]int, len(aliasTable))
	keywordIndex   = make(map[string]string)
)

func init() {
	for i, a := range aliasTable {
		canonicalIndex[a.Canonical] = i
		for _, kw := range a.Keywords {
			if _, taken := keywordIndex[kw]; !taken {
				keywordIndex[kw] = a.Canonical
			}
		}
	}
}

// Canonicals returns the canonical skill names in table order.
func Canonicals() []string {
	out := make([]string, len(aliasTable))
	for i, a := range aliasTable {
		out[i] = a.Canonical
	}
	return out
}

// Aliases returns a copy of the keywords registered for a canonical name,
// or nil when the name is not in the table.
func Aliases(canonical string) []string {
	i, ok := canonicalIndex[canonical]
	if !ok {
		return nil
	}
	return append([]string(nil), aliasTable[i].Keywords...)
}

// IsKnown reports whether canonical is a key of the alias table.
func IsKnown(canonical string) bool {
	_, ok := canonicalIndex[canonical]
	return ok
}
