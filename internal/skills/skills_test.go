package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliasTableKeywordsAreUnique(t *testing.T) {
	owner := map[string]string{}
	for _, a := range aliasTable {
		assert.Equal(t, strings.ToLower(strings.TrimSpace(a.Canonical)), a.Canonical)
		for _, kw := range a.Keywords {
			prev, dup := owner[kw]
			assert.Falsef(t, dup, "keyword %q claimed by %q and %q", kw, prev, a.Canonical)
			owner[kw] = a.Canonical
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{" AI ", "artificial intelligence"},
		{"ai", "artificial intelligence"},
		{"artificial intelligence", "artificial intelligence"},
		{"Artificial Intelligence", "artificial intelligence"},
		{"K8S", "kubernetes"},
		{"py", "python"},
		{"Postgres", "sql"},
		{"Random Forest", "machine learning"},
		{"  Rust  ", "rust"},
		{"", ""},
		{"   \t\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeEveryKeywordMapsToItsCanonical(t *testing.T) {
	for _, a := range aliasTable {
		assert.Equal(t, a.Canonical, Normalize(a.Canonical))
		for _, kw := range a.Keywords {
			assert.Equal(t, a.Canonical, Normalize(kw), "keyword %q", kw)
		}
	}
}

func TestNormalizeAllDropsBlanksAndDuplicates(t *testing.T) {
	got := NormalizeAll([]string{" AI ", "ai", "", "  ", "Python", "py", "Rust"})
	assert.Equal(t, []string{"artificial intelligence", "python", "rust"}, got)
	assert.Empty(t, NormalizeAll(nil))
}

func TestExtract(t *testing.T) {
	got := Extract("Built with Python and OpenCV")
	assert.True(t, got.Has("python"))
	assert.True(t, got.Has("computer vision"))
	assert.Equal(t, []string{"computer vision", "python"}, got.Sorted())
}

func TestExtractEmpty(t *testing.T) {
	assert.Empty(t, Extract(""))
}

func TestExtractCollapsesKeywordsOfOneSkill(t *testing.T) {
	got := Extract("YOLO plus OpenCV for computer vision")
	assert.Equal(t, []string{"computer vision"}, got.Sorted())
}

func TestExtractMatchesInsideWords(t *testing.T) {
	// Substring matching has no word boundaries.
	assert.True(t, Extract("main").Has("artificial intelligence"))
	assert.True(t, Extract("Paint app").Has("artificial intelligence"))
	assert.True(t, Extract("happy").Has("python"))
}

func TestInfer(t *testing.T) {
	stack := "Python, Docker"
	desc := "Runs on a Raspberry Pi"
	got := Infer(&stack, nil, &desc)
	assert.Equal(t, []string{"docker", "iot", "python"}, got.Sorted())
	assert.Empty(t, Infer(nil, nil))
}

func TestSearchTerms(t *testing.T) {
	assert.Equal(t, []string{"k8s", "kubernetes"}, SearchTerms("k8s"))
	assert.Equal(t, []string{"k8s", "kubernetes"}, SearchTerms(" Kubernetes "))
	assert.Equal(t, []string{"rust"}, SearchTerms("Rust"))
	assert.Nil(t, SearchTerms("  "))
}

func TestAliasesReturnsCopy(t *testing.T) {
	kws := Aliases("docker")
	require.Equal(t, []string{"docker", "container"}, kws)
	kws[0] = "mutated"
	assert.Equal(t, []string{"docker", "container"}, Aliases("docker"))
	assert.Nil(t, Aliases("cobol"))
	assert.True(t, IsKnown("sql"))
	assert.False(t, IsKnown("postgres"))
	assert.Len(t, Canonicals(), len(aliasTable))
}
