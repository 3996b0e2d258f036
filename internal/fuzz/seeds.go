package fuzztests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

var builtinSeeds = []string{
	"",
	"var x = 1",
	"func add(a: int, b: int) int {\n  return a + b\n}",
	"if a <= b and not c { print \"ok\" }",
	"x == y != z << 2 >> 3 ~ w",
	"print \"unterminated",
	"a ! b",
	"9lives",
	"while i<10{i=i+1}\r\n",
	"\"héllo\" «x»",
	"\t\v\f  \n\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f, "correct.json")
	addTestdataSeeds(f, "incorrect.json")
}

// addTestdataSeeds adds the "source" field of every case in the scanner's
// golden corpus.
func addTestdataSeeds(f *testing.F, name string) {
	path := filepath.Join("..", "lexer", "testdata", name)
	// #nosec G304 -- path is a fixed repository location
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var cases []struct {
		Source string `json:"source"`
	}
	if err := json.Unmarshal(data, &cases); err != nil {
		return
	}
	for _, c := range cases {
		f.Add(clampSeed([]byte(c.Source)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
