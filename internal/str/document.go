//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// Document - one plain-text item in a corpus: a speech, a paper, an address, ...
type Document struct {
	ID     string // e.g. "sotu_1945" or "federalist_10"
	Corpus string
	Year   int
	Tokens []string
}

// TokenCount - total tokens in a batch of documents
func TokenCount(dd []Document) int {
	t := 0
	for i := range dd {
		t += len(dd[i].Tokens)
	}
	return t
}
