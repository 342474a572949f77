//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"strings"

	"github.com/e-gun/OratioGoServer/internal/str"
)

//
// BAGS OF WORDS
//

// Bag - one document flattened into a single string for the vectorisers
type Bag struct {
	DocID string
	Year  int
	Bag   string
}

// BuildBags - one bag per document; the tokens were already case-folded (or not) at ingestion
func BuildBags(docs []str.Document) []Bag {
	bags := make([]Bag, len(docs))
	for i := range docs {
		bags[i] = Bag{
			DocID: docs[i].ID,
			Year:  docs[i].Year,
			Bag:   strings.Join(docs[i].Tokens, " "),
		}
	}
	return bags
}

// DropStopwords - rewrite each bag without the noise words
func DropStopwords(bags []Bag) []Bag {
	stops := StopSet()

	for i := range bags {
		ww := strings.Split(bags[i].Bag, " ")
		var keep []string
		for _, w := range ww {
			if _, skip := stops[strings.ToLower(w)]; !skip {
				keep = append(keep, w)
			}
		}
		bags[i].Bag = strings.Join(keep, " ")
	}

	return bags
}

// Corpus - the bags as the plain string slice the nlp pipelines consume
func Corpus(bags []Bag) []string {
	cc := make([]string, len(bags))
	for i := range bags {
		cc[i] = bags[i].Bag
	}
	return cc
}
