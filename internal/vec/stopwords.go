//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"sort"

	"github.com/e-gun/OratioGoServer/internal/gen"
)

//
// STOPWORDS
//

var (
	// English100 - the most common english function words; they swamp any bag of words built from oratory
	English100 = []string{"the", "of", "and", "to", "in", "a", "that", "is", "it", "for", "as", "with", "be", "by",
		"on", "not", "this", "are", "or", "we", "have", "which", "will", "has", "our", "their", "they", "from",
		"at", "was", "been", "an", "all", "but", "its", "were", "would", "so", "can", "no", "if", "more", "when",
		"who", "them", "than", "may", "these", "such", "there", "should", "other", "upon", "had", "his", "he",
		"those", "you", "i", "any", "my", "now", "must", "shall", "us", "into", "only", "some", "do", "what",
		"time", "made", "over", "new", "under", "after", "your", "him", "her", "she", "most", "out", "up",
		"between", "both", "each", "own", "same", "through", "against", "before", "because", "where", "how",
		"while", "also", "could", "did", "does", "being"}
	EnglishExtra = []string{"mr", "mrs", "sir", "etc", "viz", "ye", "thee", "thou", "thy", "hath", "nor", "am",
		"me", "himself", "herself", "itself", "themselves", "ourselves", "myself", "whose", "whom", "whether",
		"thus", "hence", "therefore", "however", "moreover", "nevertheless", "indeed", "perhaps", "yet", "still",
		"ever", "never", "again", "much", "many", "very", "too", "then", "here", "just", "even", "well"}
	// EnglishStop - the two hand-maintained lists above can drift into overlap; dedupe at init
	EnglishStop = gen.Unique(append(English100, EnglishExtra...))
	// EnglishKeep - members of EnglishStop with enough semantic weight to keep
	EnglishKeep = []string{"time", "new"}
)

// StopSet - the active stop list as a set
func StopSet() map[string]struct{} {
	keep := gen.ToSet(EnglishKeep)
	set := make(map[string]struct{})
	for _, w := range EnglishStop {
		if _, ok := keep[w]; ok {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// Stops - the active stop list, sorted, for handing to a CountVectoriser
func Stops() []string {
	ss := gen.StringMapKeysIntoSlice(StopSet())
	sort.Strings(ss)
	return ss
}
