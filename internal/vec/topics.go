//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"sort"

	"github.com/danaugrs/go-tsne/tsne"
	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"
)

//
// LDA TOPIC MODELING
//

// LDAModel - fit an LDA topic model over the corpus
// the returned matrices follow the library's layout: docsOverTopics is (topics x docs),
// topicsOverWords is (topics x vocabulary)
func LDAModel(topics int, iterations int, processes int, corpus []string, vectoriser *nlp.CountVectoriser) (mat.Matrix, mat.Matrix, error) {
	lda := nlp.NewLatentDirichletAllocation(topics)
	lda.Processes = processes
	lda.Iterations = iterations
	lda.TransformationPasses = iterations / 2

	pipeline := nlp.NewPipeline(vectoriser, lda)

	docsOverTopics, err := pipeline.FitTransform(corpus...)
	if err != nil {
		return nil, nil, fmt.Errorf("lda pipeline failed to fit the corpus: %w", err)
	}

	topicsOverWords := lda.Components()

	return docsOverTopics, topicsOverWords, nil
}

// TopicWord - one word and its weight inside a topic
type TopicWord struct {
	W string
	V float64
}

// SortedTopics - the topn most significant words for each topic
func SortedTopics(topicsOverWords mat.Matrix, vectoriser *nlp.CountVectoriser, topn int) map[int][]TopicWord {
	tr, tc := topicsOverWords.Dims()

	vocab := make([]string, len(vectoriser.Vocabulary))
	for k, v := range vectoriser.Vocabulary {
		vocab[v] = k
	}

	if topn > tc {
		topn = tc
	}

	tops := make(map[int][]TopicWord)
	for topic := 0; topic < tr; topic++ {
		tss := make([]TopicWord, tc)
		for word := 0; word < tc; word++ {
			tss[word] = TopicWord{
				W: vocab[word],
				V: topicsOverWords.At(topic, word),
			}
		}
		sort.Slice(tss, func(i, j int) bool {
			if tss[i].V != tss[j].V {
				return tss[i].V > tss[j].V
			}
			return tss[i].W < tss[j].W
		})
		tops[topic] = tss[0:topn]
	}
	return tops
}

// DominantTopics - the winning topic for each document
func DominantTopics(docsOverTopics mat.Matrix) []int {
	dr, dc := docsOverTopics.Dims()

	winners := make([]int, dc)
	for doc := 0; doc < dc; doc++ {
		max := float64(0)
		winner := 0
		for topic := 0; topic < dr; topic++ {
			if docsOverTopics.At(topic, doc) > max {
				winner = topic
				max = docsOverTopics.At(topic, doc)
			}
		}
		winners[doc] = winner
	}
	return winners
}

// DocsPerTopic - how many documents have topic N as their dominant topic
func DocsPerTopic(ntopics int, docsOverTopics mat.Matrix) []int {
	counter := make([]int, ntopics)
	for _, w := range DominantTopics(docsOverTopics) {
		counter[w]++
	}
	return counter
}

// TopDocPerTopic - the document index most associated with each topic
func TopDocPerTopic(docsOverTopics mat.Matrix) []int {
	dr, dc := docsOverTopics.Dims()

	winners := make([]int, dr)
	for topic := 0; topic < dr; topic++ {
		max := float64(0)
		winner := 0
		for doc := 0; doc < dc; doc++ {
			if docsOverTopics.At(topic, doc) > max {
				winner = doc
				max = docsOverTopics.At(topic, doc)
			}
		}
		winners[topic] = winner
	}
	return winners
}

// ProjectDocs - t-SNE 2-D embedding of the documents' topic mixtures for scatter plotting
// the returned matrix is (docs x 2)
func ProjectDocs(docsOverTopics mat.Matrix, perplexity float64, learningrate float64, maxiter int) *mat.Dense {
	dr, dc := docsOverTopics.Dims()

	// transpose into (docs x topics): the embedder wants one row per observation
	var dd []float64
	for doc := 0; doc < dc; doc++ {
		for topic := 0; topic < dr; topic++ {
			dd = append(dd, docsOverTopics.At(topic, doc))
		}
	}
	wv := mat.NewDense(dc, dr, dd)

	t := tsne.NewTSNE(2, perplexity, learningrate, maxiter, false)
	t.EmbedData(wv, nil)

	return t.Y
}
