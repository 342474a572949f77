//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/james-bowman/nlp"
	"gonum.org/v1/gonum/mat"
)

//
// DOCUMENT CLUSTERING
//

// TfIdfMatrix - vectorise the corpus and weight it by tf-idf
// the returned matrix follows the library's layout: (terms x docs)
func TfIdfMatrix(corpus []string, vectoriser *nlp.CountVectoriser) (mat.Matrix, error) {
	pipeline := nlp.NewPipeline(vectoriser, nlp.NewTfidfTransformer())

	m, err := pipeline.FitTransform(corpus...)
	if err != nil {
		return nil, fmt.Errorf("tf-idf pipeline failed to fit the corpus: %w", err)
	}
	return m, nil
}

// KMeans - Lloyd's algorithm over the document columns of a (terms x docs) matrix;
// returns the cluster index per document. the caller supplies the *rand.Rand so
// that clustering runs are reproducible.
func KMeans(m mat.Matrix, k int, maxiter int, rng *rand.Rand) ([]int, error) {
	const (
		FAIL1 = "cannot split %d document(s) into %d cluster(s)"
	)

	terms, docs := m.Dims()
	if k < 1 || k > docs {
		return nil, fmt.Errorf(FAIL1, docs, k)
	}

	col := func(j int) []float64 {
		v := make([]float64, terms)
		for i := 0; i < terms; i++ {
			v[i] = m.At(i, j)
		}
		return v
	}

	dist := func(a []float64, b []float64) float64 {
		s := 0.0
		for i := range a {
			d := a[i] - b[i]
			s += d * d
		}
		return s
	}

	vectors := make([][]float64, docs)
	for j := 0; j < docs; j++ {
		vectors[j] = col(j)
	}

	// [a] seed the centroids from k distinct documents
	centroids := make([][]float64, k)
	for i, j := range rng.Perm(docs)[:k] {
		c := make([]float64, terms)
		copy(c, vectors[j])
		centroids[i] = c
	}

	assign := make([]int, docs)

	// [b] iterate: assign, then re-center
	for iter := 0; iter < maxiter; iter++ {
		moved := false

		for j := 0; j < docs; j++ {
			best := 0
			bestd := math.MaxFloat64
			for c := 0; c < k; c++ {
				if d := dist(vectors[j], centroids[c]); d < bestd {
					bestd = d
					best = c
				}
			}
			if assign[j] != best {
				assign[j] = best
				moved = true
			}
		}

		if !moved && iter > 0 {
			break
		}

		for c := 0; c < k; c++ {
			sum := make([]float64, terms)
			n := 0
			for j := 0; j < docs; j++ {
				if assign[j] != c {
					continue
				}
				for i := 0; i < terms; i++ {
					sum[i] += vectors[j][i]
				}
				n++
			}
			if n == 0 {
				// an emptied cluster re-seeds from a random document
				copy(sum, vectors[rng.Intn(docs)])
				n = 1
			}
			for i := 0; i < terms; i++ {
				sum[i] /= float64(n)
			}
			centroids[c] = sum
		}
	}

	return assign, nil
}
