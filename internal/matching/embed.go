package matching

import "crypto/sha256"

// EmbeddingDim is the fixed dimension of every pseudo-embedding vector
const EmbeddingDim = 512

// emptyTextSentinel keeps the digest defined when the input text is empty
const emptyTextSentinel = "empty"

// Embed deterministically maps (already-normalized) text to a fixed-length
// vector: the SHA-256 digest of the UTF-8 bytes is indexed cyclically and each
// byte is mapped from [0,255] into [-1,1].
//
// This is a placeholder for a real embedding model. The only guarantees are
// that identical text yields a bit-identical vector across runs, and differing
// text yields an effectively uncorrelated vector. Callers must not assume any
// semantic meaning beyond that.
func Embed(text string) []float64 {
	if text == "" {
		text = emptyTextSentinel
	}
	digest := sha256.Sum256([]byte(text))

	vec := make([]float64, EmbeddingDim)
	for i := range vec {
		b := digest[i%len(digest)]
		vec[i] = float64(b)/255.0*2 - 1
	}
	return vec
}
