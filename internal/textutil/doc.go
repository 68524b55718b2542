// Package textutil provides text normalization and similarity helpers.
//
// Fold produces a comparison key for free-text headers: it trims, applies
// Unicode NFC composition and full case folding so that "TÁNYÉR" and
// "tányér" compare equal. Similarity returns a normalized edit-distance score
// in [0, 1] used by fuzzy header detection.
package textutil
