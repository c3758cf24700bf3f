// Package engine computes one statistic family (freqs, ld or fst) for a
// single population or population pair: point estimates on the full data
// plus bootstrap standard errors.
//
// Presentation lives in output and writers; stable wire types live in
// pkg/api. Nothing here knows about files, flags or report formats.
package engine
