// Package symmetry renders mirrored variants of still and animated images.
//
// The input format is sniffed from the raw bytes: GIF data takes the
// animation pipeline (decode, disposal-aware frame reconstruction, per-frame
// mirroring, GIF re-encode) and everything else takes the static pipeline
// (decode, mirror, PNG encode). PNG, JPEG, GIF and WebP stills are decodable.
//
// Each call is a single-shot job owning all of its buffers, so concurrent
// calls need no synchronization.
package symmetry
