package entities

// GroundedResponse is the loosely-typed answer returned by the grounded
// generation service. Every nested field may be absent; consumers must
// short-circuit on the first missing link instead of assuming shape.
type GroundedResponse struct {
	Text       string
	Candidates []GroundedCandidate
}

// GroundedCandidate is one response candidate carrying grounding metadata.
type GroundedCandidate struct {
	GroundingMetadata *GroundingMetadata
}

// GroundingMetadata holds the provenance records attached to a candidate.
type GroundingMetadata struct {
	GroundingChunks []GroundingChunk
}

// GroundingChunk is one provenance record: a map place, a web page, or an
// unrecognized payload (both fields nil) that must be skipped.
type GroundingChunk struct {
	Place *GroundingSource
	Web   *GroundingSource
}

// GroundingSource is the title and URI of a grounding reference.
type GroundingSource struct {
	Title string
	URI   string
}
