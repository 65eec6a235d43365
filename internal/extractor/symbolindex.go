package extractor

// symbolIndex accumulates the callable lookup tables pass 1 builds and pass
// 2 consumes: byKey resolves a still-open scope back to the id it pushed
// (keyed by kind+position+name so a later pass can tell precisely which
// declaration a scope-stack entry belongs to), byName is the candidate set
// call-site resolution ranks against, callableIDs records which pushed ids
// are function/method nodes (pass 2 does not read it).
type symbolIndex struct {
	byName      map[string][]string
	byKey       map[string]string
	callableIDs map[string]bool
}

func newSymbolIndex() *symbolIndex {
	return &symbolIndex{
		byName:      make(map[string][]string),
		byKey:       make(map[string]string),
		callableIDs: make(map[string]bool),
	}
}
