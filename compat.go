package msgpackstrict

// CanReadFrom decides whether a value produced under writeSchema can be
// consumed by a deserialiser bound to s (the read schema). strict disables
// primitive widening, skipping writer-only fields, extra reader union
// members and extra reader enum members; a reader-only Complex field that
// has a default is accepted in both modes.
func (s *Schema) CanReadFrom(writeSchema *Schema, strict bool) bool {
	return s.canReadFrom(writeSchema, strict, map[compatKey]bool{})
}

type compatKey struct {
	read, write *Schema
	strict      bool
}

func (s *Schema) canReadFrom(w *Schema, strict bool, memo map[compatKey]bool) bool {
	if s.Kind == KindEmpty {
		// Relaxed mode lets an Empty reader discard any writer payload (§8
		// scenario 7); strict mode requires the writer to be Empty too.
		if !strict {
			return true
		}
		return w.Kind == KindEmpty
	}
	if w.Kind == KindEmpty {
		return false
	}

	key := compatKey{read: s, write: w, strict: strict}
	if v, ok := memo[key]; ok {
		return v
	}
	// Optimistic assumption on re-entry: standard bisimulation technique for
	// terminating cyclic schema traversal.
	memo[key] = true

	result := s.canReadFromUncached(w, strict, memo)
	memo[key] = result
	return result
}

func (s *Schema) canReadFromUncached(w *Schema, strict bool, memo map[compatKey]bool) bool {
	if s.Kind.IsPrimitive() && w.Kind.IsPrimitive() {
		if s.Kind == w.Kind {
			return true
		}
		if strict {
			return false
		}
		return widens(w.Kind, s.Kind)
	}

	if s.Kind != w.Kind {
		switch s.Kind {
		case KindNullable:
			// A non-nullable writer always has a value present, so a
			// nullable reader may consume it as if always-non-nil.
			return s.Elem.canReadFrom(w, strict, memo)
		}
		return false
	}

	switch s.Kind {
	case KindNullable, KindSequence:
		return s.Elem.canReadFrom(w.Elem, strict, memo)
	case KindMapping:
		return s.MapKey.canReadFrom(w.MapKey, strict, memo) && s.MapValue.canReadFrom(w.MapValue, strict, memo)
	case KindTuple:
		if len(s.Elements) != len(w.Elements) {
			return false
		}
		for i := range s.Elements {
			if !s.Elements[i].canReadFrom(w.Elements[i], strict, memo) {
				return false
			}
		}
		return true
	case KindEnum:
		return enumCanReadFrom(s.Members, w.Members, strict)
	case KindComplex:
		return complexCanReadFrom(s.Fields, w.Fields, strict, memo)
	case KindUnion:
		return unionCanReadFrom(s.UnionMembers, w.UnionMembers, strict, memo)
	default:
		return true
	}
}

// enumCanReadFrom requires the reader's member set to be a superset of the
// writer's in relaxed mode, and exactly equal in strict mode (§4.6).
func enumCanReadFrom(readMembers, writeMembers []string, strict bool) bool {
	if strict {
		return equalFoldSlices(readMembers, writeMembers)
	}
	for _, wm := range writeMembers {
		found := false
		for _, rm := range readMembers {
			if asciiFold(wm) == asciiFold(rm) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// complexCanReadFrom merge-walks both case-insensitive lex-sorted field
// lists per §4.6.
func complexCanReadFrom(readFields, writeFields []*Field, strict bool, memo map[compatKey]bool) bool {
	i, j := 0, 0
	for i < len(readFields) && j < len(writeFields) {
		rf, wf := readFields[i], writeFields[j]
		switch {
		case asciiFold(rf.Name) == asciiFold(wf.Name):
			if !rf.Schema.canReadFrom(wf.Schema, strict, memo) {
				return false
			}
			i++
			j++
		case asciiLess(wf.Name, rf.Name):
			// Writer has a field the reader does not.
			if strict {
				return false
			}
			j++
		default:
			// Reader has a field the writer does not: tolerated in both
			// modes provided the reader's field carries a default (§8
			// scenario 3 — strict mode only forbids skipping writer-extra
			// fields and widening, not defaulting an absent one).
			if !rf.HasDefault {
				return false
			}
			i++
		}
	}
	// Remaining writer-only fields: tolerated in relaxed mode, fatal in strict.
	if j < len(writeFields) && strict {
		return false
	}
	// Remaining reader-only fields must all have defaults.
	for ; i < len(readFields); i++ {
		if !readFields[i].HasDefault {
			return false
		}
	}
	return true
}

// unionCanReadFrom merge-walks both case-insensitive lex-sorted member
// lists per §4.6.
func unionCanReadFrom(readMembers, writeMembers []*Member, strict bool, memo map[compatKey]bool) bool {
	i, j := 0, 0
	for i < len(readMembers) && j < len(writeMembers) {
		rm, wm := readMembers[i], writeMembers[j]
		switch {
		case asciiFold(rm.Name) == asciiFold(wm.Name):
			if !rm.Schema.canReadFrom(wm.Schema, strict, memo) {
				return false
			}
			i++
			j++
		case asciiLess(wm.Name, rm.Name):
			// Writer has a member the reader does not: the reader could
			// encounter an undispatchable variant at runtime. Fails in
			// both modes.
			return false
		default:
			// Reader has a member the writer does not.
			if strict {
				return false
			}
			i++
		}
	}
	if j < len(writeMembers) {
		// Unmatched writer members remaining: fails in both modes.
		return false
	}
	return true
}
