package msgpackstrict

import (
	"encoding/xml"
	"fmt"
)

// xmlNode is a generic XML tree node used to marshal/unmarshal the
// canonical schema form (§6.3) without a bespoke struct per variant: each
// Schema Kind maps to one element name, and by-reference nodes (Complex,
// Union, Enum) carry an Id attribute on first definition and a
// Contract="#id" attribute on every subsequent occurrence, exactly as a
// hand-rolled encoder/decoder pair would do, but expressed directly on top
// of encoding/xml rather than reimplementing its tokenizer.
type xmlNode struct {
	XMLName xml.Name

	Id       string `xml:"Id,attr,omitempty"`
	Contract string `xml:"Contract,attr,omitempty"`
	Name     string `xml:"name,attr,omitempty"`
	Kind     string `xml:"kind,attr,omitempty"`
	Default  string `xml:"default,attr,omitempty"`

	Children []xmlNode `xml:",any"`
}

// ToXml renders s as the canonical XML schema document (§6.3). By-reference
// schemas reachable more than once are defined at their first occurrence
// and referenced by Contract thereafter, so cyclic schemas still terminate.
func (s *Schema) ToXml() ([]byte, error) {
	root := xml.Name{Local: "Schema"}
	emitted := map[string]bool{}
	body := schemaToNode(s, emitted)
	doc := xmlNode{XMLName: root, Children: []xmlNode{body}}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &SchemaInvariantError{Reason: fmt.Sprintf("marshalling schema to XML: %v", err)}
	}
	return append([]byte(xml.Header), out...), nil
}

func schemaToNode(s *Schema, emitted map[string]bool) xmlNode {
	if s.Kind.IsByReference() && s.id != "" && emitted[s.id] {
		return xmlNode{XMLName: xml.Name{Local: elementNameFor(s.Kind)}, Contract: "#" + s.id}
	}
	if s.Kind.IsByReference() && s.id != "" {
		emitted[s.id] = true
	}

	n := xmlNode{XMLName: xml.Name{Local: elementNameFor(s.Kind)}}
	if s.Kind.IsByReference() {
		n.Id = s.id
	}

	switch s.Kind {
	case KindNullable, KindSequence:
		n.Children = []xmlNode{schemaToNode(s.Elem, emitted)}
	case KindMapping:
		key := schemaToNode(s.MapKey, emitted)
		value := schemaToNode(s.MapValue, emitted)
		n.Children = []xmlNode{key, value}
	case KindTuple:
		for _, e := range s.Elements {
			n.Children = append(n.Children, schemaToNode(e, emitted))
		}
	case KindEnum:
		for _, m := range s.Members {
			n.Children = append(n.Children, xmlNode{XMLName: xml.Name{Local: "Member"}, Name: m})
		}
	case KindComplex:
		for _, f := range s.Fields {
			child := xmlNode{XMLName: xml.Name{Local: "Field"}, Name: f.Name, Children: []xmlNode{schemaToNode(f.Schema, emitted)}}
			if f.HasDefault {
				child.Default = defaultLiteralFor(f)
			}
			n.Children = append(n.Children, child)
		}
	case KindUnion:
		for _, m := range s.UnionMembers {
			child := xmlNode{XMLName: xml.Name{Local: "Member"}, Name: m.Name, Children: []xmlNode{schemaToNode(m.Schema, emitted)}}
			n.Children = append(n.Children, child)
		}
	case KindEmpty:
		// no children
	default:
		n.Kind = s.Kind.String()
	}

	return n
}

// defaultLiteralFor renders a field's default value back to its literal
// string form via fmt's %v. A non-primitive field carries a default only
// through a bare `default` tag, so its value is the zero value (rendered
// as "<nil>" for a Nullable field).
func defaultLiteralFor(f *Field) string {
	if !f.Default.IsValid() {
		return ""
	}
	return fmt.Sprintf("%v", f.Default.Interface())
}

func elementNameFor(k Kind) string {
	switch k {
	case KindNullable:
		return "Nullable"
	case KindEnum:
		return "Enum"
	case KindTuple:
		return "Tuple"
	case KindSequence:
		return "List"
	case KindMapping:
		return "Dictionary"
	case KindComplex:
		return "Complex"
	case KindUnion:
		return "Union"
	case KindEmpty:
		return "Empty"
	default:
		return "Primitive"
	}
}

// FromXml parses a canonical XML schema document produced by ToXml. The
// parsed schemas are not added to c's dedup tables: by-reference nodes keep
// the ids the document gives them. The returned schema's GoType fields are left nil: a schema parsed
// back from XML describes shape only, not a Go binding, until paired with a
// type via SchemaCollection's normal derivation path.
//
// Parsing happens in two passes, mirroring SchemaCollection's own
// placeholder-then-populate bind (collection.go's getOrAddLocked): the first
// pass allocates an empty Schema for every Id-carrying node before any body
// is populated, so the second pass can resolve a Contract reference to a
// node that appears later in document order (§4.1's forward references).
func (c *SchemaCollection) FromXml(data []byte) (*Schema, error) {
	var doc xmlNode
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaInvariantError{Reason: fmt.Sprintf("parsing schema XML: %v", err)}
	}
	if len(doc.Children) != 1 {
		return nil, &SchemaInvariantError{Reason: "schema document must contain exactly one root element"}
	}

	root := &doc.Children[0]
	byID := map[string]*Schema{}
	if err := allocateSchemaNodes(root, byID); err != nil {
		return nil, err
	}
	return bindSchemaNode(root, byID, c)
}

// allocateSchemaNodes walks n's subtree once, creating the placeholder
// Schema for every Id-carrying node it finds, before bindSchemaNode
// populates any of their bodies.
func allocateSchemaNodes(n *xmlNode, byID map[string]*Schema) error {
	if n.Contract != "" {
		return nil
	}
	if n.Id != "" {
		if _, ok := byID[n.Id]; ok {
			return &SchemaInvariantError{Reason: fmt.Sprintf("duplicate schema id %q", n.Id)}
		}
		byID[n.Id] = &Schema{Flavor: FlavorRead, id: n.Id}
	}
	for i := range n.Children {
		if err := allocateSchemaNodes(&n.Children[i], byID); err != nil {
			return err
		}
	}
	return nil
}

func bindSchemaNode(n *xmlNode, byID map[string]*Schema, c *SchemaCollection) (*Schema, error) {
	if n.Contract != "" {
		id := n.Contract[1:]
		s, ok := byID[id]
		if !ok {
			return nil, &SchemaInvariantError{Reason: fmt.Sprintf("unresolved Contract reference %q", n.Contract)}
		}
		return s, nil
	}

	var s *Schema
	if n.Id != "" {
		s = byID[n.Id]
	} else {
		s = &Schema{Flavor: FlavorRead}
	}

	switch n.XMLName.Local {
	case "Nullable":
		s.Kind = KindNullable
		elem, err := bindSchemaNode(&n.Children[0], byID, c)
		if err != nil {
			return nil, err
		}
		s.Elem = elem
	case "List":
		s.Kind = KindSequence
		elem, err := bindSchemaNode(&n.Children[0], byID, c)
		if err != nil {
			return nil, err
		}
		s.Elem = elem
	case "Dictionary":
		s.Kind = KindMapping
		key, err := bindSchemaNode(&n.Children[0], byID, c)
		if err != nil {
			return nil, err
		}
		value, err := bindSchemaNode(&n.Children[1], byID, c)
		if err != nil {
			return nil, err
		}
		s.MapKey, s.MapValue = key, value
	case "Tuple":
		s.Kind = KindTuple
		for i := range n.Children {
			elem, err := bindSchemaNode(&n.Children[i], byID, c)
			if err != nil {
				return nil, err
			}
			s.Elements = append(s.Elements, elem)
		}
	case "Enum":
		s.Kind = KindEnum
		for _, child := range n.Children {
			s.Members = append(s.Members, child.Name)
		}
	case "Complex":
		s.Kind = KindComplex
		for i := range n.Children {
			child := &n.Children[i]
			fieldSchema, err := bindSchemaNode(&child.Children[0], byID, c)
			if err != nil {
				return nil, err
			}
			s.Fields = append(s.Fields, &Field{
				Name:       child.Name,
				Schema:     fieldSchema,
				HasDefault: child.Default != "",
			})
		}
	case "Union":
		s.Kind = KindUnion
		for i := range n.Children {
			child := &n.Children[i]
			memberSchema, err := bindSchemaNode(&child.Children[0], byID, c)
			if err != nil {
				return nil, err
			}
			s.UnionMembers = append(s.UnionMembers, &Member{Name: child.Name, Schema: memberSchema})
		}
	case "Empty":
		s.Kind = KindEmpty
	case "Primitive":
		kind, err := primitiveKindFromName(n.Kind)
		if err != nil {
			return nil, err
		}
		s.Kind = kind
	default:
		return nil, &SchemaInvariantError{Reason: fmt.Sprintf("unrecognised schema element %q", n.XMLName.Local)}
	}

	return s, nil
}

func primitiveKindFromName(name string) (Kind, error) {
	for k := KindBool; k <= KindTimestamp; k++ {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, &SchemaInvariantError{Reason: fmt.Sprintf("unrecognised primitive kind %q", name)}
}
