package geojson

// CRSKind tags the variant held by a CRS.
type CRSKind uint8

const (
	// CRSDefault is the implicit WGS84 reference system. It is never
	// written to the wire.
	CRSDefault CRSKind = iota
	// CRSNamed identifies a reference system by name, e.g. an OGC URN.
	CRSNamed
	// CRSLinked points to a reference system definition by URL.
	CRSLinked
	// CRSNone is an explicit "crs": null, meaning no reference system can
	// be assumed.
	CRSNone
)

// String returns a short name for the kind.
func (k CRSKind) String() string {
	switch k {
	case CRSDefault:
		return "default"
	case CRSNamed:
		return "name"
	case CRSLinked:
		return "link"
	case CRSNone:
		return "none"
	default:
		return "unknown"
	}
}

// Wire tags of the legacy crs member.
const (
	crsTypeName = "name"
	crsTypeLink = "link"
)

// CRS describes the coordinate reference system of a top-level object, as
// defined by the 2008 GeoJSON format. The zero value is the default
// CRS. CRS values are comparable with ==.
type CRS struct {
	kind     CRSKind
	name     string
	href     string
	linkType string
	// hasLinkType records a properties.type member, even an empty one.
	hasLinkType bool
}

// DefaultCRS returns the implicit WGS84 reference system.
func DefaultCRS() CRS { return CRS{} }

// NoCRS returns the explicit null reference system.
func NoCRS() CRS { return CRS{kind: CRSNone} }

// NamedCRS returns a reference system identified by name.
func NamedCRS(name string) CRS { return CRS{kind: CRSNamed, name: name} }

// LinkedCRS returns a reference system identified by a link. An empty
// linkType is omitted on the wire.
func LinkedCRS(href, linkType string) CRS {
	return CRS{kind: CRSLinked, href: href, linkType: linkType, hasLinkType: linkType != ""}
}

// LinkedCRSWithType is like LinkedCRS but always writes the type member,
// even when linkType is empty.
func LinkedCRSWithType(href, linkType string) CRS {
	return CRS{kind: CRSLinked, href: href, linkType: linkType, hasLinkType: true}
}

// Kind returns the variant held by c.
func (c CRS) Kind() CRSKind { return c.kind }

// IsDefault reports whether c is the implicit default.
func (c CRS) IsDefault() bool { return c.kind == CRSDefault }

// Name returns the name of a named CRS.
func (c CRS) Name() (string, bool) { return c.name, c.kind == CRSNamed }

// Link returns the href and optional type of a linked CRS.
func (c CRS) Link() (href, linkType string, ok bool) {
	return c.href, c.linkType, c.kind == CRSLinked
}

// String describes c for logs.
func (c CRS) String() string {
	switch c.kind {
	case CRSNamed:
		return "name:" + c.name
	case CRSLinked:
		return "link:" + c.href
	default:
		return c.kind.String()
	}
}
