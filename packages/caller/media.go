package caller

// MediaType identifies a payload format exchanged with the OData service.
type MediaType string

const (
	// XML is the plain XML media type
	XML MediaType = "application/xml"
	// AtomXML is the Atom XML media type used for entity payloads
	AtomXML MediaType = "application/atom+xml"
	// JSON is the JSON media type used by OData v4 services
	JSON MediaType = "application/json"
	// Text is the plain text media type
	Text MediaType = "text/plain"
)

func (m MediaType) String() string {
	return string(m)
}
