// Package stream provides event-based encoding and decoding of XML
// documents.
//
// The stream package turns element and text events into bytes and back. It
// knows nothing about nodes or registries; it only checks that events form
// a well-nested document with a single root element. Namespace prefixes are
// kept exactly as written: an element named "ptk:location" is written and
// read as the name "ptk:location".
//
// # Example: Encoding
//
//	enc := stream.NewEncoder(w, stream.WithIndent("", "  "))
//	enc.Start("document", stream.Attr{Name: "xmlns:ptk", Value: ns})
//	enc.Start("text")
//	enc.Text("Hallo")
//	enc.End()
//	enc.End()
//	if err := enc.Close(); err != nil {
//	    return err
//	}
//
// # Example: Decoding
//
//	dec := stream.NewDecoder(r)
//	event, _ := dec.ReadEvent()  // EventStart("document")
//	event, _ := dec.ReadEvent()  // EventStart("text")
//	event, _ := dec.ReadEvent()  // EventText("Hallo")
//	event, _ := dec.ReadEvent()  // EventEnd("text")
//	event, _ := dec.ReadEvent()  // EventEnd("document")
//	_, err := dec.ReadEvent()    // io.EOF
//
// Comments, processing instructions and directives are skipped by the
// decoder. Text between elements is reported as is, including
// whitespace; callers decide what is significant.
package stream
