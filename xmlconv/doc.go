// Package xmlconv converts node trees to XML documents and back.
//
// A [Converter] is built once with [New] from a type registry and a set of
// options, and is immutable afterwards. It can be used from several
// goroutines at once as long as each conversion works on its own tree.
//
// # Document Layout
//
// Every node becomes one element. The element name is the registry name of
// the node's type, except for a node whose type info is suppressed (see
// [SuppressTypeInfo]) sitting in a slot that implies its type: such a node
// is named by the slot.
//
// Inside a node element come, in order, its properties and its children:
//
//	<section ptk:location="doc.txt 10,52" id="s1">
//	  <ptk:level ptk:type="int">1</ptk:level>
//	  <title>
//	    <text>Section Title</text>
//	  </title>
//	  <body>
//	    <text>Section Body</text>
//	  </body>
//	</section>
//
// The reserved prefix ptk is bound to [node.NamespacePTK]. Properties are
// elements named ptk:NAME, except the property named content which is
// written as the unprefixed element content. A property element's
// ptk:type attribute gives the kind of its value:
//
//   - no ptk:type: a string, held as text
//   - null, bool, int, float: the value as text
//   - array: one ptk:item element per entry, each typed the same way
//   - node: the property element is itself the node element; ptk:node
//     names the node type unless the property name implies it
//
// Attributes with string values are written as XML attributes; attributes
// whose value is null are listed in ptk:null. Any other attribute value is
// written as a ptk:attr element, ahead of the properties, whose ptk:name
// gives the attribute name and whose single ptk:item holds the value:
//
//	<ptk:attr ptk:name="width"><ptk:item ptk:type="int">5</ptk:item></ptk:attr>
//
// The node location is written as ptk:location="<source> <start>,<end>".
//
// A node of the string node type (see [StringNodeType]) whose only content
// is its text is folded: the element holds the text directly.
//
// # Roots and Containers
//
// A document written by [Converter.Encode] has the root node element as
// its outermost element, carrying the xmlns:ptk declaration. With
// [ExplicitRoots] the root node element is wrapped in one more element of
// the same name. A container registered with [WithContainer] is written as
// its own element with fixed namespace declarations around the root.
package xmlconv
