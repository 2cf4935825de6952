// Package node defines the capability contract shared by every tree that
// can be converted to and from XML.
//
// A [Node] has a [Type], an ordered list of children, an ordered map of
// named properties, an ordered map of attributes and an optional source
// [Location]. Children and properties are independent: a child is never
// also a property and a property never shows up among the children.
//
// Property and attribute values are carried by [Value], a closed variant
// over the kinds
//
//   - [NullKind]: absence of a value
//   - [BoolKind], [IntKind], [FloatKind]: scalars
//   - [StringKind]: text
//   - [NodeKind]: a nested node
//   - [ArrayKind]: an ordered, arbitrarily nested list of values
//
// Attribute values are restricted to strings and null.
//
// Nodes are built by application code, or by a [Factory] when a tree is
// reconstructed from its serialized form. [Base] provides storage for the
// contract and is meant to be embedded by concrete node types.
package node
