// Package codegraph is an in-memory object model for C++ source code.
//
// Callers build namespaces, composite types, functions, expressions, statements
// and preprocessor directives as a tree of nodes, then render any subtree either
// into one combined text or into a synchronized pair of texts: a declaration
// (header) stream and a definition (implementation) stream.
//
// Ownership rules used throughout the package:
//
//   - A node added to a parent belongs to that parent. Callers must not add the
//     same node to two parents; use Duplicate or Clone to get an independent copy.
//   - Duplicate, Clone and Assign always deep copy owned children.
//   - References to an enclosing type, a referenced declaration or a referenced
//     callee are never copied. The referenced node must outlive the reference.
//
// Nodes are not safe for concurrent mutation or concurrent rendering of a shared
// subtree. All per-render state lives in a RenderContext, so distinct subtrees can
// be rendered from different goroutines.
package codegraph
