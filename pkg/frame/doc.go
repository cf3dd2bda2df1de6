// Package frame resolves a network of stud centerlines into fabricable
// members.
//
// A Structure takes one segment per stud. Resolve builds the proximity
// graph, assigns every member a web normal while walking each connected
// subgraph, classifies every adjacency as a Joint, and then runs the
// joint resolvers in a fixed order:
//
//	face-to-face → branch → T → pass-through → braces
//
// Each resolver extends or trims member axes and appends machine
// Operations at offsets derived from the joint angle and the stud
// Profile. Later stages read axes already trimmed by earlier ones, so
// the order is part of the contract. A Structure is not safe for
// concurrent use; Resolve is the only writer of its members.
package frame
