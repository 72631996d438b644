// Package layout places the nodes of a [workspace.Graph] on a 2D canvas with
// a force-directed simulation (Fruchterman-Reingold style).
//
// # Algorithm
//
// Nodes start at seeded pseudo-random positions inside the canvas
// (math/rand/v2 PCG, [DefaultSeed] unless overridden), so the same graph and
// options always produce the same placement. With k = sqrt(area/n), each of
// a fixed number of iterations:
//
//  1. pushes every pair apart by k²/d (a constant 1000 when two nodes
//     coincide, along the x axis),
//  2. pulls the ends of every edge together by d²/k, once per parallel edge,
//  3. pulls every node toward the canvas center by k·0.02 times its offset,
//  4. caps each node's displacement at the current temperature, moves it,
//     and clamps it into [0,width]×[0,height].
//
// The temperature starts at width/10 and decays by 0.95 per iteration. There
// is no early exit on convergence.
//
// # Cost
//
// Every call recomputes from scratch; repulsion is O(n²) per iteration.
// Hosts that redraw continuously pay that cost on every redraw. Nothing here
// caches or reuses a previous result.
//
// The input graph is never modified.
package layout
