// Package coin classifies labeled regions as euro coin denominations.
//
// Classification is purely geometric. A region's circular-equivalent
// diameter and circularity are derived from its area and perimeter and
// matched against a table of reference diameters, one entry per
// denomination. Each denomination belongs to a family (copper, gold or
// bimetallic euro) and the classifier is parameterized per family:
// minimum circularity gate, edge-fallback margin and the member
// denominations to match against.
//
// The classifier holds no cross-frame state of its own. For objects
// near the frame edge it may consult a ClassLookup (normally the
// temporal tracker) to reuse an earlier classification at the same
// location.
package coin
