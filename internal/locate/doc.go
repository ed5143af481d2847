// Package locate finds the application executable inside an extracted
// release tree.
//
// Conventional locations are probed first; when none match, the whole tree
// is walked for an executable regular file with the expected name.
package locate
