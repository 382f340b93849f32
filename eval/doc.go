// Package eval runs bundled and converted programs in an embedded
// JavaScript VM and compares what they export.
//
// A bundled program sees a minimal webpack runtime: an exports object and
// require.r / require.d helpers that define enumerable getters on it.
// A converted program is lowered onto internal helpers that define the same
// getters, so both forms are observed through one exports object:
//
//	export default E      ->  __esm_exports__["default"] = E
//	export var a = 1      ->  var a = 1; __esm_define__("a", getter)
//
// Module programs run without the webpack runtime, so a helper call left
// behind in converted code fails the run as it would in a real module.
//
// Exported values are read after the program finishes and normalized into
// plain Go values. Functions compare by arity, since conversion renames
// them.
package eval
