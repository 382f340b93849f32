// Package convert recovers ES module syntax from webpack-bundled modules.
//
// Webpack lowers a module's exports to calls on its runtime helper:
//
//	require.r(exports);
//	require.d(exports, "counter", function () { return f; });
//	let f = 1;
//
// The converter removes the marker call, renames f to counter, exports the
// declaration and removes the definer call:
//
//	export let counter = 1;
//
// A "default" export is attached to the declaration itself: a function or
// class declaration is exported as is, a variable declaration is replaced by
// its initializer.
//
// Only statements directly in the program body are examined. Every call
// that cannot be traced to a plain top-level declaration is left in place,
// so the output always behaves like the input. Run returns a Report listing
// what was converted and why anything was skipped.
package convert
