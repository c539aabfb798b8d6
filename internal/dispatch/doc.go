// Package dispatch lifts scalar functions over broadcast cell arrays.
//
// An Op declares its operands and a Category; the category selects how
// missing geometries are handled (skipped to a fill value, or passed to the
// function). Bind validates kinds and shapes up front, Run evaluates the
// elements, splitting large arrays into chunks that run on an errgroup with
// extra workers drawn from a shared resource.Controller budget.
package dispatch
