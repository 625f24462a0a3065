// Package chart renders line charts as Mermaid xychart-beta text and wraps
// them in a standalone HTML page.
//
// Each chart carries its own Config; nothing in the package holds global
// plotting state.
package chart
