// Package register renders extracted risk register tables as nested ordered
// lists.
//
// Each table becomes one numbered list. Row 0 carries the risk type title and
// description; later rows are classified by their leading cell into key
// phrase rows (risk appetite, key risk indicators, controls), sub risk type
// headings, and detail rows. Detail rows pick one of three templates based on
// the cell count of the most recent sub risk type heading.
//
// Rendering threads a [State] value through the rows of a table. Tables never
// share state, so [RenderParallel] may render them concurrently and still
// produce the same bytes as [Render].
package register
