package directory

import "partnerdesk/pkg/domain"

// GroupedView is the paged, grouped rendering model of a filtered record
// set. Records are grouped by department in order of first appearance, and
// each group pages independently: moving one department's page never touches
// another's.
type GroupedView struct {
	groups []*Group
	byDept map[domain.Department]*Group
}

// Group is one department's section with its own pagination state. Page
// indexes are 1-based and clamped to [1, TotalPages].
type Group struct {
	dept        domain.Department
	records     []Partnership
	pageSize    int
	currentPage int
}

// NewGroupedView groups records by department. Departments with no records
// simply do not appear. pageSize below 1 is treated as 1.
func NewGroupedView(records []Partnership, pageSize int) *GroupedView {
	if pageSize < 1 {
		pageSize = 1
	}
	v := &GroupedView{byDept: make(map[domain.Department]*Group)}
	for _, p := range records {
		g, ok := v.byDept[p.Department]
		if !ok {
			g = &Group{dept: p.Department, pageSize: pageSize, currentPage: 1}
			v.byDept[p.Department] = g
			v.groups = append(v.groups, g)
		}
		g.records = append(g.records, p)
	}
	return v
}

// Groups returns the department sections in order of first appearance.
func (v *GroupedView) Groups() []*Group { return v.groups }

// Group looks up a department's section. The second return is false when the
// department has no matching records.
func (v *GroupedView) Group(dept domain.Department) (*Group, bool) {
	g, ok := v.byDept[dept]
	return g, ok
}

// Total returns the number of records across all groups.
func (v *GroupedView) Total() int {
	n := 0
	for _, g := range v.groups {
		n += len(g.records)
	}
	return n
}

func (g *Group) Department() domain.Department { return g.dept }

// Count returns the number of records in the group across all pages.
func (g *Group) Count() int { return len(g.records) }

// TotalPages is ceil(Count/pageSize), never less than 1.
func (g *Group) TotalPages() int {
	pages := (len(g.records) + g.pageSize - 1) / g.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (g *Group) CurrentPage() int { return g.currentPage }

// SetPage moves to the given 1-based page, clamped to the valid range.
func (g *Group) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if max := g.TotalPages(); page > max {
		page = max
	}
	g.currentPage = page
}

// Next advances one page. Past the last page it is a no-op, reported by the
// false return so callers can disable the control rather than wrap.
func (g *Group) Next() bool {
	if g.currentPage >= g.TotalPages() {
		return false
	}
	g.currentPage++
	return true
}

// Prev moves back one page; a no-op before the first page.
func (g *Group) Prev() bool {
	if g.currentPage <= 1 {
		return false
	}
	g.currentPage--
	return true
}

// Items returns the records on the current page.
func (g *Group) Items() []Partnership {
	start := (g.currentPage - 1) * g.pageSize
	if start >= len(g.records) {
		return nil
	}
	end := start + g.pageSize
	if end > len(g.records) {
		end = len(g.records)
	}
	return g.records[start:end]
}
