package domain

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit bounds every list request.
	MaxLimit = 100
)

// Page is a normalised pagination window.
type Page struct {
	Page   int
	Limit  int
	Offset int
}

// NewPage normalises raw query values. Values that fail to parse or are not
// positive fall back to the defaults; limit is capped at MaxLimit.
func NewPage(rawPage, rawLimit string) Page {
	page := parseLeadingInt(rawPage)
	if page <= 0 {
		page = DefaultPage
	}
	limit := parseLeadingInt(rawLimit)
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// TotalPages returns ceil(total/limit), zero when there is nothing to page.
func (p Page) TotalPages(total int64) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Window returns the [start, end) bounds of the page inside a sequence of
// length n. Out-of-range pages yield an empty window.
func (p Page) Window(n int) (start, end int) {
	start = p.Offset
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end = start + p.Limit
	if end > n {
		end = n
	}
	return start, end
}

// Paginate combines NewPage and TotalPages for a known total.
func Paginate(rawPage, rawLimit string, total int64) (offset, limit, page, totalPages int) {
	p := NewPage(rawPage, rawLimit)
	return p.Offset, p.Limit, p.Page, p.TotalPages(total)
}

// parseLeadingInt reads an optionally signed run of leading decimal digits,
// ignoring surrounding whitespace and any trailing text ("12abc" is 12).
// It returns 0 when no digits are present.
func parseLeadingInt(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	n, digits := 0, 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		if n > (1<<31)/10 {
			// saturate instead of overflowing
			n = 1 << 31
			continue
		}
		n = n*10 + int(s[i]-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}
