// Package ledger implements the read model over the transaction history:
// search, multi-field filtering, stable sorting, pagination, and aggregate
// analytics. The underlying record set is immutable within a session.
package ledger

import (
	"sort"
	"strings"

	"github.com/billfold/billfold/internal/model"
	"github.com/shopspring/decimal"
)

// FilterAll is the sentinel value matching every record.
const FilterAll = "all"

// DefaultPageSize is the fixed number of rows per page.
const DefaultPageSize = 10

// SortKey selects the ordering of the filtered view.
type SortKey string

// Sort keys.
const (
	SortDateDesc   SortKey = "date-desc"
	SortDateAsc    SortKey = "date-asc"
	SortAmountDesc SortKey = "amount-desc"
	SortAmountAsc  SortKey = "amount-asc"
	SortType       SortKey = "type"
)

// SortKeys lists every sort key in display order.
func SortKeys() []SortKey {
	return []SortKey{SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc, SortType}
}

// Valid reports whether the key is one of the supported orderings.
func (k SortKey) Valid() bool {
	switch k {
	case SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc, SortType:
		return true
	default:
		return false
	}
}

// Analytics aggregates the entire unfiltered record set.
type Analytics struct {
	ByType        map[model.TransactionType]int
	TotalSent     decimal.Decimal
	TotalReceived decimal.Decimal
	TotalFees     decimal.Decimal
}

// View derives a filtered, sorted, paginated slice of an immutable
// transaction set. Changing any filter resets the page to 1; the page is
// always clamped to the filtered result. Not safe for concurrent use.
type View struct {
	source   []model.Transaction
	filtered []model.Transaction

	search         string
	typeFilter     string
	statusFilter   string
	currencyFilter string
	sortKey        SortKey
	page           int
	pageSize       int
}

// NewView creates a view over the given records, newest first, page 1.
func NewView(transactions []model.Transaction) *View {
	v := &View{
		source:         append([]model.Transaction(nil), transactions...),
		typeFilter:     FilterAll,
		statusFilter:   FilterAll,
		currencyFilter: FilterAll,
		sortKey:        SortDateDesc,
		page:           1,
		pageSize:       DefaultPageSize,
	}
	v.recompute()
	return v
}

// SetTransactions replaces the underlying record set, keeping the active
// filters and resetting to page 1.
func (v *View) SetTransactions(transactions []model.Transaction) {
	v.source = append([]model.Transaction(nil), transactions...)
	v.page = 1
	v.recompute()
}

// SetSearch updates the free-text search term. Matching is a
// case-insensitive substring test against description, counterparty, and
// id; an empty term matches all.
func (v *View) SetSearch(term string) {
	if v.search == term {
		return
	}
	v.search = term
	v.page = 1
	v.recompute()
}

// SetTypeFilter filters by transaction type, or FilterAll.
func (v *View) SetTypeFilter(typeFilter string) {
	if v.typeFilter == typeFilter {
		return
	}
	v.typeFilter = typeFilter
	v.page = 1
	v.recompute()
}

// SetStatusFilter filters by status, or FilterAll.
func (v *View) SetStatusFilter(statusFilter string) {
	if v.statusFilter == statusFilter {
		return
	}
	v.statusFilter = statusFilter
	v.page = 1
	v.recompute()
}

// SetCurrencyFilter filters by currency, or FilterAll.
func (v *View) SetCurrencyFilter(currencyFilter string) {
	if v.currencyFilter == currencyFilter {
		return
	}
	v.currencyFilter = currencyFilter
	v.page = 1
	v.recompute()
}

// SetSort reorders the filtered view. Unknown keys are ignored. Records
// with equal keys keep their original relative order.
func (v *View) SetSort(key SortKey) {
	if !key.Valid() || v.sortKey == key {
		return
	}
	v.sortKey = key
	v.recompute()
}

// Sort returns the active sort key.
func (v *View) Sort() SortKey { return v.sortKey }

// Search returns the active search term.
func (v *View) Search() string { return v.search }

// TypeFilter returns the active type filter.
func (v *View) TypeFilter() string { return v.typeFilter }

// StatusFilter returns the active status filter.
func (v *View) StatusFilter() string { return v.statusFilter }

// CurrencyFilter returns the active currency filter.
func (v *View) CurrencyFilter() string { return v.currencyFilter }

// SetPage moves to page n, clamped to [1, TotalPages].
func (v *View) SetPage(n int) {
	v.page = clampPage(n, v.TotalPages())
}

// NextPage advances one page, clamped.
func (v *View) NextPage() { v.SetPage(v.page + 1) }

// PrevPage goes back one page, clamped.
func (v *View) PrevPage() { v.SetPage(v.page - 1) }

// Page returns the current page number.
func (v *View) Page() int { return v.page }

// TotalPages returns ceil(filtered / pageSize); zero when nothing matches.
func (v *View) TotalPages() int {
	return (len(v.filtered) + v.pageSize - 1) / v.pageSize
}

// FilteredCount returns the number of records matching the active filters.
func (v *View) FilteredCount() int { return len(v.filtered) }

// Filtered returns the full filtered, sorted collection.
func (v *View) Filtered() []model.Transaction {
	return append([]model.Transaction(nil), v.filtered...)
}

// Rows returns the current page of the filtered view. An empty result is a
// valid state, never an error.
func (v *View) Rows() []model.Transaction {
	start := (v.page - 1) * v.pageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return append([]model.Transaction(nil), v.filtered[start:end]...)
}

// Analytics aggregates the entire unfiltered set: completed send and
// receive volume, completed fees across all types, and counts per type.
// Recomputed on demand; the source set never changes mid-session.
func (v *View) Analytics() Analytics {
	a := Analytics{
		ByType:        make(map[model.TransactionType]int),
		TotalSent:     decimal.Zero,
		TotalReceived: decimal.Zero,
		TotalFees:     decimal.Zero,
	}

	for _, tx := range v.source {
		a.ByType[tx.Type]++

		if tx.Status != model.StatusCompleted {
			continue
		}
		switch tx.Type {
		case model.TypeSend:
			a.TotalSent = a.TotalSent.Add(tx.Amount)
		case model.TypeReceive:
			a.TotalReceived = a.TotalReceived.Add(tx.Amount)
		}
		a.TotalFees = a.TotalFees.Add(tx.Fee)
	}

	return a
}

func clampPage(n, total int) int {
	if n < 1 {
		return 1
	}
	if total > 0 && n > total {
		return total
	}
	if total == 0 {
		return 1
	}
	return n
}

func (v *View) recompute() {
	filtered := make([]model.Transaction, 0, len(v.source))
	term := strings.ToLower(v.search)

	for _, tx := range v.source {
		if term != "" && !matchesSearch(tx, term) {
			continue
		}
		if v.typeFilter != FilterAll && string(tx.Type) != v.typeFilter {
			continue
		}
		if v.statusFilter != FilterAll && string(tx.Status) != v.statusFilter {
			continue
		}
		if v.currencyFilter != FilterAll && string(tx.Currency) != v.currencyFilter {
			continue
		}
		filtered = append(filtered, tx)
	}

	// Stable so equal keys preserve insertion order.
	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch v.sortKey {
		case SortDateAsc:
			return a.Date.Before(b.Date)
		case SortAmountDesc:
			return a.Amount.GreaterThan(b.Amount)
		case SortAmountAsc:
			return a.Amount.LessThan(b.Amount)
		case SortType:
			return a.Type < b.Type
		default: // SortDateDesc
			return b.Date.Before(a.Date)
		}
	})

	v.filtered = filtered
	v.page = clampPage(v.page, v.totalPagesFor(len(filtered)))
}

func (v *View) totalPagesFor(count int) int {
	return (count + v.pageSize - 1) / v.pageSize
}

func matchesSearch(tx model.Transaction, term string) bool {
	return strings.Contains(strings.ToLower(tx.Description), term) ||
		strings.Contains(strings.ToLower(tx.Recipient), term) ||
		strings.Contains(strings.ToLower(tx.Sender), term) ||
		strings.Contains(strings.ToLower(tx.ID), term)
}
