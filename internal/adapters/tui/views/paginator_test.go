package views

import "testing"

func TestPaginator_Navigation(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	for i := 0; i < 4; i++ {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("expected cursor 4 on page 2, got %d on page %d", p.Cursor(), p.CurrentPage())
	}

	start, end := p.VisibleRange()
	if start != 3 || end != 6 {
		t.Errorf("expected range 3-6, got %d-%d", start, end)
	}

	if !p.NextPage() || p.Cursor() != 6 {
		t.Errorf("expected next page to move cursor to 6, got %d", p.Cursor())
	}
	if p.NextPage() {
		t.Errorf("expected no page after the last")
	}
	if p.TotalPages() != 3 {
		t.Errorf("expected 3 pages, got %d", p.TotalPages())
	}
}

func TestPaginator_ShrinkingListClampsCursor(t *testing.T) {
	p := NewPaginator(5)
	p.SetTotal(10)
	p.SetCursor(9)

	// A delete elsewhere shortened the ledger listing
	p.SetTotal(4)
	if p.Cursor() != 3 {
		t.Errorf("expected cursor clamped to 3, got %d", p.Cursor())
	}
	if p.PageOffset() != 0 {
		t.Errorf("expected first page, got offset %d", p.PageOffset())
	}
}

func TestPaginator_SetPageSize(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(30)
	p.SetCursor(25)

	p.SetPageSize(4)
	if p.PageOffset() != 24 || p.CursorInPage() != 1 {
		t.Errorf("expected offset 24 and in-page cursor 1, got %d and %d", p.PageOffset(), p.CursorInPage())
	}
}
