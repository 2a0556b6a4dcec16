package tui

// clampSelection keeps a selection index valid for n rows. -1 means nothing
// is selected and is kept as long as there are rows.
func clampSelection(sel, n int) int {
	switch {
	case n == 0:
		return -1
	case sel >= n:
		return n - 1
	case sel < -1:
		return -1
	}
	return sel
}

// moveSelection moves sel by delta within n rows. With nothing selected,
// any move selects the first row.
func moveSelection(sel, delta, n int) int {
	if n == 0 {
		return -1
	}
	if sel < 0 {
		return 0
	}
	sel += delta
	if sel < 0 {
		sel = 0
	}
	if sel > n-1 {
		sel = n - 1
	}
	return sel
}
