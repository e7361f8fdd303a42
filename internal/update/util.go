package update

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
