package textdiff

// computeLCS returns the longest common subsequence of two string slices
// using the classic O(m*n) dynamic-programming table with backtracking.
func computeLCS(left, right []string) []string {
	m := len(left)
	n := len(right)
	if m == 0 || n == 0 {
		return nil
	}

	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if left[i-1] == right[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else if table[i-1][j] >= table[i][j-1] {
				table[i][j] = table[i-1][j]
			} else {
				table[i][j] = table[i][j-1]
			}
		}
	}

	lcs := make([]string, table[m][n])
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case left[i-1] == right[j-1]:
			lcs[table[i][j]-1] = left[i-1]
			i--
			j--
		case table[i-1][j] >= table[i][j-1]:
			i--
		default:
			j--
		}
	}

	return lcs
}
