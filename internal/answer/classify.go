package answer

import "strings"

// IsMultipleChoice reports whether the query carries an enumerated
// option list, detected as a line starting with "1." right after a
// newline. Other enumeration styles ("a)", "i.", bullets) are not
// recognized, and a query that opens with "1." on its first line does
// not count.
func IsMultipleChoice(query string) bool {
	return strings.Contains(query, "\n1.")
}
