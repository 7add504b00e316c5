package utils

// Paginate splits a long string into chunks of at most maxLen characters,
// preferring to break at a newline, then at a space, so words and report
// lines survive intact. Counts runes, not bytes: Telegram limits are in
// characters and report text is mostly Cyrillic.
func Paginate(text string, maxLen int) []string {
	if maxLen < 1 {
		maxLen = 1
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return []string{text}
	}

	var chunks []string
	rest := runes

	for len(rest) > maxLen {
		window := rest[:maxLen]

		// Break at the later of the last newline and the last space
		// inside the window.
		cut := -1
		for i := len(window) - 1; i >= 0; i-- {
			if window[i] == '\n' || window[i] == ' ' {
				cut = i
				break
			}
		}

		// No separator, or a separator right at the front that would
		// leave an empty chunk: hard split an unbroken token.
		if cut < 1 {
			chunks = append(chunks, string(window))
			rest = rest[maxLen:]
			continue
		}

		chunks = append(chunks, string(rest[:cut]))
		rest = rest[cut+1:]
	}

	return append(chunks, string(rest))
}
