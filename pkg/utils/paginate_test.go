package utils

import (
	"strings"
	"testing"
)

func TestPaginateShortInput(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
	}{
		{name: "empty string", text: "", maxLen: 10},
		{name: "shorter than limit", text: "well 117 drilling at 2450m", maxLen: 100},
		{name: "exactly at limit", text: "abcde", maxLen: 5},
		{name: "cyrillic counted as runes", text: "бурение", maxLen: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.text, tt.maxLen)
			if len(got) != 1 || got[0] != tt.text {
				t.Errorf("Paginate(%q, %d) = %q, want single unchanged chunk", tt.text, tt.maxLen, got)
			}
		})
	}
}

func TestPaginatePrefersLineAndWordBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{
			name:   "breaks at newline",
			text:   "line one\nline two",
			maxLen: 12,
			want:   []string{"line one", "line two"},
		},
		{
			name:   "breaks at space",
			text:   "alpha beta gamma",
			maxLen: 12,
			want:   []string{"alpha beta", "gamma"},
		},
		{
			name:   "newline later than space wins",
			text:   "a b\ncdefgh",
			maxLen: 6,
			want:   []string{"a b", "cdefgh"},
		},
		{
			name:   "unbroken token is hard split",
			text:   "aaaaaaaaaa",
			maxLen: 4,
			want:   []string{"aaaa", "aaaa", "aa"},
		},
		{
			name:   "leading separator does not produce empty chunk",
			text:   " abcdef",
			maxLen: 3,
			want:   []string{" ab", "cde", "f"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(tt.text, tt.maxLen)
			if len(got) != len(tt.want) {
				t.Fatalf("Paginate(%q, %d) = %q, want %q", tt.text, tt.maxLen, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPaginateLongReport(t *testing.T) {
	// A 9000-character description against the Telegram limit must yield
	// exactly three chunks, none above the limit.
	word := "drilling "
	text := strings.Repeat(word, 1000)[:9000]

	chunks := Paginate(text, 4096)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > 4096 {
			t.Errorf("chunk %d has %d runes, limit 4096", i, n)
		}
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestPaginateRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"short",
		"one two three four five six seven eight nine ten",
		"line1\nline2\nline3\nline4",
		strings.Repeat("x", 50),
		strings.Repeat("word ", 40),
		"mixed\ncontent with  double  spaces\nand tokens_like_this_one_that_are_long",
		strings.Repeat("скважина 117 бурение на глубине 2450м\n", 20),
	}
	limits := []int{1, 2, 3, 7, 16, 64}

	for _, s := range inputs {
		for _, l := range limits {
			chunks := Paginate(s, l)

			for i, c := range chunks {
				if n := len([]rune(c)); n > l {
					t.Fatalf("Paginate(%q, %d): chunk %d has %d runes", s, l, i, n)
				}
				if c == "" && s != "" {
					t.Fatalf("Paginate(%q, %d): empty chunk %d", s, l, i)
				}
			}

			if got := reassemble(s, chunks); got != s {
				t.Fatalf("Paginate(%q, %d): round trip produced %q", s, l, got)
			}
		}
	}
}

// reassemble stitches chunks back together, restoring the single separator
// character dropped at each soft split boundary.
func reassemble(original string, chunks []string) string {
	orig := []rune(original)
	var out []rune
	off := 0
	for i, c := range chunks {
		cr := []rune(c)
		if i > 0 && off < len(orig) && (orig[off] == ' ' || orig[off] == '\n') {
			// Only a soft split discards a character; a hard split keeps
			// the stream contiguous.
			if !matchesAt(orig, cr, off) && matchesAt(orig, cr, off+1) {
				out = append(out, orig[off])
				off++
			}
		}
		out = append(out, cr...)
		off += len(cr)
	}
	return string(out)
}

func matchesAt(orig, chunk []rune, off int) bool {
	if off+len(chunk) > len(orig) {
		return false
	}
	for i := range chunk {
		if orig[off+i] != chunk[i] {
			return false
		}
	}
	return true
}
