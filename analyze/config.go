package analyze

// Config holds the tuning knobs of the header/footer detection. The
// defaults reproduce conventional document layouts; none of them are
// derived from measurements, so callers working with unusual documents
// should expect to recalibrate rather than trust them.
type Config struct {
	// MaxPages caps how many pages one analysis scans.
	// Default: 10.
	MaxPages int

	// HeaderZoneRatio is the fraction of the page height, measured from
	// the top edge, treated as the header zone. Default: 0.10.
	HeaderZoneRatio float64

	// FooterZoneRatio is the same fraction measured from the bottom edge.
	// Default: 0.10.
	FooterZoneRatio float64

	// MinRepeat is how many times a text must occur across the scanned
	// range before it can be a header/footer candidate. Repetition is the
	// primary signal; one-off text is body content. Default: 2.
	MinRepeat int

	// MinTextLen/MaxTextLen bound the stripped candidate length.
	// Defaults: 2 and 100.
	MinTextLen int
	MaxTextLen int

	// MaxPageNumberLen is the longest pure-digit string still treated as
	// a bare page number and excluded. Default: 3.
	MaxPageNumberLen int

	// SmallFontMax is the font size below which a span earns a ranking
	// bonus (running heads are typically set small). Default: 16.
	SmallFontMax float64

	// Keywords earn a ranking bonus when found in the lowercased text.
	Keywords []string

	// DateKeywords mark a candidate with the "date" label.
	DateKeywords []string

	// CommonFonts earn a ranking bonus when the span's font family
	// matches (case-insensitive substring).
	CommonFonts []string

	// BodyPunctuation lists sentence punctuation whose presence marks a
	// span as body prose, excluding it outright.
	BodyPunctuation []rune
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		MaxPages:         10,
		HeaderZoneRatio:  0.10,
		FooterZoneRatio:  0.10,
		MinRepeat:        2,
		MinTextLen:       2,
		MaxTextLen:       100,
		MaxPageNumberLen: 3,
		SmallFontMax:     16,
		Keywords: []string{
			"page", "第", "页", "of", "证据", "日期",
			"confidential", "draft", "final", "version",
		},
		DateKeywords: []string{"date", "日期"},
		CommonFonts: []string{
			"arial", "helvetica", "times", "simsun", "simhei",
		},
		BodyPunctuation: []rune{
			'。', '，', '！', '？', '；', '：', '（', '）', '【', '】', '、',
		},
	}
}
