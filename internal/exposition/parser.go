// Package exposition tokenizes the Prometheus text exposition format.
//
// The parser is a single-pass, byte-oriented state machine. It does not build
// metric families; it reports each sample line to a Listener as a sequence of
// callbacks:
//
//	OnMetricsBegin(name)
//	OnMetricsLabel(name, value)   zero or more, only inside {...}
//	OnMetricsValue(value)         omitted if the line ends before a value
//	OnMetricsEnd()
//
// Comment lines (starting with '#') and blank lines produce no callbacks.
// A line with broken label syntax is abandoned at its end-of-line: the
// listener sees OnMetricsEnd and parsing resumes on the next line.
//
// Label values are passed through raw. Escape sequences are honored only to
// find the closing quote; they are not decoded.
package exposition

// Listener receives tokens from Parse.
type Listener interface {
	OnMetricsBegin(name string)
	OnMetricsLabel(name, value string)
	OnMetricsValue(value string)
	OnMetricsEnd()
}

// state is a parser state.
type state int

const (
	stateLineStart state = iota
	stateEatComment
	stateMetricName
	stateLabelOrValue
	stateLabelNameStart
	stateLabelName
	stateExpectEqual
	stateExpectQuote
	stateLabelValue
	stateLabelNameOrComma
	stateWaitValue
	stateMetricValue
	stateValueTrailer
)

// String returns the state name, used in test failure output.
func (s state) String() string {
	switch s {
	case stateLineStart:
		return "LineStart"
	case stateEatComment:
		return "EatComment"
	case stateMetricName:
		return "MetricName"
	case stateLabelOrValue:
		return "LabelOrValue"
	case stateLabelNameStart:
		return "LabelNameStart"
	case stateLabelName:
		return "LabelName"
	case stateExpectEqual:
		return "ExpectEqual"
	case stateExpectQuote:
		return "ExpectQuote"
	case stateLabelValue:
		return "LabelValue"
	case stateLabelNameOrComma:
		return "LabelNameOrComma"
	case stateWaitValue:
		return "WaitValue"
	case stateMetricValue:
		return "MetricValue"
	case stateValueTrailer:
		return "ValueTrailer"
	default:
		return "unknown"
	}
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

// isLineEnd reports whether ch terminates the current line. End of input
// counts as a line end so the final line is always closed. A NUL byte in the
// content is ordinary data.
func isLineEnd(ch byte, atEOF bool) bool {
	return atEOF || ch == '\r' || ch == '\n'
}

// Parse tokenizes content and reports every sample line to l.
func Parse(content []byte, l Listener) {
	ParseString(string(content), l)
}

// ParseString is Parse for string input. Token strings handed to the listener
// are substrings of content.
func ParseString(content string, l Listener) {
	p := parser{content: content, listener: l}
	p.run()
}

// parser holds the per-call state. Nothing survives between calls.
type parser struct {
	content  string
	listener Listener
	state    state

	// tokenStart/tokenEnd delimit the metric name, then the current label name,
	// then the value.
	tokenStart int
	tokenEnd   int

	valueStart int
	valueEnd   int
	escaped    bool
}

func (p *parser) run() {
	n := len(p.content)
	for pos := 0; pos <= n; pos++ {
		atEOF := pos == n
		var ch byte
		if !atEOF {
			ch = p.content[pos]
		}
		if !p.step(pos, ch, atEOF) {
			return
		}
	}
}

// endLine closes the current sample line and rewinds to LineStart.
func (p *parser) endLine() {
	p.state = stateLineStart
	p.listener.OnMetricsEnd()
}

func (p *parser) token() string {
	return p.content[p.tokenStart:p.tokenEnd]
}

func (p *parser) startToken(pos int) {
	p.tokenStart = pos
	p.tokenEnd = pos + 1
}

// step consumes one byte, or the end-of-input position when atEOF is set. It
// returns false once input is exhausted.
func (p *parser) step(pos int, ch byte, atEOF bool) bool {
	switch p.state {
	case stateLineStart:
		switch {
		case atEOF:
			return false
		case isBlank(ch) || ch == '\r' || ch == '\n':
		case ch == '#':
			p.state = stateEatComment
		default:
			p.state = stateMetricName
			p.startToken(pos)
		}

	case stateEatComment:
		switch {
		case atEOF:
			return false
		case ch == '\r' || ch == '\n':
			p.state = stateLineStart
		}

	case stateMetricName:
		switch {
		case isBlank(ch):
			p.state = stateLabelOrValue
			p.listener.OnMetricsBegin(p.token())
		case ch == '{':
			p.state = stateLabelNameStart
			p.listener.OnMetricsBegin(p.token())
		case isLineEnd(ch, atEOF):
			p.listener.OnMetricsBegin(p.token())
			p.endLine()
		default:
			p.tokenEnd = pos + 1
		}

	case stateLabelOrValue:
		switch {
		case ch == '{':
			p.state = stateLabelNameStart
		case isLineEnd(ch, atEOF):
			p.endLine()
		case isBlank(ch):
		default:
			p.state = stateMetricValue
			p.startToken(pos)
		}

	case stateLabelNameStart:
		switch {
		case isBlank(ch):
		case ch == '}':
			p.state = stateWaitValue
		case isLineEnd(ch, atEOF):
			p.endLine()
		default:
			p.state = stateLabelName
			p.startToken(pos)
		}

	case stateLabelName:
		switch {
		case isBlank(ch):
			p.state = stateExpectEqual
		case isLineEnd(ch, atEOF):
			p.endLine()
		case ch == '=':
			p.state = stateExpectQuote
		default:
			p.tokenEnd = pos + 1
		}

	case stateExpectEqual:
		// Anything other than '=' between the label name and '=' is skipped.
		switch {
		case isLineEnd(ch, atEOF):
			p.endLine()
		case ch == '=':
			p.state = stateExpectQuote
		}

	case stateExpectQuote:
		switch {
		case isLineEnd(ch, atEOF):
			p.endLine()
		case ch == '"':
			p.state = stateLabelValue
			p.valueStart = pos + 1
			p.valueEnd = pos + 1
			p.escaped = false
		}

	case stateLabelValue:
		switch {
		case isLineEnd(ch, atEOF):
			p.endLine()
		case p.escaped:
			p.escaped = false
			p.valueEnd = pos + 1
		case ch == '\\':
			p.escaped = true
			p.valueEnd = pos + 1
		case ch == '"':
			p.state = stateLabelNameOrComma
			p.listener.OnMetricsLabel(p.token(), p.content[p.valueStart:p.valueEnd])
		default:
			p.valueEnd = pos + 1
		}

	case stateLabelNameOrComma:
		switch {
		case isLineEnd(ch, atEOF):
			p.endLine()
		case ch == ',':
			p.state = stateLabelNameStart
		case ch == '}':
			p.state = stateWaitValue
		}

	case stateWaitValue:
		switch {
		case isLineEnd(ch, atEOF):
			p.endLine()
		case isBlank(ch):
		default:
			p.state = stateMetricValue
			p.startToken(pos)
		}

	case stateMetricValue:
		switch {
		case isLineEnd(ch, atEOF):
			p.listener.OnMetricsValue(p.token())
			p.endLine()
		case isBlank(ch):
			// The optional timestamp after the value is not reported.
			p.listener.OnMetricsValue(p.token())
			p.state = stateValueTrailer
		default:
			p.tokenEnd = pos + 1
		}

	case stateValueTrailer:
		if isLineEnd(ch, atEOF) {
			p.endLine()
		}
	}

	return true
}
